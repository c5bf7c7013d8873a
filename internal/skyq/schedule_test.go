package skyq

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func unix(t time.Time) *int64 {
	v := t.Unix()
	return &v
}

func text(s string) Text { return Text{Value: s, Valid: true} }

func TestOffset(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		want         int
	}{
		{"window at end", 120, 50, 70},
		{"fewer than limit", 30, 50, 0},
		{"exactly limit", 50, 50, 0},
		{"empty", 0, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Offset(tt.total, tt.limit); got != tt.want {
				t.Fatalf("Offset(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestDayBoundary_Cutoff(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	now := time.Date(2026, 10, 18, 23, 30, 0, 0, loc)

	got := DayBoundary{Location: loc}.Cutoff(now)
	want := time.Date(2026, 10, 19, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("Cutoff = %v, want %v", got, want)
	}

	got = DayBoundary{RolloverHour: 4, Location: loc}.Cutoff(now)
	want = time.Date(2026, 10, 19, 4, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("Cutoff with rollover = %v, want %v", got, want)
	}
}

func TestDayBoundary_CutoffUsesLocationNotInputZone(t *testing.T) {
	loc := time.FixedZone("east", 10*60*60)
	// 20:00 UTC on the 18th is 06:00 on the 19th in loc.
	now := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)

	got := DayBoundary{Location: loc}.Cutoff(now)
	want := time.Date(2026, 10, 20, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("Cutoff = %v, want %v", got, want)
	}
}

func TestDayBoundary_CutoffAcrossMonthEnd(t *testing.T) {
	now := time.Date(2026, 12, 31, 10, 0, 0, 0, time.UTC)
	got := DayBoundary{Location: time.UTC}.Cutoff(now)
	want := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Cutoff = %v, want %v", got, want)
	}
}

func TestDayBoundary_Validate(t *testing.T) {
	for _, hour := range []int{-1, 24} {
		err := DayBoundary{RolloverHour: hour}.Validate()
		if !errors.Is(err, ErrInvalidBoundary) {
			t.Fatalf("Validate(%d) = %v, want ErrInvalidBoundary", hour, err)
		}
	}
	if err := (DayBoundary{RolloverHour: 23}).Validate(); err != nil {
		t.Fatalf("Validate(23) = %v, want nil", err)
	}
}

func TestDayBoundary_StartOf(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 23:30 UTC on 18 Oct is 00:30 BST on 19 Oct.
	now := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		boundary DayBoundary
		start    string
		want     time.Time
		ok       bool
	}{
		{"same day in location", DayBoundary{Location: london}, "09:00", time.Date(2026, 10, 19, 9, 0, 0, 0, london), true},
		{"before rollover is next morning", DayBoundary{RolloverHour: 3, Location: time.UTC}, "01:00", time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC), true},
		{"after rollover stays today", DayBoundary{RolloverHour: 3, Location: time.UTC}, "22:00", time.Date(2026, 10, 18, 22, 0, 0, 0, time.UTC), true},
		{"missing start", DayBoundary{Location: time.UTC}, "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.boundary.StartOf(Entry{StartTime: tt.start}, now)
			if ok != tt.ok || !got.Equal(tt.want) {
				t.Fatalf("StartOf(%q) = %v, %v; want %v, %v", tt.start, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestToday_FiltersByStatusAndCutoff(t *testing.T) {
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	items := []RawEntry{
		{Status: "SCHEDULED", Start: unix(day.Add(10 * time.Hour)), Title: text("keep")},
		{Status: "RECORDED", Start: unix(day.Add(14 * time.Hour)), Title: text("recorded")},
		{Status: "SCHEDULED", Start: unix(day.Add(25 * time.Hour)), Title: text("tomorrow")},
	}

	got := Today(items, day.AddDate(0, 0, 1))
	if len(got) != 1 || got[0].Title.Value != "keep" {
		t.Fatalf("Today = %#v, want only the 10:00 entry", got)
	}
}

func TestToday_StatusIsCaseSensitive(t *testing.T) {
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	items := []RawEntry{
		{Status: "scheduled", Start: unix(day.Add(time.Hour))},
		{Status: " SCHEDULED", Start: unix(day.Add(time.Hour))},
	}
	if got := Today(items, day.AddDate(0, 0, 1)); len(got) != 0 {
		t.Fatalf("Today = %#v, want empty", got)
	}
}

func TestToday_CutoffIsExclusive(t *testing.T) {
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	cutoff := day.AddDate(0, 0, 1)
	items := []RawEntry{
		{Status: StatusScheduled, Start: unix(cutoff)},
		{Status: StatusScheduled, Start: unix(cutoff.Add(-time.Second))},
	}
	got := Today(items, cutoff)
	if len(got) != 1 || *got[0].Start != cutoff.Unix()-1 {
		t.Fatalf("Today = %#v, want only the entry one second before cutoff", got)
	}
}

func TestToday_KeepsPastScheduledAndDropsMissingStart(t *testing.T) {
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	items := []RawEntry{
		{Status: StatusScheduled, Start: unix(day.AddDate(0, 0, -3)), Title: text("stale")},
		{Status: StatusScheduled, Title: text("no start")},
	}
	got := Today(items, day.AddDate(0, 0, 1))
	if len(got) != 1 || got[0].Title.Value != "stale" {
		t.Fatalf("Today = %#v, want only the stale entry", got)
	}
}

func TestToday_SortIsStable(t *testing.T) {
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	items := []RawEntry{
		{Status: StatusScheduled, Start: unix(day.Add(20 * time.Hour)), Title: text("late")},
		{Status: StatusScheduled, Start: unix(day.Add(9 * time.Hour)), Title: text("tuner one")},
		{Status: StatusScheduled, Start: unix(day.Add(8 * time.Hour)), Title: text("early")},
		{Status: StatusScheduled, Start: unix(day.Add(9 * time.Hour)), Title: text("tuner two")},
	}

	got := Today(items, day.AddDate(0, 0, 1))
	var titles []string
	for _, item := range got {
		titles = append(titles, item.Title.Value)
	}
	want := []string{"early", "tuner one", "tuner two", "late"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Fatalf("Today order mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_MissingFieldsBecomeEmpty(t *testing.T) {
	start := time.Date(2026, 10, 18, 21, 5, 0, 0, time.UTC)

	got := Normalize(RawEntry{Status: StatusScheduled, Start: unix(start), Title: text("News")}, time.UTC)
	want := Entry{Title: "News", Season: "", Episode: "", StartTime: "21:05"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize mismatch (-want +got):\n%s", diff)
	}

	got = Normalize(RawEntry{}, time.UTC)
	if diff := cmp.Diff(Entry{}, got); diff != "" {
		t.Fatalf("Normalize(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_FormatsInLocation(t *testing.T) {
	start := time.Date(2026, 10, 18, 21, 0, 0, 0, time.UTC)
	loc := time.FixedZone("plus1", 60*60)

	got := Normalize(RawEntry{Start: unix(start), SeasonNumber: text("3"), EpisodeNumber: text("12")}, loc)
	want := Entry{Season: "3", Episode: "12", StartTime: "22:00"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSchedule_NeverNil(t *testing.T) {
	got := BuildSchedule(nil, time.Now(), DayBoundary{Location: time.UTC})
	if got == nil {
		t.Fatal("BuildSchedule returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Fatalf("BuildSchedule = %#v, want empty", got)
	}
}
