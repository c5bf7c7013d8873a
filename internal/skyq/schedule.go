package skyq

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// DayBoundary decides where "today" ends. The cutoff is the next calendar
// day at RolloverHour:00 in Location.
type DayBoundary struct {
	RolloverHour int
	Location     *time.Location
}

// Validate checks the rollover hour.
func (b DayBoundary) Validate() error {
	if b.RolloverHour < 0 || b.RolloverHour > 23 {
		return fmt.Errorf("%w: rollover hour %d not in 0..23", ErrInvalidBoundary, b.RolloverHour)
	}
	return nil
}

func (b DayBoundary) location() *time.Location {
	if b.Location == nil {
		return time.Local
	}
	return b.Location
}

// Cutoff returns the end of the day containing now.
func (b DayBoundary) Cutoff(now time.Time) time.Time {
	loc := b.location()
	local := now.In(loc)
	y, m, d := local.Date()
	// time.Date normalizes d+1 across month ends and DST changes.
	return time.Date(y, m, d+1, b.RolloverHour, 0, 0, 0, loc)
}

// StartOf places an entry's HH:MM start time on the day that ends at
// Cutoff(now). Times before RolloverHour fall on the following morning. It
// reports false when the entry has no parseable start time.
func (b DayBoundary) StartOf(e Entry, now time.Time) (time.Time, bool) {
	clock, err := time.Parse(startTimeLayout, e.StartTime)
	if err != nil {
		return time.Time{}, false
	}
	loc := b.location()
	y, m, d := now.In(loc).Date()
	if clock.Hour() < b.RolloverHour {
		d++
	}
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), true
}

// Offset returns the window start for a listing of total items read limit at
// a time. The box lists items oldest first, so the newest window sits at the
// end. Never negative.
func Offset(total, limit int) int {
	return max(total-limit, 0)
}

// Today keeps scheduled items that start before cutoff, ordered by start
// time. Items with equal start times keep their input order. Items without a
// start time are dropped.
func Today(items []RawEntry, cutoff time.Time) []RawEntry {
	limit := cutoff.Unix()
	out := make([]RawEntry, 0, len(items))
	for _, item := range items {
		if item.Status != StatusScheduled || item.Start == nil {
			continue
		}
		if *item.Start < limit {
			out = append(out, item)
		}
	}
	slices.SortStableFunc(out, func(a, b RawEntry) int {
		return cmp.Compare(*a.Start, *b.Start)
	})
	return out
}

// Normalize maps a raw item to an Entry, rendering the start time in loc.
func Normalize(item RawEntry, loc *time.Location) Entry {
	if loc == nil {
		loc = time.Local
	}
	start := ""
	if st, ok := item.StartTime(); ok {
		start = st.In(loc).Format(startTimeLayout)
	}
	return Entry{
		Title:     textOrEmpty(item.Title),
		Season:    textOrEmpty(item.SeasonNumber),
		Episode:   textOrEmpty(item.EpisodeNumber),
		StartTime: start,
	}
}

func textOrEmpty(t Text) string {
	if !t.Valid {
		return ""
	}
	return t.Value
}

// BuildSchedule runs the filter, sort and normalize steps over a fetched
// window. The result is never nil.
func BuildSchedule(items []RawEntry, now time.Time, boundary DayBoundary) []Entry {
	today := Today(items, boundary.Cutoff(now))
	loc := boundary.location()
	schedule := make([]Entry, 0, len(today))
	for _, item := range today {
		schedule = append(schedule, Normalize(item, loc))
	}
	return schedule
}
