package skyq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// StatusScheduled is the only PVR status the schedule acts on.
const StatusScheduled = "SCHEDULED"

// startTimeLayout renders start times as HH:MM.
const startTimeLayout = "15:04"

// pvrResponse mirrors /as/pvr. Pointers distinguish missing keys from zero
// values.
type pvrResponse struct {
	TotalPvrItems *int        `json:"totalPvrItems"`
	PvrItems      *[]RawEntry `json:"pvrItems"`
}

// RawEntry is one PVR item as reported by the box. Every key is optional.
type RawEntry struct {
	Status        string `json:"status"`
	Start         *int64 `json:"st"`
	Title         Text   `json:"t"`
	SeasonNumber  Text   `json:"seasonnumber"`
	EpisodeNumber Text   `json:"episodenumber"`
}

// StartTime returns the scheduled start and whether the item carried one.
func (r RawEntry) StartTime() (time.Time, bool) {
	if r.Start == nil {
		return time.Time{}, false
	}
	return time.Unix(*r.Start, 0), true
}

// Text is an optional JSON scalar kept as text. The box sends season and
// episode numbers as numbers on some firmware and strings on others.
type Text struct {
	Value string
	Valid bool
}

// UnmarshalJSON accepts strings, numbers and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Text{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text{Value: s, Valid: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("text field: %w", err)
	}
	*t = Text{Value: n.String(), Valid: true}
	return nil
}

// MarshalJSON writes the value, or null when absent.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// Entry is the normalized form of a scheduled recording. All four fields are
// always present; missing data is the empty string.
type Entry struct {
	Title     string `json:"title"`
	Season    string `json:"season"`
	Episode   string `json:"episode"`
	StartTime string `json:"starttime"`
}
