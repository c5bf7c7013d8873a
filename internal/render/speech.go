package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/five82/skyschedule/internal/skyq"
)

// Speech phrases the schedule as plain sentences for a text-to-speech engine.
// It avoids abbreviations like "S3" that voices read out letter by letter.
func Speech(entries []skyq.Entry) string {
	switch len(entries) {
	case 0:
		return "You have no recordings scheduled today."
	case 1:
		return "You have 1 recording scheduled today. " + speakEntry(entries[0])
	}
	sentences := make([]string, 0, len(entries)+1)
	sentences = append(sentences, fmt.Sprintf("You have %d recordings scheduled today.", len(entries)))
	for _, e := range entries {
		sentences = append(sentences, speakEntry(e))
	}
	return strings.Join(sentences, " ")
}

func speakEntry(e skyq.Entry) string {
	parts := []string{titleOr(e.Title, "an untitled recording")}
	if e.Season != "" {
		parts = append(parts, "season "+e.Season)
	}
	if e.Episode != "" {
		parts = append(parts, "episode "+e.Episode)
	}
	phrase := strings.Join(parts, ", ")
	// Entries built by hand may lack a start time.
	if e.StartTime == "" {
		return capitalize(phrase) + "."
	}
	return fmt.Sprintf("At %s, %s.", e.StartTime, phrase)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
