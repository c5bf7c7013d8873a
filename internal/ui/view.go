package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/skyschedule/internal/render"
	"github.com/five82/skyschedule/internal/skyq"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	styles := m.theme.Styles()

	sections := []string{m.renderHeader(styles)}
	if status := m.renderStatus(styles); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.renderSchedule(styles))
	if m.showLogs {
		sections = append(sections, styles.Panel.Width(max(m.width-2, 0)).Render(m.logView.View()))
	}
	sections = append(sections, styles.Footer.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(styles Styles) string {
	now := m.now()
	left := "skyschedule"
	if m.device != "" {
		left += "  " + m.device
	}
	if m.boundary.Location != nil {
		now = now.In(m.boundary.Location)
	}
	right := now.Format("Mon 2 Jan")
	if !m.snapshot.LastSuccess.IsZero() {
		right += "  updated " + m.snapshot.LastSuccess.Format("15:04:05")
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.Header.Width(max(m.width, 0)).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderStatus(styles Styles) string {
	snap := m.snapshot
	var parts []string
	switch {
	case snap.IsOffline():
		parts = append(parts, styles.Danger.Render(fmt.Sprintf("box unreachable (%d failed refreshes)", snap.ConsecutiveFailures)))
	case snap.LastError != nil:
		parts = append(parts, styles.Warning.Render("last refresh failed: "+snap.LastError.Error()))
	}
	if m.notice != "" {
		parts = append(parts, styles.MutedText.Render(m.notice))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderSchedule(styles Styles) string {
	snap := m.snapshot
	if !snap.HasSchedule {
		return styles.Panel.Render(m.spinner.View() + " Contacting box...")
	}
	if len(snap.Entries) == 0 {
		return styles.Panel.Render(styles.MutedText.Render("No recordings scheduled today."))
	}

	states := rowStates(snap.Entries, m.now(), m.boundary)
	lines := make([]string, 0, len(snap.Entries))
	for i, e := range snap.Entries {
		lines = append(lines, styles.RowStyle(states[i]).Render(render.Line(e)))
	}
	title := styles.Badge.Render(fmt.Sprintf("Today · %d", len(snap.Entries)))
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.Panel.Render(strings.Join(lines, "\n")))
}

// rowStates classifies each entry as "past", "next" or "later" relative to
// now. Only the first entry starting at or after now is "next".
func rowStates(entries []skyq.Entry, now time.Time, boundary skyq.DayBoundary) []string {
	states := make([]string, len(entries))
	nextFound := false
	for i, e := range entries {
		start, ok := boundary.StartOf(e, now)
		switch {
		case !ok || start.Before(now):
			states[i] = "past"
		case !nextFound:
			states[i] = "next"
			nextFound = true
		default:
			states[i] = "later"
		}
	}
	return states
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return "(log is empty)"
	}
	return strings.Join(lines, "\n")
}
