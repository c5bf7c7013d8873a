// Package ui provides the Bubble Tea watch view of today's schedule.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/skyschedule/internal/logtail"
	"github.com/five82/skyschedule/internal/prefs"
	"github.com/five82/skyschedule/internal/skyq"
	"github.com/five82/skyschedule/internal/state"
)

const (
	defaultUITick = time.Second
	logTailLines  = 200
	logPaneHeight = 8
)

// Refresher triggers an out-of-band schedule refresh. It reports false when
// the request was rate limited.
type Refresher interface {
	RequestRefresh() bool
}

// Options configures the UI.
type Options struct {
	Store     *state.Store
	Refresher Refresher
	Device    string
	ThemeName string
	PrefsPath string
	LogPath   string
	UITick    time.Duration
	Boundary  skyq.DayBoundary // zone and rollover the schedule was built with
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	store     *state.Store
	refresher Refresher
	device    string
	prefsPath string
	logPath   string
	uiTick    time.Duration
	boundary  skyq.DayBoundary
	now       func() time.Time

	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	logView viewport.Model

	width    int
	height   int
	ready    bool
	showLogs bool
	notice   string

	snapshot state.Snapshot
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	uiTick := opts.UITick
	if uiTick <= 0 {
		uiTick = defaultUITick
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		store:     opts.Store,
		refresher: opts.Refresher,
		device:    opts.Device,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		uiTick:    uiTick,
		boundary:  opts.Boundary,
		now:       now,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.uiTick), m.spinner.Tick}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Leave room for the panel border and padding.
		paneWidth := max(msg.Width-4, 0)
		if !m.ready {
			m.logView = viewport.New(paneWidth, logPaneHeight)
		} else {
			m.logView.Width = paneWidth
		}
		m.ready = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.uiTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		if m.showLogs {
			cmds = append(cmds, readLogsCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case logLinesMsg:
		if msg.err != nil {
			m.logView.SetContent(fmt.Sprintf("log unavailable: %v", msg.err))
		} else {
			m.logView.SetContent(msg.content)
		}
		m.logView.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.snapshot.HasSchedule {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refresher == nil {
			return m, nil
		}
		if m.refresher.RequestRefresh() {
			m.notice = "refresh requested"
		} else {
			m.notice = "refresh skipped: asked too recently"
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			m.notice = "theme not saved: " + err.Error()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, readLogsCmd(m.logPath)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if !m.showLogs {
			return m, nil
		}
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logLinesMsg struct {
	content string
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{content: "no log file"}
		}
		lines, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logLinesMsg{err: err}
		}
		for i, line := range lines {
			lines[i] = logtail.Pretty(line)
		}
		return logLinesMsg{content: joinLines(lines)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
