// Package ui renders today's schedule in the terminal for watch mode.
//
// The model never talks to the box. It reads state.Store snapshots on a one
// second tick, and asks the poller for an early refresh through the
// Refresher interface when the user presses r. The poller rate limits those
// requests, and the model shows a notice when one is dropped.
//
// Rows are colored by start time: entries already started are muted, the
// next one is highlighted, later ones use the normal text color. The log pane
// (l) tails the watch-mode log file through the logtail package.
//
// Theme changes (t) are written back to prefs.toml immediately.
package ui
