// Package app is the composition root for skyschedule.
//
// # Modes
//
// Run has two modes sharing the same setup:
//
//  1. Load config.toml and prefs.toml
//  2. Resolve the box address: -addr flag, then config, then an interactive
//     prompt that offers the last address used
//  3. Build a skyq.Client, which probes the box once
//  4. Remember the address in prefs
//
// One-shot mode (the default) then fetches the schedule once and renders it
// to stdout in the configured format. Logs go to stderr so the output can be
// piped into a speech engine or a mirror widget.
//
// Watch mode (-watch) runs a Poller and the Bubble Tea UI under an errgroup:
//
//	Run()
//	 ├─> Poller.Run()   refresh every poll_interval, or on RequestRefresh
//	 │     └─> store.Update()
//	 └─> ui.Run()       renders store.Snapshot(), 'r' calls RequestRefresh
//
// Quitting the UI cancels the poller. Logs go to <log_dir>/skyschedule.log,
// which the UI can tail.
//
// # Error Handling
//
// Fatal (returned from Run): config errors, an unknown format, an invalid
// address, an unreachable box at startup, and in one-shot mode a failed
// fetch. In watch mode a failed refresh is logged and recorded in the store;
// the last good schedule stays on screen.
package app
