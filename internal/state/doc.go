// Package state shares the latest schedule between the watch-mode poller and
// the UI.
//
// The poller is the single writer and calls Update after every refresh; the
// UI reads copies through Snapshot on its own tick. A failed refresh keeps the
// previous schedule on screen and records the error, so a box that drops off
// the network for a minute does not blank the display:
//
//	store.Update(entries, nil) // replace schedule, clear error
//	store.Update(nil, err)     // keep schedule, record err, count failure
//
// Both Update and Snapshot copy the entry slice so neither side can mutate
// the other's view. The zero Store is ready to use.
package state
