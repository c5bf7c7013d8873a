// Package skyq reads the recording schedule of a Sky Q set-top box.
//
// # Overview
//
// The box exposes its PVR list at GET http://<ip>:9006/as/pvr with limit and
// offset query parameters. Items are listed oldest first, so the recordings
// due today sit near the end of the list. The client works in two phases:
//
//  1. Probe with limit=0 to learn totalPvrItems.
//  2. Fetch limit items starting at Offset(total, limit).
//
// The fetched window is then filtered to SCHEDULED items that start before
// the day cutoff, stably sorted by start time and normalized into Entry
// values whose fields are never missing.
//
// # Usage
//
//	client, err := skyq.NewClient(ctx, "192.168.1.20", skyq.Options{})
//	if err != nil {
//		return err // ErrInvalidAddress or ErrDeviceUnreachable
//	}
//	entries, err := client.Schedule(ctx)
//
// NewClient probes the box once, so a client only exists for a box that
// answered.
//
// # Probe count reuse
//
// The count from the most recent probe is reused while it is younger than
// Options.CountMaxAge (30s by default). A one-shot run therefore makes two
// requests in total; a long-lived client re-probes before each fetch once the
// count has gone stale.
//
// # Day boundary
//
// DayBoundary carries the rollover hour and time zone explicitly, and the
// clock is injected through Options.Now. Items already in the past but still
// marked SCHEDULED are kept; the box reports such items when a recording was
// missed and the caller decides what to show.
//
// # Errors
//
// Every transport error, timeout, non-2xx status and undecodable body is
// reported as a *DeviceError that matches ErrDeviceUnreachable. The window is
// a heuristic: if more than limit items were scheduled out of order, some of
// today's recordings can fall outside it. Raise the limit in that case.
package skyq
