// Package config loads skyschedule settings from a TOML file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/skyschedule/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	address       = "192.168.1.20"   # Sky Q box IP; prompted for when empty
//	limit         = 50               # window size for the PVR fetch
//	rollover_hour = 0                # hour at which "today" ends (0-23)
//	timezone      = "Europe/London"  # empty uses the system zone
//	timeout       = "5s"             # per request
//	count_max_age = "30s"            # how long a probe count is reused; "0s" probes every fetch
//	poll_interval = "60s"            # watch mode refresh cadence
//	format        = "lines"          # lines, json, table or speech
//	log_level     = "info"
//	log_dir       = "~/.local/state/skyschedule"
//
// Every field is optional. Values are trimmed and tilde expansion is applied
// to log_dir.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors ("parse config: ...")
//   - Out of range limits, hours, unknown time zones and bad durations
//
// The address itself is validated by the skyq package, not here.
package config
