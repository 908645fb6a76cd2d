// Package config loads ticktock's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/ticktock/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// TICKTOCK_LOG_LEVEL overrides [log] level in every case.
//
// # Default Values
//
//   - Storage backend: dir
//   - Data directory: $XDG_DATA_HOME/ticktock or ~/.local/share/ticktock
//   - SQLite file: <data dir>/ticktock.db (when backend = "sqlite")
//   - Log file: ~/.local/state/ticktock/ticktock.log
//   - Log level/format: info / text
//   - Theme: Nightfox
//   - Clock tick: 1s
//
// # TOML Format
//
//	[storage]
//	backend = "sqlite"           # dir | sqlite | memory
//	path = "~/.ticktock/state.db"
//
//	[log]
//	level = "debug"
//	file = "~/.ticktock/ticktock.log"
//	format = "json"              # text | json
//
//	[ui]
//	theme = "Kanagawa"
//	tick_seconds = 1
//
// Every field is optional. Tilde expansion is performed on paths. Backend and
// format values are validated by the packages that consume them.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and TOML
// syntax errors. A missing file is not an error.
package config
