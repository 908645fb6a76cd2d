// Package app wires configuration, logging, storage, the state store and the
// terminal UI together.
//
// # Startup
//
// Open performs, in order:
//
//  1. config.Load (missing file means defaults)
//  2. logging.New; the log file is optional and its failure is reported on
//     Env.LogErr rather than aborting
//  3. the storage probe: storage.Open for the configured backend. Any
//     failure, ErrUnavailable included, is logged and the store runs in
//     memory only
//  4. state.New, loading and reconciling the stored snapshot
//
// Run additionally loads prefs, starts the reloader and blocks in ui.Run.
// The CLI subcommands use Open directly and never start the UI.
//
// # Reloader
//
// StartReloader polls Store.Reload every two seconds so that a dashboard
// notices state written by another process. Consecutive read failures back
// off exponentially up to 30 seconds.
package app
