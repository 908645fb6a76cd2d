// Package storage provides the durable key-value facility behind the
// ticktock state store.
//
// # Overview
//
// Every backend satisfies KV, a synchronous string-keyed, string-valued store
// with Get, Set and Remove. The state store keeps its snapshot under a single
// fixed key and UI preferences under another; nothing else is written.
//
// # Backends
//
//   - Memory: map guarded by a mutex. Used by tests and --ephemeral runs.
//   - Dir: one file per key inside a data directory. Writes go to a temp
//     file that is renamed over the target, so a crash never leaves a torn
//     snapshot behind.
//   - SQLite: a single kv table in a sqlite3 database file.
//
// # Capability Probe
//
// Open selects a backend from Options and verifies it can be used. A failure
// is reported as an error wrapping ErrUnavailable; callers are expected to log
// it and continue without durable storage. Running without storage is a
// supported mode, not a fatal condition.
//
// # Usage Example
//
//	kv, err := storage.Open(storage.Options{Backend: storage.BackendDir, Path: dir})
//	if err != nil {
//		log.WithError(err).Warn("durable storage unavailable; state is in-memory only")
//		kv = nil
//	}
//	defer storage.Close(kv)
package storage
