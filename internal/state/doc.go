// Package state provides the persisted application-state store for ticktock.
//
// # Overview
//
// Store holds a single AppState value (active screen, active view and the
// user's profile) and writes every mutation through to a storage.KV under
// StorageKey. The UI and the CLI are consumers: they read through Snapshot or
// Subscribe and request changes through Set, Update, Reset, SetMode, SetView
// and UpdateUserData. Nothing else writes the value or the storage entry.
//
// # Loading
//
// New reads the stored snapshot once. Reconcile turns it into a canonical
// AppState:
//
//	Defaults()                      hardcoded start state
//	  ← root fields from snapshot   mode, currentView
//	  ← userData fields              name, age, country, ... each decoded alone
//	  → lifeExpectancy computed     when age is known and none was stored
//
// The merge is shallow at two levels. deadline and exclusions are taken
// wholesale from the snapshot when present; new fields inside them do not
// inherit defaults. A field with the wrong type keeps its default and a
// warning is logged. A snapshot that is not a JSON object is discarded,
// logged, and the defaults are used. Storage being absent (nil KV) is a
// supported in-memory mode.
//
// Snapshots written by Encode carry a "version" key. Unversioned snapshots
// from earlier releases pass through the migrations table first.
//
// # Derived Field
//
// lifeExpectancy follows age and country. UserDataPatch.Apply recomputes it
// when a patch touches age or country, unless the patch sets lifeExpectancy
// itself or the resulting age is null. A stored lifeExpectancy is an
// override and survives New and Reload; only snapshots without one get it
// computed on load.
//
// # Write Contract
//
//	Set(next)        persist → replace → notify
//	Update(fn)       next = fn(copy of current); then as Set
//	Reset()          remove entry → replace with Defaults() → notify
//
// A failed write does not roll back: memory and observers get the new value
// and the caller receives a *PersistError.
//
// # Concurrency Model
//
// Mutations and notifications are serialized by one mutex, so observers see
// values in call order. Snapshot only takes a read lock and may be called
// from an observer. Every value handed out is a deep copy.
//
// # Usage Example
//
//	store := state.New(state.Options{Storage: kv, Lookup: life.Expectancy, Logger: log})
//	unsubscribe := store.Subscribe(func(s state.AppState) { render(s) })
//	defer unsubscribe()
//
//	_ = store.UpdateUserData(state.UserDataPatch{Age: state.Ptr(40)})
//	_ = store.SetMode(state.ModeDashboard)
package state
