package state

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/five82/ticktock/internal/storage"
)

// Options configure a Store.
type Options struct {
	// Storage is the durable backend. Nil runs the store in memory only.
	Storage storage.KV
	// Lookup recomputes lifeExpectancy. Nil disables recomputation.
	Lookup LifeExpectancyFunc
	Logger logrus.FieldLogger
	// Key overrides StorageKey.
	Key string
}

// Observer receives state values. It runs while the Store is locked, so it
// must not mutate the Store or unsubscribe; Snapshot is safe.
type Observer func(AppState)

// Store holds the application state and writes it through to storage.
type Store struct {
	// mu serializes mutations and their notifications so observers see
	// values in mutation order.
	mu sync.Mutex

	readMu  sync.RWMutex
	current AppState

	subs   []subscription
	nextID int

	kv     storage.KV
	lookup LifeExpectancyFunc
	log    logrus.FieldLogger
	key    string

	// lastRaw is the stored text this store last read or wrote. Guarded by mu.
	lastRaw string
}

type subscription struct {
	id int
	fn Observer
}

// New builds a Store, loading and reconciling any stored snapshot.
func New(opts Options) *Store {
	s := &Store{
		kv:     opts.Storage,
		lookup: opts.Lookup,
		log:    opts.Logger,
		key:    opts.Key,
	}
	if s.log == nil {
		s.log = discardLogger()
	}
	if s.key == "" {
		s.key = StorageKey
	}
	s.current = s.load()
	return s
}

func (s *Store) load() AppState {
	if s.kv == nil {
		s.log.Debug("no durable storage; starting from defaults")
		return Defaults()
	}
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.log.WithError(err).Warn("read stored state failed; starting from defaults")
		return Defaults()
	}
	if !ok || raw == "" {
		return Defaults()
	}
	s.lastRaw = raw
	st, err := Reconcile([]byte(raw), s.lookup, s.log)
	if err != nil {
		s.log.WithError(err).Error("Failed to parse stored state")
		return Defaults()
	}
	return st
}

// Reload picks up a snapshot written by another process. When the stored
// text differs from what this store last read or wrote, it is reconciled and
// published to observers without being written back. A removed entry reloads
// the defaults. Changes that failed to persist are never overwritten by the
// older stored copy.
func (s *Store) Reload() (changed bool, err error) {
	if s.kv == nil {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return false, fmt.Errorf("reload state: %w", err)
	}
	if !ok {
		raw = ""
	}
	if raw == s.lastRaw {
		return false, nil
	}
	s.lastRaw = raw
	if raw == "" {
		s.replace(Defaults())
		return true, nil
	}
	st, err := Reconcile([]byte(raw), s.lookup, s.log)
	if err != nil {
		s.log.WithError(err).Error("Failed to parse stored state")
		return false, nil
	}
	s.replace(st)
	return true, nil
}

// Persistent reports whether the store writes through to durable storage.
func (s *Store) Persistent() bool {
	return s.kv != nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() AppState {
	s.readMu.RLock()
	defer s.readMu.RUnlock()
	return s.current.Clone()
}

// Subscribe registers fn. It is called immediately with the current state and
// after every later mutation. The returned func removes the subscription.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	fn(s.Snapshot())

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Set replaces the whole state. The new value is kept in memory and delivered
// to observers even when persisting it fails; that failure is returned as a
// *PersistError.
func (s *Store) Set(next AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(next.Clone())
}

// Update replaces the state with fn(current). fn receives a copy and is
// called exactly once.
func (s *Store) Update(fn func(AppState) AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.Snapshot())
	return s.commit(next.Clone())
}

// Reset deletes the stored snapshot and restores the defaults. The defaults
// are not written back, so the storage entry stays absent.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.kv != nil {
		if rmErr := s.kv.Remove(s.key); rmErr != nil {
			err = &PersistError{Op: "remove", Key: s.key, Err: rmErr}
			s.log.WithError(rmErr).Error("remove stored state failed")
		} else {
			s.lastRaw = ""
		}
	}
	s.replace(Defaults())
	s.log.Info("state reset to defaults")
	return err
}

// SetMode replaces only the mode.
func (s *Store) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	return s.Update(func(st AppState) AppState { return st.WithMode(m) })
}

// SetView replaces only the current view.
func (s *Store) SetView(v View) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownView, v)
	}
	return s.Update(func(st AppState) AppState { return st.WithView(v) })
}

// UpdateUserData merges p into the user data, recomputing lifeExpectancy as
// described on UserDataPatch.Apply.
func (s *Store) UpdateUserData(p UserDataPatch) error {
	return s.Update(func(st AppState) AppState {
		st.UserData = p.Apply(st.UserData, s.lookup)
		return st
	})
}

// commit persists next and then publishes it. Callers hold mu.
func (s *Store) commit(next AppState) error {
	err := s.persist(next)
	s.replace(next)
	return err
}

func (s *Store) persist(next AppState) error {
	if s.kv == nil {
		return nil
	}
	data, err := Encode(next)
	if err != nil {
		s.log.WithError(err).Error("encode state failed")
		return &PersistError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		s.log.WithError(err).Error("write state failed")
		return &PersistError{Op: "write", Key: s.key, Err: err}
	}
	s.lastRaw = string(data)
	return nil
}

// replace swaps the in-memory value and notifies observers. Callers hold mu.
func (s *Store) replace(next AppState) {
	s.readMu.Lock()
	s.current = next
	s.readMu.Unlock()

	for _, sub := range s.subs {
		sub.fn(next.Clone())
	}
}
