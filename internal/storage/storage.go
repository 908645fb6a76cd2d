package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnavailable reports that no durable storage could be opened.
var ErrUnavailable = errors.New("storage unavailable")

// KV is a synchronous string key-value store. Every backend rejects keys
// that are empty, padded with spaces, or contain a path separator, on all
// three operations.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendDir    Backend = "dir"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Options select and locate a backend.
type Options struct {
	Backend Backend
	// Path is a directory for BackendDir and a database file for BackendSQLite.
	Path string
}

// ParseBackend maps a config value to a Backend. Blank selects BackendDir.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendDir:
		return BackendDir, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q", s)
	}
}

// Open probes and returns the backend described by opts.
func Open(opts Options) (KV, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		db, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return db, nil
	case BackendDir, "":
		dir, err := OpenDir(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return dir, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrUnavailable, opts.Backend)
	}
}

// Close releases kv when the backend holds resources. It accepts nil.
func Close(kv KV) error {
	if c, ok := kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func validateKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return errors.New("key is empty")
	}
	if trimmed != key || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
