package state

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMode = errors.New("unknown mode")
	ErrUnknownView = errors.New("unknown view")
)

// PersistError reports a failed write-through to durable storage. The
// in-memory state has already been updated when it is returned.
type PersistError struct {
	Op  string // encode, write or remove
	Key string
	Err error
}

func (e *PersistError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("persist state: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
