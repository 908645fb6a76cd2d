package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ticktock/internal/state"
)

// stateUpdates bridges Store observers into the Bubble Tea loop. Observers run
// under the Store lock, so they never call Program.Send; they leave the
// newest value in a one-slot channel that a command drains.
type stateUpdates struct {
	ch          chan state.AppState
	unsubscribe func()
	closeOnce   sync.Once
}

func subscribe(store *state.Store) *stateUpdates {
	u := &stateUpdates{ch: make(chan state.AppState, 1)}
	u.unsubscribe = store.Subscribe(u.publish)
	return u
}

// publish keeps only the latest state. The Store serializes observer calls,
// so there is a single sender.
func (u *stateUpdates) publish(st state.AppState) {
	select {
	case <-u.ch:
	default:
	}
	select {
	case u.ch <- st:
	default:
	}
}

// next waits for the following state. It yields nil once closed.
func (u *stateUpdates) next() tea.Cmd {
	if u == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-u.ch
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

func (u *stateUpdates) close() {
	if u == nil {
		return
	}
	u.closeOnce.Do(func() {
		u.unsubscribe()
		close(u.ch)
	})
}
