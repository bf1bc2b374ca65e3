package syncer

import "fmt"

// State is the cloud-sync health of one device session.
type State string

const (
	StateOffline State = "offline"
	StateSyncing State = "syncing"
	StateSynced  State = "synced"
	StateError   State = "error"
)

// transitions lists the legal forward moves. Returning to offline
// (disable, loss of authentication) is allowed from any state and is
// handled separately in CanTransition.
var transitions = map[State][]State{
	StateOffline: {StateSyncing},
	StateSyncing: {StateSynced, StateError},
	StateSynced:  {StateSyncing},
	StateError:   {StateSyncing},
}

func CanTransition(from, to State) bool {
	if to == StateOffline {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid sync state transition: %s -> %s", e.From, e.To)
}

// Machine tracks one session's sync state. It is not safe for
// concurrent use; callers serialize access per session.
type Machine struct {
	state State
}

func NewMachine() *Machine {
	return &Machine{state: StateOffline}
}

// Resume restores a machine from a persisted state.
func Resume(state State) *Machine {
	if state == "" {
		state = StateOffline
	}
	return &Machine{state: state}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) To(next State) error {
	if !CanTransition(m.state, next) {
		return &InvalidTransitionError{From: m.state, To: next}
	}
	m.state = next
	return nil
}
