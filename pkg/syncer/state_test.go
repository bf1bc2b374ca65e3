package syncer

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
		want bool
	}{
		{"offline to syncing", StateOffline, StateSyncing, true},
		{"syncing to synced", StateSyncing, StateSynced, true},
		{"syncing to error", StateSyncing, StateError, true},
		{"synced back to syncing", StateSynced, StateSyncing, true},
		{"error back to syncing", StateError, StateSyncing, true},

		{"offline straight to synced", StateOffline, StateSynced, false},
		{"offline straight to error", StateOffline, StateError, false},
		{"synced straight to error", StateSynced, StateError, false},
		{"error straight to synced", StateError, StateSynced, false},

		{"any state may go offline: syncing", StateSyncing, StateOffline, true},
		{"any state may go offline: synced", StateSynced, StateOffline, true},
		{"any state may go offline: error", StateError, StateOffline, true},
		{"offline to offline", StateOffline, StateOffline, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestMachineHappyPath(t *testing.T) {
	m := NewMachine()
	if m.State() != StateOffline {
		t.Fatalf("initial state = %s, want %s", m.State(), StateOffline)
	}

	for _, next := range []State{StateSyncing, StateSynced, StateSyncing, StateError, StateSyncing, StateSynced} {
		if err := m.To(next); err != nil {
			t.Fatalf("To(%s) from %s: %v", next, m.State(), err)
		}
	}
	if m.State() != StateSynced {
		t.Errorf("final state = %s, want %s", m.State(), StateSynced)
	}
}

func TestMachineRejectsIllegalMove(t *testing.T) {
	m := NewMachine()

	err := m.To(StateSynced)
	if err == nil {
		t.Fatal("expected error for offline -> synced")
	}

	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("error type = %T, want *InvalidTransitionError", err)
	}
	if invalid.From != StateOffline || invalid.To != StateSynced {
		t.Errorf("error detail = %s -> %s, want %s -> %s", invalid.From, invalid.To, StateOffline, StateSynced)
	}

	// State is unchanged after a rejected move.
	if m.State() != StateOffline {
		t.Errorf("state after rejected move = %s, want %s", m.State(), StateOffline)
	}
}

func TestResume(t *testing.T) {
	m := Resume(StateError)
	if m.State() != StateError {
		t.Fatalf("resumed state = %s, want %s", m.State(), StateError)
	}
	if err := m.To(StateSyncing); err != nil {
		t.Errorf("To(syncing) from resumed error state: %v", err)
	}

	// Empty persisted state falls back to offline.
	if got := Resume("").State(); got != StateOffline {
		t.Errorf("Resume(\"\") state = %s, want %s", got, StateOffline)
	}
}
