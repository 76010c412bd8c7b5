// Package ledger holds the current standing of every syndicate.
package ledger

import (
	"fmt"

	"standings/internal/syndicate"
)

// Ledger maps every faction to its current standing. Values are not clamped:
// they may go negative or exceed the cap.
//
// A Ledger has a single owner and is not safe for concurrent use.
type Ledger struct {
	values syndicate.Standings
}

// New returns a ledger seeded with initial.
func New(initial syndicate.Standings) *Ledger {
	return &Ledger{values: initial}
}

// Apply adds ev.Delta to the faction's standing and returns the new value.
func (l *Ledger) Apply(ev syndicate.Event) (float64, error) {
	if !ev.Faction.Valid() {
		return 0, fmt.Errorf("apply %v: %w", ev, syndicate.ErrUnknownFaction)
	}
	l.values[ev.Faction] += float64(ev.Delta)
	return l.values[ev.Faction], nil
}

// Set overwrites a faction's standing, as when the player types a value in.
func (l *Ledger) Set(f syndicate.Faction, value float64) error {
	if !f.Valid() {
		return fmt.Errorf("set %v: %w", f, syndicate.ErrUnknownFaction)
	}
	l.values[f] = value
	return nil
}

// Get returns one faction's standing.
func (l *Ledger) Get(f syndicate.Faction) float64 {
	if !f.Valid() {
		return 0
	}
	return l.values[f]
}

// Snapshot returns a copy of every standing.
func (l *Ledger) Snapshot() syndicate.Standings {
	return l.values
}
