// Package syndicate defines the six syndicates tracked by standings, the alias
// table used to recognise them in the game log, and the fixed relationship
// matrix that governs how farming one syndicate moves the others.
package syndicate

import (
	"errors"
	"fmt"
	"strings"
)

// Faction identifies one of the six syndicates. The set is closed: values
// outside [Steel, Loka] are invalid.
type Faction uint8

const (
	Steel Faction = iota
	Arbiters
	Suda
	Perrin
	Veil
	Loka
)

// Count is the number of syndicates. Arrays indexed by Faction use it as their length.
const Count = int(Loka) + 1

// ErrUnknownFaction is returned when a key does not name a syndicate.
var ErrUnknownFaction = errors.New("unknown faction")

// All lists every faction in display order.
var All = [Count]Faction{Steel, Arbiters, Suda, Perrin, Veil, Loka}

var keys = [Count]string{
	Steel:    "steel",
	Arbiters: "arbiters",
	Suda:     "suda",
	Perrin:   "perrin",
	Veil:     "veil",
	Loka:     "loka",
}

var displayNames = [Count]string{
	Steel:    "Steel Meridian",
	Arbiters: "Arbiters of Hexis",
	Suda:     "Cephalon Suda",
	Perrin:   "Perrin Sequence",
	Veil:     "Red Veil",
	Loka:     "New Loka",
}

// Valid reports whether f is one of the six syndicates.
func (f Faction) Valid() bool {
	return int(f) < Count
}

// Key returns the short identifier used in config files and flags.
func (f Faction) Key() string {
	if !f.Valid() {
		return fmt.Sprintf("faction(%d)", uint8(f))
	}
	return keys[f]
}

// DisplayName returns the in-game name.
func (f Faction) DisplayName() string {
	if !f.Valid() {
		return f.Key()
	}
	return displayNames[f]
}

func (f Faction) String() string {
	return f.Key()
}

// ParseKey resolves a short identifier such as "veil". Matching ignores case
// and surrounding whitespace.
func ParseKey(key string) (Faction, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, f := range All {
		if keys[f] == k {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFaction, key)
}

// Standings holds one value per faction. The array form guarantees that no
// faction is ever missing.
type Standings [Count]float64

// Get returns the value for f.
func (s Standings) Get(f Faction) float64 {
	return s[f]
}

// Map converts s to a key-indexed map, mainly for display and config round trips.
func (s Standings) Map() map[string]float64 {
	m := make(map[string]float64, Count)
	for _, f := range All {
		m[f.Key()] = s[f]
	}
	return m
}

// StandingsFromMap builds Standings from key-indexed values. Factions absent
// from m are zero.
func StandingsFromMap(m map[string]float64) (Standings, error) {
	var s Standings
	for k, v := range m {
		f, err := ParseKey(k)
		if err != nil {
			return Standings{}, err
		}
		s[f] = v
	}
	return s, nil
}

// Event is a single standing change read from one log line.
type Event struct {
	Faction Faction
	Delta   int
}

func (e Event) String() string {
	return fmt.Sprintf("%s %+d", e.Faction.Key(), e.Delta)
}
