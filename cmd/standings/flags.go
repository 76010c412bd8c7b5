package main

import (
	"fmt"
	"strconv"

	"standings/internal/syndicate"
)

// applyFactionValues overwrites base with key=value flag pairs.
func applyFactionValues(base syndicate.Standings, pairs map[string]string) (syndicate.Standings, error) {
	for k, v := range pairs {
		f, err := syndicate.ParseKey(k)
		if err != nil {
			return base, err
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return base, fmt.Errorf("value for %s: %w", f.Key(), err)
		}
		base[f] = n
	}
	return base, nil
}

// currentStandings starts from the configured standings and applies --current.
func currentStandings(pairs map[string]string) (syndicate.Standings, error) {
	base, err := cfg.InitialStandings()
	if err != nil {
		return base, err
	}
	return applyFactionValues(base, pairs)
}
