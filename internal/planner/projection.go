// Package planner projects the outcome of a farming plan and recommends
// which syndicate to farm next. Everything here is a pure function of its
// arguments.
package planner

import "standings/internal/syndicate"

// Cap is the highest standing the game allows with a syndicate.
const Cap = 132000

// FarmPlan holds the standing the player intends to earn with each faction.
type FarmPlan [syndicate.Count]float64

// Row is the projected outcome for one faction.
type Row struct {
	NetChange float64
	Total     float64
}

// Class buckets the projected total.
func (r Row) Class() Class {
	return Classify(r.Total)
}

// Projection has one row per faction.
type Projection [syndicate.Count]Row

// Project applies plan through the relationship matrix and adds the result
// to current. No rounding is done here.
func Project(current syndicate.Standings, plan FarmPlan) Projection {
	var net [syndicate.Count]float64
	for _, src := range syndicate.All {
		amount := plan[src]
		if amount == 0 {
			continue
		}
		for _, e := range syndicate.Effects(src) {
			net[e.Target] += amount * e.Multiplier
		}
	}

	var p Projection
	for _, f := range syndicate.All {
		p[f] = Row{NetChange: net[f], Total: current[f] + net[f]}
	}
	return p
}

// Class is the display classification of a projected total.
type Class string

const (
	ClassSafe     Class = "safe"
	ClassNegative Class = "negative"
	ClassWarning  Class = "warning" // above the cap; the excess is wasted
)

// Classify returns negative below zero, warning above Cap, safe otherwise.
func Classify(total float64) Class {
	switch {
	case total < 0:
		return ClassNegative
	case total > Cap:
		return ClassWarning
	default:
		return ClassSafe
	}
}
