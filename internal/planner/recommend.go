package planner

import (
	"fmt"
	"math"

	"standings/internal/syndicate"
)

// SafetyBuffer is the standing Loka and Veil are kept above so that farming
// their opponents never costs a rank.
const SafetyBuffer = 5000

const (
	minSafeFarm  = 1000
	rebuildChunk = 20000
)

// Severity ranks how urgent a recommendation is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityNormal   Severity = "normal"
	SeverityCritical Severity = "critical"
)

// Rule names the decision that produced a recommendation.
type Rule int

const (
	RuleRepairLoka Rule = iota + 1
	RuleRepairVeil
	RuleSteelViaVeil
	RuleGrowSuda
	RuleRebuildBuffer
	RuleAllMaxed
)

func (r Rule) String() string {
	switch r {
	case RuleRepairLoka:
		return "repair-loka"
	case RuleRepairVeil:
		return "repair-veil"
	case RuleSteelViaVeil:
		return "steel-via-veil"
	case RuleGrowSuda:
		return "grow-suda"
	case RuleRebuildBuffer:
		return "rebuild-buffer"
	case RuleAllMaxed:
		return "all-maxed"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// Recommendation is the next farming step. HasTarget is false only for
// RuleAllMaxed.
type Recommendation struct {
	Rule      Rule
	Target    syndicate.Faction
	HasTarget bool
	Amount    float64
	Rationale string
	Severity  Severity
}

// veilPerSteel is how much Veil must be farmed per point of Steel gained.
// sudaPerVeilPoint is how much Suda can be farmed per point of Veil headroom.
// Both are 2 for the current matrix.
var (
	veilPerSteel     = 1 / syndicate.Multiplier(syndicate.Veil, syndicate.Steel)
	sudaPerVeilPoint = 1 / -syndicate.Multiplier(syndicate.Suda, syndicate.Veil)
)

// Recommend walks an ordered list of rules and returns the first that fires.
func Recommend(s syndicate.Standings) Recommendation {
	loka := s[syndicate.Loka]
	veil := s[syndicate.Veil]
	steel := s[syndicate.Steel]
	suda := s[syndicate.Suda]
	arbiters := s[syndicate.Arbiters]

	switch {
	case loka < SafetyBuffer && loka < Cap:
		return Recommendation{
			Rule:      RuleRepairLoka,
			Target:    syndicate.Loka,
			HasTarget: true,
			Amount:    SafetyBuffer - loka,
			Rationale: "New Loka is below the safety buffer",
			Severity:  SeverityCritical,
		}

	case veil < SafetyBuffer && veil < Cap:
		return Recommendation{
			Rule:      RuleRepairVeil,
			Target:    syndicate.Veil,
			HasTarget: true,
			Amount:    SafetyBuffer - veil,
			Rationale: "Red Veil is below the safety buffer",
			Severity:  SeverityCritical,
		}

	case steel < Cap && veil < Cap:
		spaceInVeil := Cap - veil
		spaceInSteel := Cap - steel
		return Recommendation{
			Rule:      RuleSteelViaVeil,
			Target:    syndicate.Veil,
			HasTarget: true,
			Amount:    math.Min(spaceInVeil, spaceInSteel*veilPerSteel),
			Rationale: "farming Red Veil also raises Steel Meridian",
			Severity:  SeverityNormal,
		}

	case suda < Cap || arbiters < Cap:
		safeFarmLoka := loka - SafetyBuffer
		safeFarmVeil := (veil - SafetyBuffer) * sudaPerVeilPoint
		maxSafeFarm := math.Min(safeFarmLoka, safeFarmVeil)

		if maxSafeFarm > minSafeFarm {
			return Recommendation{
				Rule:      RuleGrowSuda,
				Target:    syndicate.Suda,
				HasTarget: true,
				Amount:    math.Min(maxSafeFarm, Cap-suda),
				Rationale: "Cephalon Suda can grow within the New Loka and Red Veil margins",
				Severity:  SeverityNormal,
			}
		}

		target := syndicate.Veil
		if safeFarmLoka < safeFarmVeil {
			target = syndicate.Loka
		}
		return Recommendation{
			Rule:      RuleRebuildBuffer,
			Target:    target,
			HasTarget: true,
			Amount:    math.Min(Cap-s[target], rebuildChunk),
			Rationale: "buffer rebuild required",
			Severity:  SeverityNormal,
		}

	default:
		return Recommendation{
			Rule:      RuleAllMaxed,
			Rationale: "all factions maxed",
			Severity:  SeverityInfo,
		}
	}
}
