package syndicate

import "strings"

type alias struct {
	name    string // lower case
	faction Faction
}

// aliases is searched in order; the first hit wins. Both the spaced in-game
// name and the concatenated form used by some log writers are listed.
var aliases = []alias{
	{"steelmeridian", Steel},
	{"steel meridian", Steel},
	{"arbitersofhexis", Arbiters},
	{"arbiters of hexis", Arbiters},
	{"cephalonsuda", Suda},
	{"cephalon suda", Suda},
	{"perrinsequence", Perrin},
	{"perrin sequence", Perrin},
	{"theperrinsequence", Perrin},
	{"redveil", Veil},
	{"red veil", Veil},
	{"newloka", Loka},
	{"new loka", Loka},
}

// ResolveAlias maps a syndicate name captured from the log to a Faction.
//
// An exact case-insensitive match is tried first. Failing that, the first
// alias (in table order) that contains the name, or is contained by it, wins,
// which tolerates truncated or padded captures.
//
// Blank names never resolve, so "Standing: +500" yields no event. A bare
// substring test would match the empty name against every alias and credit
// the first one, Steel Meridian.
func ResolveAlias(name string) (Faction, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return 0, false
	}
	for _, a := range aliases {
		if a.name == n {
			return a.faction, true
		}
	}
	for _, a := range aliases {
		if strings.Contains(n, a.name) || strings.Contains(a.name, n) {
			return a.faction, true
		}
	}
	return 0, false
}
