// Package logparse turns game log lines into syndicate standing events.
package logparse

import (
	"regexp"
	"strconv"

	"standings/internal/syndicate"
)

// Patterns are tried in order and the first match wins. Each captures the
// syndicate name and a signed integer.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Standing|Rep(?:utation)?)[:\s]+([A-Za-z\s]+?)\s*([+-]?\d+)`),
	regexp.MustCompile(`(?i)Syndicate.*?([A-Za-z\s]+?)\s*([+-]?\d+)`),
}

// Extract returns the standing event carried by line, if any. Lines that match
// no pattern, name an unknown syndicate, or carry an unparsable number yield
// false.
func Extract(line string) (syndicate.Event, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		// A match ends the search even when it does not resolve.
		f, ok := syndicate.ResolveAlias(m[1])
		if !ok {
			return syndicate.Event{}, false
		}
		delta, err := strconv.Atoi(m[2])
		if err != nil {
			return syndicate.Event{}, false
		}
		return syndicate.Event{Faction: f, Delta: delta}, true
	}
	return syndicate.Event{}, false
}
