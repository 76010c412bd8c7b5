package ui

import (
	"fmt"
	"strings"

	"standings/internal/planner"
	"standings/internal/syndicate"
	"standings/internal/tracker"
)

// ProjectionTable renders current standings, planned farm, net change and
// projected total for every syndicate.
func ProjectionTable(styles Styles, current syndicate.Standings, plan planner.FarmPlan, p planner.Projection) string {
	t := NewSimpleTable("Standing projection", []string{"Syndicate", "Current", "Farm", "Net", "Total", ""}).AlignRight(1, 2, 3, 4)
	for _, f := range syndicate.All {
		row := p[f]
		class := row.Class()
		t.AddRow(
			styles.Faction(f),
			Number(current[f]),
			Number(plan[f]),
			styles.ForDelta(row.NetChange).Render(Signed(row.NetChange)),
			styles.ForClass(class).Render(Number(row.Total)),
			styles.ForClass(class).Render(string(class)),
		)
	}
	return t.View(styles)
}

// StandingsTable renders the ledger.
func StandingsTable(styles Styles, title string, s syndicate.Standings) string {
	t := NewSimpleTable(title, []string{"Syndicate", "Standing"}).AlignRight(1)
	for _, f := range syndicate.All {
		t.AddRow(styles.Faction(f), styles.ForClass(planner.Classify(s[f])).Render(Number(s[f])))
	}
	return t.View(styles)
}

// RecommendationView renders a recommendation as a short paragraph.
func RecommendationView(styles Styles, rec planner.Recommendation) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Recommendation"))
	sb.WriteString("\n")

	badge := styles.ForSeverity(rec.Severity).Render("[" + strings.ToUpper(string(rec.Severity)) + "]")
	if rec.HasTarget {
		fmt.Fprintf(&sb, "%s farm %s by %s\n", badge, styles.Faction(rec.Target), styles.Bold.Render(Number(rec.Amount)))
	} else {
		fmt.Fprintf(&sb, "%s nothing to farm\n", badge)
	}
	fmt.Fprintf(&sb, "%s %s\n", styles.Muted.Render("why:"), rec.Rationale)
	return sb.String()
}

// NoticeLine renders one tracker notice.
func NoticeLine(styles Styles, n tracker.Notice) string {
	switch {
	case n.Status != nil && n.Status.Error != "":
		return styles.Error.Render(n.Status.Error)
	case n.Status != nil && n.Status.Active:
		return styles.Success.Render("Tracking active") + " " + styles.Muted.Render(n.Status.Path)
	case n.Status != nil:
		return styles.Muted.Render("Not tracking")
	case n.Change != nil:
		c := n.Change
		return fmt.Sprintf("%s %s %s %s",
			styles.Muted.Render(c.At.Format("15:04:05")),
			styles.Faction(c.Faction),
			styles.ForDelta(float64(c.Delta)).Render(Signed(float64(c.Delta))),
			styles.Muted.Render("→ "+Number(c.Value)))
	default:
		return ""
	}
}
