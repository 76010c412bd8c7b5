package tracker

import (
	"fmt"
	"time"

	"standings/internal/syndicate"
)

// TrackingStatus reports whether the session is following a log file.
// Error is set when tracking could not start.
type TrackingStatus struct {
	Active bool
	Path   string
	Error  string
}

// StandingChange is a standing event after it has been applied to the ledger.
type StandingChange struct {
	Faction syndicate.Faction
	Delta   int
	Value   float64 // standing after the change
	At      time.Time
}

// Notice carries exactly one of Status or Change. SessionID identifies the
// watch that produced it and is empty when tracking never started.
type Notice struct {
	SessionID string
	Status    *TrackingStatus
	Change    *StandingChange
}

func (n Notice) String() string {
	switch {
	case n.Status != nil && n.Status.Error != "":
		return fmt.Sprintf("status inactive: %s", n.Status.Error)
	case n.Status != nil && n.Status.Active:
		return fmt.Sprintf("status active: %s", n.Status.Path)
	case n.Status != nil:
		return "status inactive"
	case n.Change != nil:
		return fmt.Sprintf("change %s %+d", n.Change.Faction.Key(), n.Change.Delta)
	default:
		return "empty notice"
	}
}
