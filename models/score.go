package models

type MatchSide string

const (
	SideHome MatchSide = "home"
	SideAway MatchSide = "away"
	SideNone MatchSide = ""
)

// SetScore holds the point pair of a single set. Winner, when present,
// overrides the points-based decision (used when service rules decide a
// set that ended on equal points).
type SetScore struct {
	HomePoints int        `json:"home_points"`
	AwayPoints int        `json:"away_points"`
	Winner     *MatchSide `json:"winner,omitempty"`
}

// WonBy returns the side that took the set, or SideNone when the points
// are equal and no explicit winner is recorded.
func (s SetScore) WonBy() MatchSide {
	if s.Winner != nil && (*s.Winner == SideHome || *s.Winner == SideAway) {
		return *s.Winner
	}
	switch {
	case s.HomePoints > s.AwayPoints:
		return SideHome
	case s.AwayPoints > s.HomePoints:
		return SideAway
	default:
		return SideNone
	}
}

// Score is the full result of a match: aggregate set counts plus the
// ordered per-set point pairs.
type Score struct {
	HomeSets int        `json:"home_sets"`
	AwaySets int        `json:"away_sets"`
	Sets     []SetScore `json:"sets"`
}

// TotalPoints sums the rally points of both sides across all sets.
func (s Score) TotalPoints() (home, away int) {
	for _, set := range s.Sets {
		home += set.HomePoints
		away += set.AwayPoints
	}
	return home, away
}
