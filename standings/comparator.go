package standings

import (
	"sort"
	"strings"

	"github.com/mkalnins/volleyball-league/models"
)

// Less orders standing rows best-first: league points, then point
// differential, then points-for, all descending, then team name
// ascending (case-insensitive). Team IDs break the final tie so the
// order is a strict total order even for duplicate names, which keeps
// every ranked output reproducible.
func Less(a, b models.StandingRow) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.PointDifference != b.PointDifference {
		return a.PointDifference > b.PointDifference
	}
	if a.PointsFor != b.PointsFor {
		return a.PointsFor > b.PointsFor
	}
	an, bn := strings.ToLower(a.TeamName), strings.ToLower(b.TeamName)
	if an != bn {
		return an < bn
	}
	return a.TeamID < b.TeamID
}

// Sort sorts rows in place using Less.
func Sort(rows []models.StandingRow) {
	sort.Slice(rows, func(i, j int) bool {
		return Less(rows[i], rows[j])
	})
}
