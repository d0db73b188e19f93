package standings

import (
	"errors"
	"time"

	"github.com/mkalnins/volleyball-league/models"
)

// ErrNotEnoughTeams is reported when fewer than four ranked teams are
// available for knockout seeding. No matches are created in that case.
var ErrNotEnoughTeams = errors.New("not enough teams for knockout seeding (minimum 4 required)")

// SeedParams carries the inputs of a knockout seeding run.
type SeedParams struct {
	TournamentID int
	Rows         []models.StandingRow // final round-robin table, best-first
	DefaultVenue string
	Now          time.Time
}

// quarterfinal cross-bracket pairing by rank index: 1v8, 4v5, 2v7, 3v6.
// Keeps the top seeds apart until the semifinals.
var quarterfinalPairs = [4][2]int{{0, 7}, {3, 4}, {1, 6}, {2, 5}}

// semifinal pairing for a 4-team bracket: 1v4, 2v3.
var semifinalPairs = [2][2]int{{0, 3}, {1, 2}}

// Seed derives the first knockout round from the final round-robin
// standings: a quarterfinal bracket for 8+ ranked teams, semifinals for
// 4 to 7. Generated matches carry no score, status upcoming, a next-day
// placeholder time and the default venue; the office edits schedule and
// venue before play.
func Seed(params SeedParams) ([]models.Match, error) {
	rows := params.Rows

	var pairs [][2]int
	var stage models.KnockoutStage
	switch {
	case len(rows) >= 8:
		stage = models.StageQuarterFinal
		pairs = quarterfinalPairs[:]
	case len(rows) >= 4:
		stage = models.StageSemiFinal
		pairs = semifinalPairs[:]
	default:
		return nil, ErrNotEnoughTeams
	}

	matchTime := params.Now.AddDate(0, 0, 1)
	matches := make([]models.Match, 0, len(pairs))
	for _, p := range pairs {
		st := stage
		m := models.Match{
			TournamentID: params.TournamentID,
			HomeTeamID:   rows[p[0]].TeamID,
			AwayTeamID:   rows[p[1]].TeamID,
			MatchTime:    matchTime,
			Status:       models.MatchStatusUpcoming,
			Stage:        &st,
		}
		if params.DefaultVenue != "" {
			venue := params.DefaultVenue
			m.Venue = &venue
		}
		matches = append(matches, m)
	}
	return matches, nil
}
