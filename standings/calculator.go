package standings

import (
	"github.com/mkalnins/volleyball-league/models"
)

// League points awarded per match outcome. The league plays 3-1-0;
// draws only occur in formats with a fixed set count.
const (
	PointsPerWin  = 3
	PointsPerDraw = 1
)

// Compute reduces the completed round-robin matches of a tournament into
// one standing row per team. The team universe is the union of teams
// appearing in qualifying matches and teams registered through the
// roster; registered teams without a played match appear with all-zero
// counters.
//
// The returned slice is a complete re-derivation, sorted by Less. The
// function never fails: matches with absent or malformed score payloads
// contribute nothing.
func Compute(tournamentID int, matches []models.Match, teams []models.Team, roster []models.TournamentTeam) []models.StandingRow {
	teamsByID := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}

	rows := make(map[int]*models.StandingRow)
	ensureRow := func(teamID int) *models.StandingRow {
		if row, ok := rows[teamID]; ok {
			return row
		}
		row := &models.StandingRow{TeamID: teamID}
		if t, ok := teamsByID[teamID]; ok {
			row.TeamName = t.Name
			row.TeamShortName = t.ShortName
			row.LogoURL = t.LogoURL
		}
		rows[teamID] = row
		return row
	}

	for _, link := range roster {
		if link.TournamentID == tournamentID {
			ensureRow(link.TeamID)
		}
	}

	for i := range matches {
		m := &matches[i]
		if m.TournamentID != tournamentID || m.Status != models.MatchStatusCompleted || m.IsKnockout() {
			continue
		}
		home := ensureRow(m.HomeTeamID)
		away := ensureRow(m.AwayTeamID)
		score, err := m.GetScore()
		if err != nil || score == nil {
			// Nominally completed but not yet scored (or unreadable):
			// the teams stay in the table, the match contributes nothing.
			continue
		}
		applyResult(home, away, score)
	}

	table := make([]models.StandingRow, 0, len(rows))
	for _, row := range rows {
		row.PointDifference = row.PointsFor - row.PointsAgainst
		table = append(table, *row)
	}

	Sort(table)
	return table
}

func applyResult(home, away *models.StandingRow, score *models.Score) {
	home.GamesPlayed++
	away.GamesPlayed++

	homePoints, awayPoints := score.TotalPoints()
	home.PointsFor += homePoints
	home.PointsAgainst += awayPoints
	away.PointsFor += awayPoints
	away.PointsAgainst += homePoints

	switch {
	case score.HomeSets > score.AwaySets:
		home.Wins++
		home.Points += PointsPerWin
		away.Losses++
	case score.AwaySets > score.HomeSets:
		away.Wins++
		away.Points += PointsPerWin
		home.Losses++
	default:
		home.Draws++
		away.Draws++
		home.Points += PointsPerDraw
		away.Points += PointsPerDraw
	}
}
