package standings

import (
	"encoding/json"
	"testing"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func team(id int, name string) models.Team {
	return models.Team{ID: id, Name: name, ShortName: name[:3], Division: models.DivisionFirst}
}

func completedMatch(t *testing.T, tournamentID, homeID, awayID int, score *models.Score) models.Match {
	t.Helper()
	m := models.Match{
		TournamentID: tournamentID,
		HomeTeamID:   homeID,
		AwayTeamID:   awayID,
		Status:       models.MatchStatusCompleted,
	}
	if score != nil {
		raw, err := json.Marshal(score)
		require.NoError(t, err)
		s := string(raw)
		m.ScoreJSON = &s
	}
	return m
}

func scoreFromSets(sets ...[2]int) *models.Score {
	score := &models.Score{}
	for _, s := range sets {
		set := models.SetScore{HomePoints: s[0], AwayPoints: s[1]}
		score.Sets = append(score.Sets, set)
		switch set.WonBy() {
		case models.SideHome:
			score.HomeSets++
		case models.SideAway:
			score.AwaySets++
		}
	}
	return score
}

func TestComputeSingleDecidedMatch(t *testing.T) {
	teams := []models.Team{team(1, "Alpha"), team(2, "Bravo")}
	matches := []models.Match{
		completedMatch(t, 10, 1, 2, scoreFromSets([2]int{25, 23}, [2]int{22, 25}, [2]int{15, 10})),
	}

	rows := Compute(10, matches, teams, nil)
	require.Len(t, rows, 2)

	winner, loser := rows[0], rows[1]
	assert.Equal(t, 1, winner.TeamID)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 0, winner.Losses)
	assert.Equal(t, PointsPerWin, winner.Points)
	assert.Equal(t, 62, winner.PointsFor)
	assert.Equal(t, 58, winner.PointsAgainst)
	assert.Equal(t, 4, winner.PointDifference)

	assert.Equal(t, 2, loser.TeamID)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 0, loser.Points)
	assert.Equal(t, -4, loser.PointDifference)
}

func TestComputeDrawAwardsOnePointEach(t *testing.T) {
	teams := []models.Team{team(1, "Alpha"), team(2, "Bravo")}
	matches := []models.Match{
		completedMatch(t, 10, 1, 2, scoreFromSets([2]int{25, 20}, [2]int{20, 25})),
	}

	rows := Compute(10, matches, teams, nil)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, 1, row.Draws)
		assert.Equal(t, PointsPerDraw, row.Points)
		assert.Zero(t, row.Wins)
		assert.Zero(t, row.Losses)
	}
}

func TestComputeSkipsUnscoredAndForeignMatches(t *testing.T) {
	teams := []models.Team{team(1, "Alpha"), team(2, "Bravo"), team(3, "Charlie")}
	live := completedMatch(t, 10, 1, 3, scoreFromSets([2]int{25, 20}, [2]int{25, 20}))
	live.Status = models.MatchStatusLive
	otherTournament := completedMatch(t, 99, 1, 2, scoreFromSets([2]int{25, 1}, [2]int{25, 1}))

	matches := []models.Match{
		completedMatch(t, 10, 1, 2, nil), // completed but never scored
		live,
		otherTournament,
	}

	rows := Compute(10, matches, teams, nil)
	require.Len(t, rows, 2) // only the unscored match introduces its teams
	for _, row := range rows {
		assert.Zero(t, row.GamesPlayed, "skipped matches must contribute nothing")
		assert.Zero(t, row.Points)
	}
}

func TestComputeIgnoresMalformedScore(t *testing.T) {
	broken := "{not json"
	m := models.Match{
		TournamentID: 10,
		HomeTeamID:   1,
		AwayTeamID:   2,
		Status:       models.MatchStatusCompleted,
		ScoreJSON:    &broken,
	}

	rows := Compute(10, []models.Match{m}, []models.Team{team(1, "Alpha"), team(2, "Bravo")}, nil)
	require.Len(t, rows, 2)
	assert.Zero(t, rows[0].GamesPlayed)
	assert.Zero(t, rows[1].GamesPlayed)
}

func TestComputeExcludesKnockoutMatches(t *testing.T) {
	teams := []models.Team{team(1, "Alpha"), team(2, "Bravo")}
	stage := models.StageSemiFinal
	ko := completedMatch(t, 10, 1, 2, scoreFromSets([2]int{25, 10}, [2]int{25, 10}))
	ko.Stage = &stage

	rows := Compute(10, []models.Match{ko}, teams, nil)
	assert.Empty(t, rows, "knockout matches alone must not seed the table")
}

func TestComputeRosterTeamsAppearWithZeroStats(t *testing.T) {
	teams := []models.Team{team(1, "Alpha"), team(2, "Bravo"), team(3, "Zulu")}
	matches := []models.Match{
		// A draw keeps both played teams on a single point so the
		// roster-only team has strictly fewer.
		completedMatch(t, 10, 1, 2, scoreFromSets([2]int{25, 20}, [2]int{20, 25})),
	}
	roster := []models.TournamentTeam{
		{TournamentID: 10, TeamID: 3},
		{TournamentID: 99, TeamID: 1}, // other tournament, ignored
	}

	rows := Compute(10, matches, teams, roster)
	require.Len(t, rows, 3)

	last := rows[len(rows)-1]
	assert.Equal(t, 3, last.TeamID)
	assert.Zero(t, last.GamesPlayed)
	assert.Zero(t, last.Points)
	assert.Equal(t, "Zulu", last.TeamName)
}

func TestComputeRosterTeamRanksAboveLoser(t *testing.T) {
	// On equal points the zero differential of an unplayed team beats a
	// loser's negative one; the name tie-break never enters.
	teams := []models.Team{team(1, "Alpha"), team(2, "Bravo"), team(3, "Zulu")}
	matches := []models.Match{
		completedMatch(t, 10, 1, 2, scoreFromSets([2]int{25, 20}, [2]int{25, 20})),
	}
	roster := []models.TournamentTeam{{TournamentID: 10, TeamID: 3}}

	rows := Compute(10, matches, teams, roster)
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].TeamID)
	assert.Equal(t, 3, rows[1].TeamID)
	assert.Equal(t, 2, rows[2].TeamID)
	assert.Equal(t, -10, rows[2].PointDifference)
}

func TestComputeSetWinnerOverride(t *testing.T) {
	// Third set ends on equal points; service rules award it to the away
	// side via the explicit winner flag.
	away := models.SideAway
	score := &models.Score{
		HomeSets: 1,
		AwaySets: 2,
		Sets: []models.SetScore{
			{HomePoints: 25, AwayPoints: 20},
			{HomePoints: 18, AwayPoints: 25},
			{HomePoints: 15, AwayPoints: 15, Winner: &away},
		},
	}
	matches := []models.Match{completedMatch(t, 10, 1, 2, score)}

	rows := Compute(10, matches, []models.Team{team(1, "Alpha"), team(2, "Bravo")}, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].TeamID)
	assert.Equal(t, 1, rows[0].Wins)
	assert.Equal(t, 1, rows[1].Losses)
}

func TestComputeWinsEqualLossesAcrossTable(t *testing.T) {
	teams := []models.Team{team(1, "Alpha"), team(2, "Bravo"), team(3, "Charlie"), team(4, "Delta")}
	matches := []models.Match{
		completedMatch(t, 10, 1, 2, scoreFromSets([2]int{25, 20}, [2]int{25, 23}, [2]int{25, 22})),
		completedMatch(t, 10, 3, 4, scoreFromSets([2]int{20, 25}, [2]int{23, 25})),
		completedMatch(t, 10, 1, 3, scoreFromSets([2]int{25, 18}, [2]int{22, 25}, [2]int{15, 12})),
		completedMatch(t, 10, 2, 4, scoreFromSets([2]int{25, 20}, [2]int{20, 25})), // draw
	}

	rows := Compute(10, matches, teams, nil)
	require.Len(t, rows, 4)

	var wins, losses int
	for _, row := range rows {
		wins += row.Wins
		losses += row.Losses
		assert.Equal(t, row.PointsFor-row.PointsAgainst, row.PointDifference)
	}
	assert.Equal(t, wins, losses, "every decisive match produces exactly one win and one loss")
}

func TestComputeOutputAlreadySorted(t *testing.T) {
	teams := []models.Team{team(1, "Alpha"), team(2, "Bravo"), team(3, "Charlie"), team(4, "Delta")}
	matches := []models.Match{
		completedMatch(t, 10, 1, 2, scoreFromSets([2]int{25, 20}, [2]int{25, 23}, [2]int{25, 22})),
		completedMatch(t, 10, 3, 4, scoreFromSets([2]int{25, 10}, [2]int{25, 12})),
		completedMatch(t, 10, 2, 3, scoreFromSets([2]int{25, 23}, [2]int{23, 25}, [2]int{16, 14})),
	}

	rows := Compute(10, matches, teams, nil)
	resorted := make([]models.StandingRow, len(rows))
	copy(resorted, rows)
	Sort(resorted)
	assert.Equal(t, rows, resorted, "feeding the output back through the comparator must not reorder it")
}
