package standings

import (
	"testing"
	"time"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedRows(n int) []models.StandingRow {
	rows := make([]models.StandingRow, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, models.StandingRow{TeamID: i * 100, Points: 3 * (n - i)})
	}
	return rows
}

func TestSeedQuarterfinalsForEightTeams(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	matches, err := Seed(SeedParams{
		TournamentID: 42,
		Rows:         rankedRows(8),
		DefaultVenue: "City Arena",
		Now:          now,
	})
	require.NoError(t, err)
	require.Len(t, matches, 4)

	wantPairs := [][2]int{{100, 800}, {400, 500}, {200, 700}, {300, 600}}
	for i, m := range matches {
		assert.Equal(t, wantPairs[i][0], m.HomeTeamID, "match %d home seed", i)
		assert.Equal(t, wantPairs[i][1], m.AwayTeamID, "match %d away seed", i)
		require.NotNil(t, m.Stage)
		assert.Equal(t, models.StageQuarterFinal, *m.Stage)
		assert.Equal(t, models.MatchStatusUpcoming, m.Status)
		assert.Nil(t, m.ScoreJSON)
		assert.Equal(t, 42, m.TournamentID)
		assert.Equal(t, now.AddDate(0, 0, 1), m.MatchTime)
		require.NotNil(t, m.Venue)
		assert.Equal(t, "City Arena", *m.Venue)
	}
}

func TestSeedQuarterfinalsIgnoresRanksBeyondEight(t *testing.T) {
	matches, err := Seed(SeedParams{TournamentID: 1, Rows: rankedRows(11), Now: time.Now()})
	require.NoError(t, err)
	require.Len(t, matches, 4)
	for _, m := range matches {
		assert.LessOrEqual(t, m.HomeTeamID, 800)
		assert.LessOrEqual(t, m.AwayTeamID, 800)
	}
}

func TestSeedSemifinalsForFiveTeams(t *testing.T) {
	matches, err := Seed(SeedParams{TournamentID: 7, Rows: rankedRows(5), Now: time.Now()})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, 100, matches[0].HomeTeamID)
	assert.Equal(t, 400, matches[0].AwayTeamID)
	assert.Equal(t, 200, matches[1].HomeTeamID)
	assert.Equal(t, 300, matches[1].AwayTeamID)
	for _, m := range matches {
		require.NotNil(t, m.Stage)
		assert.Equal(t, models.StageSemiFinal, *m.Stage)
		assert.NotEqual(t, 500, m.HomeTeamID, "rank 5 must be ignored")
		assert.NotEqual(t, 500, m.AwayTeamID, "rank 5 must be ignored")
	}
}

func TestSeedFailsBelowFourTeams(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3} {
		matches, err := Seed(SeedParams{TournamentID: 1, Rows: rankedRows(n), Now: time.Now()})
		assert.ErrorIs(t, err, ErrNotEnoughTeams, "%d teams", n)
		assert.Empty(t, matches)
	}
}

func TestSeedOmitsVenueWhenUnset(t *testing.T) {
	matches, err := Seed(SeedParams{TournamentID: 1, Rows: rankedRows(4), Now: time.Now()})
	require.NoError(t, err)
	for _, m := range matches {
		assert.Nil(t, m.Venue)
	}
}
