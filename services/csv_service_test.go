package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalnins/volleyball-league/models"
)

func newCSVFixture(t *testing.T) (CSVService, *stubMatchRepo) {
	t.Helper()
	matchRepo, teamRepo, rosterRepo := newStandingsFixture(t)
	tournamentRepo := &stubTournamentRepo{tournament: roundRobinTournament(1)}
	tournamentSvc := NewTournamentService(nil, tournamentRepo, matchRepo, teamRepo, rosterRepo, nil)
	matchSvc := newMatchService(matchRepo, tournamentRepo, teamRepo)
	return NewCSVService(tournamentSvc, matchSvc, teamRepo), matchRepo
}

func TestExportStandingsCSV(t *testing.T) {
	svc, _ := newCSVFixture(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportStandings(context.Background(), 1, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5) // header + 4 teams
	assert.Equal(t, "rank,team,played,wins,draws,losses,points_for,points_against,difference,points", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,Jelgava,"))
	assert.True(t, strings.HasPrefix(lines[3], "3,Sigulda,0,0,0,0,"))
	assert.True(t, strings.HasPrefix(lines[4], "4,Liepaja,"))
}

func TestImportFixturesResolvesTeamNames(t *testing.T) {
	svc, matchRepo := newCSVFixture(t)

	input := strings.Join([]string{
		"home_team,away_team,match_time,venue",
		"Ventspils,Liepaja,2026-09-05 18:00,Ventspils Arena",
		"Jelgava,Sigulda,2026-09-06 14:30,",
	}, "\n")

	result, err := svc.ImportFixtures(context.Background(), 1, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Rejected)

	require.Len(t, matchRepo.created, 2)
	first := matchRepo.created[0]
	assert.Equal(t, models.MatchStatusUpcoming, first.Status)
	require.NotNil(t, first.Venue)
	assert.Equal(t, "Ventspils Arena", *first.Venue)
}

func TestImportFixturesRejectsBadRows(t *testing.T) {
	svc, matchRepo := newCSVFixture(t)

	input := strings.Join([]string{
		"Ventspils,Liepaja,2026-09-05 18:00",
		"Riga Vikings,Liepaja,2026-09-05 18:00",
		"Ventspils,Liepaja,next saturday",
		"Ventspils,Ventspils,2026-09-05 18:00",
	}, "\n")

	result, err := svc.ImportFixtures(context.Background(), 1, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Rejected, 3)
	assert.Equal(t, 2, result.Rejected[0].Line)
	assert.Contains(t, result.Rejected[0].Reason, "Riga Vikings")
	assert.Len(t, matchRepo.created, 1)
}

func TestImportFixturesEmptyFile(t *testing.T) {
	svc, _ := newCSVFixture(t)

	_, err := svc.ImportFixtures(context.Background(), 1, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrValidationFailed)
}
