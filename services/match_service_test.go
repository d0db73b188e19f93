package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalnins/volleyball-league/models"
)

func newMatchService(matchRepo *stubMatchRepo, tournamentRepo *stubTournamentRepo, teamRepo *stubTeamRepo) MatchService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMatchService(nil, matchRepo, tournamentRepo, teamRepo, nil, logger)
}

func TestCreateMatchRejectsSameTeam(t *testing.T) {
	svc := newMatchService(&stubMatchRepo{}, &stubTournamentRepo{tournament: roundRobinTournament(1)}, &stubTeamRepo{})

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: 1,
		HomeTeamID:   7,
		AwayTeamID:   7,
		MatchTime:    time.Now(),
	})
	assert.ErrorIs(t, err, ErrSameTeamFixture)
}

func TestCreateMatchStartsUpcoming(t *testing.T) {
	matchRepo := &stubMatchRepo{}
	svc := newMatchService(matchRepo, &stubTournamentRepo{tournament: roundRobinTournament(1)}, &stubTeamRepo{})

	match, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: 1,
		HomeTeamID:   1,
		AwayTeamID:   2,
		MatchTime:    time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusUpcoming, match.Status)
	require.Len(t, matchRepo.created, 1)
}

func TestStartMatchTransition(t *testing.T) {
	matchRepo := &stubMatchRepo{byID: map[int]*models.Match{
		10: {ID: 10, Status: models.MatchStatusUpcoming},
		11: {ID: 11, Status: models.MatchStatusCompleted},
	}}
	svc := newMatchService(matchRepo, &stubTournamentRepo{}, &stubTeamRepo{})

	match, err := svc.StartMatch(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusLive, match.Status)
	require.NotNil(t, matchRepo.lastStatus)
	assert.Equal(t, models.MatchStatusLive, *matchRepo.lastStatus)

	// Completed matches cannot be restarted.
	_, err = svc.StartMatch(context.Background(), 11)
	assert.ErrorIs(t, err, ErrMatchInvalidTransition)
}

func TestRecordScoreCompletesLiveMatch(t *testing.T) {
	matchRepo := &stubMatchRepo{byID: map[int]*models.Match{
		10: {ID: 10, Status: models.MatchStatusLive},
	}}
	svc := newMatchService(matchRepo, &stubTournamentRepo{}, &stubTeamRepo{})

	match, err := svc.RecordScore(context.Background(), 10, RecordScoreInput{Sets: []models.SetScore{
		{HomePoints: 25, AwayPoints: 23},
		{HomePoints: 22, AwayPoints: 25},
		{HomePoints: 15, AwayPoints: 10},
	}})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, match.Status)
	require.NotNil(t, match.Score)
	assert.Equal(t, 2, match.Score.HomeSets)
	assert.Equal(t, 1, match.Score.AwaySets)

	// The persisted payload round-trips to the same aggregate counts.
	require.NotNil(t, matchRepo.lastScore)
	var stored models.Score
	require.NoError(t, json.Unmarshal([]byte(*matchRepo.lastScore), &stored))
	assert.Equal(t, 2, stored.HomeSets)
	assert.Equal(t, 1, stored.AwaySets)
}

func TestUpdateLiveScoreKeepsMatchLive(t *testing.T) {
	matchRepo := &stubMatchRepo{byID: map[int]*models.Match{
		10: {ID: 10, Status: models.MatchStatusLive},
	}}
	svc := newMatchService(matchRepo, &stubTournamentRepo{}, &stubTeamRepo{})

	// One decided set plus the set in play, still level.
	match, err := svc.UpdateLiveScore(context.Background(), 10, RecordScoreInput{Sets: []models.SetScore{
		{HomePoints: 25, AwayPoints: 23},
		{HomePoints: 12, AwayPoints: 12},
	}})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusLive, match.Status)
	require.NotNil(t, match.Score)
	assert.Equal(t, 1, match.Score.HomeSets)
	assert.Equal(t, 0, match.Score.AwaySets)

	require.NotNil(t, matchRepo.lastStatus)
	assert.Equal(t, models.MatchStatusLive, *matchRepo.lastStatus)
	require.NotNil(t, matchRepo.lastScore)

	_, err = svc.UpdateLiveScore(context.Background(), 10, RecordScoreInput{Sets: nil})
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestUpdateLiveScoreRejectsNonLiveMatch(t *testing.T) {
	matchRepo := &stubMatchRepo{byID: map[int]*models.Match{
		10: {ID: 10, Status: models.MatchStatusCompleted},
	}}
	svc := newMatchService(matchRepo, &stubTournamentRepo{}, &stubTeamRepo{})

	_, err := svc.UpdateLiveScore(context.Background(), 10, RecordScoreInput{Sets: []models.SetScore{
		{HomePoints: 10, AwayPoints: 8},
	}})
	assert.ErrorIs(t, err, ErrMatchInvalidTransition)
}

func TestRecordScoreRejectsNonLiveMatch(t *testing.T) {
	matchRepo := &stubMatchRepo{byID: map[int]*models.Match{
		10: {ID: 10, Status: models.MatchStatusUpcoming},
	}}
	svc := newMatchService(matchRepo, &stubTournamentRepo{}, &stubTeamRepo{})

	_, err := svc.RecordScore(context.Background(), 10, RecordScoreInput{Sets: []models.SetScore{
		{HomePoints: 25, AwayPoints: 20},
	}})
	assert.ErrorIs(t, err, ErrMatchInvalidTransition)
}

func TestRecordScoreValidation(t *testing.T) {
	home := models.SideHome
	cases := []struct {
		name string
		sets []models.SetScore
		ok   bool
	}{
		{name: "no sets", sets: nil, ok: false},
		{name: "negative points", sets: []models.SetScore{{HomePoints: -1, AwayPoints: 25}}, ok: false},
		{name: "undecided set", sets: []models.SetScore{{HomePoints: 24, AwayPoints: 24}}, ok: false},
		{name: "tied set with declared winner", sets: []models.SetScore{{HomePoints: 24, AwayPoints: 24, Winner: &home}}, ok: true},
		{name: "drawn match", sets: []models.SetScore{{HomePoints: 25, AwayPoints: 20}, {HomePoints: 18, AwayPoints: 25}}, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, err := buildScore(tc.sets)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidScore)
				return
			}
			require.NoError(t, err)
			assert.Len(t, score.Sets, len(tc.sets))
		})
	}
}

func TestUpdateScheduleRejectsCompleted(t *testing.T) {
	matchRepo := &stubMatchRepo{byID: map[int]*models.Match{
		10: {ID: 10, Status: models.MatchStatusCompleted},
	}}
	svc := newMatchService(matchRepo, &stubTournamentRepo{}, &stubTeamRepo{})

	newTime := time.Now().Add(48 * time.Hour)
	_, err := svc.UpdateSchedule(context.Background(), 10, UpdateScheduleInput{MatchTime: &newTime})
	assert.ErrorIs(t, err, ErrMatchNotEditable)
}
