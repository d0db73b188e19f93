package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/repositories"
)

type stubTournamentRepo struct {
	tournament *models.Tournament
	getErr     error
	phaseSet   *models.TournamentPhase
}

func (s *stubTournamentRepo) Create(ctx context.Context, t *models.Tournament) error { return nil }
func (s *stubTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.tournament, nil
}
func (s *stubTournamentRepo) List(ctx context.Context, f repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return nil, nil
}
func (s *stubTournamentRepo) Update(ctx context.Context, t *models.Tournament) error { return nil }
func (s *stubTournamentRepo) UpdatePhase(ctx context.Context, exec repositories.SQLExecutor, id int, phase models.TournamentPhase) error {
	s.phaseSet = &phase
	return nil
}
func (s *stubTournamentRepo) Delete(ctx context.Context, id int) error { return nil }

type stubMatchRepo struct {
	matches map[string][]models.Match // keyed by filter kind
	byID    map[int]*models.Match
	created []models.Match

	lastStatus *models.MatchStatus
	lastScore  *string
}

func (s *stubMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	s.created = append(s.created, *m)
	return nil
}
func (s *stubMatchRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []models.Match) error {
	s.created = append(s.created, matches...)
	return nil
}
func (s *stubMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	if m, ok := s.byID[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, repositories.ErrMatchNotFound
}
func (s *stubMatchRepo) ListByTournament(ctx context.Context, tournamentID int, f repositories.ListMatchesFilter) ([]models.Match, error) {
	if f.KnockoutOnly {
		return s.matches["knockout"], nil
	}
	if f.RoundRobin {
		return s.matches["round_robin"], nil
	}
	return s.matches["all"], nil
}
func (s *stubMatchRepo) UpdateSchedule(ctx context.Context, id int, t sql.NullTime, venue *string) error {
	return nil
}
func (s *stubMatchRepo) UpdateStatus(ctx context.Context, id int, st models.MatchStatus) error {
	s.lastStatus = &st
	return nil
}
func (s *stubMatchRepo) UpdateScoreAndStatus(ctx context.Context, id int, scoreJSON *string, st models.MatchStatus) error {
	s.lastStatus = &st
	s.lastScore = scoreJSON
	return nil
}
func (s *stubMatchRepo) Delete(ctx context.Context, id int) error { return nil }

type stubTeamRepo struct {
	teams []*models.Team
}

func (s *stubTeamRepo) Create(ctx context.Context, t *models.Team) error { return nil }
func (s *stubTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	for _, t := range s.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}
func (s *stubTeamRepo) GetByName(ctx context.Context, name string) (*models.Team, error) {
	for _, t := range s.teams {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}
func (s *stubTeamRepo) List(ctx context.Context, f repositories.ListTeamsFilter) ([]*models.Team, error) {
	return s.teams, nil
}
func (s *stubTeamRepo) Update(ctx context.Context, t *models.Team) error { return nil }
func (s *stubTeamRepo) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	return nil
}
func (s *stubTeamRepo) Delete(ctx context.Context, id int) error { return nil }

type stubRosterRepo struct {
	entries []models.TournamentTeam
}

func (s *stubRosterRepo) Register(ctx context.Context, exec repositories.SQLExecutor, e *models.TournamentTeam) error {
	s.entries = append(s.entries, *e)
	return nil
}
func (s *stubRosterRepo) Unregister(ctx context.Context, tournamentID, teamID int) error {
	return nil
}
func (s *stubRosterRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.TournamentTeam, error) {
	return s.entries, nil
}

func roundRobinTournament(id int) *models.Tournament {
	return &models.Tournament{
		ID:       id,
		Name:     "Kurzeme Open",
		Season:   "2026",
		Division: models.DivisionFirst,
		Phase:    models.PhaseRoundRobin,
	}
}

func leagueTeam(id int, name string) *models.Team {
	return &models.Team{ID: id, Name: name, ShortName: name[:3], Division: models.DivisionFirst}
}

func completedFixture(t *testing.T, tournamentID, home, away, homeSets, awaySets int) models.Match {
	t.Helper()
	sets := make([]models.SetScore, 0, homeSets+awaySets)
	for i := 0; i < homeSets; i++ {
		sets = append(sets, models.SetScore{HomePoints: 25, AwayPoints: 20})
	}
	for i := 0; i < awaySets; i++ {
		sets = append(sets, models.SetScore{HomePoints: 20, AwayPoints: 25})
	}
	raw, err := json.Marshal(models.Score{HomeSets: homeSets, AwaySets: awaySets, Sets: sets})
	require.NoError(t, err)
	rawStr := string(raw)
	return models.Match{
		TournamentID: tournamentID,
		HomeTeamID:   home,
		AwayTeamID:   away,
		Status:       models.MatchStatusCompleted,
		ScoreJSON:    &rawStr,
	}
}

func newStandingsFixture(t *testing.T) (*stubMatchRepo, *stubTeamRepo, *stubRosterRepo) {
	t.Helper()
	matchRepo := &stubMatchRepo{matches: map[string][]models.Match{
		"round_robin": {
			completedFixture(t, 1, 1, 2, 3, 0),
			completedFixture(t, 1, 3, 1, 3, 1),
		},
	}}
	teamRepo := &stubTeamRepo{teams: []*models.Team{
		leagueTeam(1, "Ventspils"),
		leagueTeam(2, "Liepaja"),
		leagueTeam(3, "Jelgava"),
		leagueTeam(4, "Sigulda"),
	}}
	rosterRepo := &stubRosterRepo{entries: []models.TournamentTeam{
		{TournamentID: 1, TeamID: 1},
		{TournamentID: 1, TeamID: 2},
		{TournamentID: 1, TeamID: 3},
		{TournamentID: 1, TeamID: 4},
	}}
	return matchRepo, teamRepo, rosterRepo
}

func TestGetStandingsRecomputesFromMatches(t *testing.T) {
	matchRepo, teamRepo, rosterRepo := newStandingsFixture(t)
	tournamentRepo := &stubTournamentRepo{tournament: roundRobinTournament(1)}
	svc := NewTournamentService(nil, tournamentRepo, matchRepo, teamRepo, rosterRepo, nil)

	rows, err := svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Both won once (3 points each); Jelgava ranks first on differential.
	assert.Equal(t, "Jelgava", rows[0].TeamName)
	assert.Equal(t, "Ventspils", rows[1].TeamName)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 3, rows[1].Points)

	// Registered but matchless team still shows up with zero counters,
	// and its zero differential ranks it above the losing side.
	assert.Equal(t, "Sigulda", rows[2].TeamName)
	assert.Zero(t, rows[2].GamesPlayed)
	assert.Equal(t, "Liepaja", rows[3].TeamName)
	assert.Equal(t, 1, rows[3].Losses)
}

func TestGetStandingsUnknownTournament(t *testing.T) {
	tournamentRepo := &stubTournamentRepo{getErr: repositories.ErrTournamentNotFound}
	svc := NewTournamentService(nil, tournamentRepo, &stubMatchRepo{}, &stubTeamRepo{}, &stubRosterRepo{}, nil)

	_, err := svc.GetStandings(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestAdvanceToKnockoutRejectsWrongPhase(t *testing.T) {
	tournament := roundRobinTournament(1)
	tournament.Phase = models.PhaseKnockout
	tournamentRepo := &stubTournamentRepo{tournament: tournament}
	svc := NewTournamentService(nil, tournamentRepo, &stubMatchRepo{}, &stubTeamRepo{}, &stubRosterRepo{}, nil)

	_, err := svc.AdvanceToKnockout(context.Background(), AdvanceToKnockoutInput{TournamentID: 1})
	assert.ErrorIs(t, err, ErrPhaseNotRoundRobin)
}

func TestAdvanceToKnockoutRejectsExistingBracket(t *testing.T) {
	stage := models.StageSemiFinal
	matchRepo := &stubMatchRepo{matches: map[string][]models.Match{
		"knockout": {{TournamentID: 1, Stage: &stage}},
	}}
	tournamentRepo := &stubTournamentRepo{tournament: roundRobinTournament(1)}
	svc := NewTournamentService(nil, tournamentRepo, matchRepo, &stubTeamRepo{}, &stubRosterRepo{}, nil)

	_, err := svc.AdvanceToKnockout(context.Background(), AdvanceToKnockoutInput{TournamentID: 1})
	assert.ErrorIs(t, err, ErrKnockoutAlreadySeeded)
}

func TestAdvanceToKnockoutRejectsShortTable(t *testing.T) {
	tournamentRepo := &stubTournamentRepo{tournament: roundRobinTournament(1)}
	teamRepo := &stubTeamRepo{teams: []*models.Team{leagueTeam(1, "Ventspils"), leagueTeam(2, "Liepaja")}}
	rosterRepo := &stubRosterRepo{entries: []models.TournamentTeam{
		{TournamentID: 1, TeamID: 1},
		{TournamentID: 1, TeamID: 2},
	}}
	svc := NewTournamentService(nil, tournamentRepo, &stubMatchRepo{}, teamRepo, rosterRepo, nil)

	_, err := svc.AdvanceToKnockout(context.Background(), AdvanceToKnockoutInput{TournamentID: 1})
	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}

func TestCreateTournamentValidation(t *testing.T) {
	svc := NewTournamentService(nil, &stubTournamentRepo{}, &stubMatchRepo{}, &stubTeamRepo{}, &stubRosterRepo{}, nil)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateTournament(context.Background(), CreateTournamentInput{
		Name: "Kurzeme Open", Season: "2026", Division: "third",
		StartDate: start, EndDate: start.AddDate(0, 3, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidDivision)

	_, err = svc.CreateTournament(context.Background(), CreateTournamentInput{
		Name: "Kurzeme Open", Season: "2026", Division: "first",
		StartDate: start, EndDate: start.AddDate(0, -1, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestRegisterTeamPhaseGuard(t *testing.T) {
	tournament := roundRobinTournament(1)
	tournament.Phase = models.PhaseKnockout
	svc := NewTournamentService(nil, &stubTournamentRepo{tournament: tournament}, &stubMatchRepo{}, &stubTeamRepo{}, &stubRosterRepo{}, nil)

	err := svc.RegisterTeam(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrPhaseNotRoundRobin)
}
