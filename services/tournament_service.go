package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/repositories"
	"github.com/mkalnins/volleyball-league/standings"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error

	RegisterTeam(ctx context.Context, tournamentID, teamID int) error
	UnregisterTeam(ctx context.Context, tournamentID, teamID int) error

	GetStandings(ctx context.Context, tournamentID int) ([]models.StandingRow, error)
	AdvanceToKnockout(ctx context.Context, input AdvanceToKnockoutInput) ([]models.Match, error)
	CompleteTournament(ctx context.Context, id int) (*models.Tournament, error)
}

type CreateTournamentInput struct {
	Name      string    `json:"name" validate:"required"`
	Season    string    `json:"season" validate:"required"`
	Division  string    `json:"division" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

type UpdateTournamentInput struct {
	Name      *string    `json:"name,omitempty"`
	Season    *string    `json:"season,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type AdvanceToKnockoutInput struct {
	TournamentID int     `json:"-"`
	DefaultVenue *string `json:"default_venue,omitempty"`
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	rosterRepo     repositories.TournamentTeamRepository
	uploader       storageURLResolver
}

// storageURLResolver is the slice of the uploader the standings need:
// turning stored logo keys into public URLs.
type storageURLResolver interface {
	GetPublicURL(key string) string
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	rosterRepo repositories.TournamentTeamRepository,
	uploader storageURLResolver,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		rosterRepo:     rosterRepo,
		uploader:       uploader,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	division := models.Division(input.Division)
	if !division.Valid() {
		return nil, ErrInvalidDivision
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	tournament := &models.Tournament{
		Name:      input.Name,
		Season:    input.Season,
		Division:  division,
		Phase:     models.PhaseRoundRobin,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tournament.Name = *input.Name
	}
	if input.Season != nil {
		tournament.Season = *input.Season
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		tournament.EndDate = *input.EndDate
	}
	if !tournament.EndDate.After(tournament.StartDate) {
		return nil, ErrInvalidDateRange
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	err := s.tournamentRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentInUse):
		return ErrForbiddenOperation
	}
	return err
}

func (s *tournamentService) RegisterTeam(ctx context.Context, tournamentID, teamID int) error {
	tournament, err := s.GetTournamentByID(ctx, tournamentID)
	if err != nil {
		return err
	}
	// Registration only makes sense before the bracket exists.
	if tournament.Phase != models.PhaseRoundRobin {
		return ErrPhaseNotRoundRobin
	}

	entry := &models.TournamentTeam{TournamentID: tournamentID, TeamID: teamID}
	err = s.rosterRepo.Register(ctx, s.db, entry)
	switch {
	case errors.Is(err, repositories.ErrRosterEntryConflict):
		return ErrRegistrationConflict
	case errors.Is(err, repositories.ErrRosterReferenceBroken):
		return ErrTeamNotFound
	}
	return err
}

func (s *tournamentService) UnregisterTeam(ctx context.Context, tournamentID, teamID int) error {
	err := s.rosterRepo.Unregister(ctx, tournamentID, teamID)
	if errors.Is(err, repositories.ErrRosterEntryNotFound) {
		return ErrNotFound
	}
	return err
}

// GetStandings recomputes the round-robin table from scratch on every
// call. Knockout matches never contribute to the table.
func (s *tournamentService) GetStandings(ctx context.Context, tournamentID int) ([]models.StandingRow, error) {
	if _, err := s.GetTournamentByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	var (
		matches []models.Match
		teams   []*models.Team
		roster  []models.TournamentTeam
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gctx, tournamentID, repositories.ListMatchesFilter{RoundRobin: true})
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gctx, repositories.ListTeamsFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = s.rosterRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings inputs: %w", err)
	}

	teamValues := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		teamValues = append(teamValues, *t)
	}

	rows := standings.Compute(tournamentID, matches, teamValues, roster)
	if s.uploader != nil {
		byID := make(map[int]*models.Team, len(teams))
		for _, t := range teams {
			byID[t.ID] = t
		}
		for i := range rows {
			if t, ok := byID[rows[i].TeamID]; ok && t.LogoKey != nil && *t.LogoKey != "" {
				if url := s.uploader.GetPublicURL(*t.LogoKey); url != "" {
					rows[i].LogoURL = &url
				}
			}
		}
	}
	return rows, nil
}

// AdvanceToKnockout freezes the round-robin table, seeds the elimination
// bracket from it and flips the tournament phase inside a single
// transaction, so a mid-flight failure leaves the tournament untouched.
func (s *tournamentService) AdvanceToKnockout(ctx context.Context, input AdvanceToKnockoutInput) ([]models.Match, error) {
	tournament, err := s.GetTournamentByID(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Phase != models.PhaseRoundRobin {
		return nil, ErrPhaseNotRoundRobin
	}

	existing, err := s.matchRepo.ListByTournament(ctx, input.TournamentID, repositories.ListMatchesFilter{KnockoutOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing bracket: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrKnockoutAlreadySeeded
	}

	rows, err := s.GetStandings(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	bracket, err := standings.Seed(standings.SeedParams{
		TournamentID: input.TournamentID,
		Rows:         rows,
		DefaultVenue: derefString(input.DefaultVenue),
		Now:          time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, standings.ErrNotEnoughTeams) {
			return nil, ErrNotEnoughTeams
		}
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin seeding transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matchRepo.CreateBatch(ctx, tx, bracket); err != nil {
		return nil, fmt.Errorf("failed to insert bracket matches: %w", err)
	}
	if err := s.tournamentRepo.UpdatePhase(ctx, tx, input.TournamentID, models.PhaseKnockout); err != nil {
		return nil, fmt.Errorf("failed to advance tournament phase: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seeding transaction: %w", err)
	}
	return bracket, nil
}

func (s *tournamentService) CompleteTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.Phase != models.PhaseKnockout {
		return nil, ErrPhaseNotKnockout
	}
	if err := s.tournamentRepo.UpdatePhase(ctx, s.db, id, models.PhaseCompleted); err != nil {
		return nil, err
	}
	tournament.Phase = models.PhaseCompleted
	return tournament, nil
}
