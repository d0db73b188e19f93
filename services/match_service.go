package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkalnins/volleyball-league/live"
	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context, tournamentID int, filter repositories.ListMatchesFilter) ([]models.Match, error)
	UpdateSchedule(ctx context.Context, id int, input UpdateScheduleInput) (*models.Match, error)
	StartMatch(ctx context.Context, id int) (*models.Match, error)
	UpdateLiveScore(ctx context.Context, id int, input RecordScoreInput) (*models.Match, error)
	RecordScore(ctx context.Context, id int, input RecordScoreInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
}

type CreateMatchInput struct {
	TournamentID int       `json:"tournament_id" validate:"required"`
	HomeTeamID   int       `json:"home_team_id" validate:"required"`
	AwayTeamID   int       `json:"away_team_id" validate:"required"`
	MatchTime    time.Time `json:"match_time" validate:"required"`
	Venue        *string   `json:"venue,omitempty"`
}

type UpdateScheduleInput struct {
	MatchTime *time.Time `json:"match_time,omitempty"`
	Venue     *string    `json:"venue,omitempty"`
}

type RecordScoreInput struct {
	Sets []models.SetScore `json:"sets" validate:"required,min=1"`
}

type matchService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	hub            *live.Hub
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	hub *live.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrSameTeamFixture
	}

	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		MatchTime:    input.MatchTime,
		Venue:        input.Venue,
		Status:       models.MatchStatusUpcoming,
	}
	err := s.matchRepo.Create(ctx, s.db, match)
	switch {
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return nil, ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchTeamsNotDistinct):
		return nil, ErrSameTeamFixture
	case err != nil:
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	s.attachDetails(ctx, match)
	return match, nil
}

// attachDetails loads both teams and the parsed score in parallel. Load
// failures degrade to a bare match rather than failing the request.
func (s *matchService) attachDetails(ctx context.Context, match *models.Match) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if team, err := s.teamRepo.GetByID(gctx, match.HomeTeamID); err == nil {
			match.HomeTeam = team
		}
		return nil
	})
	g.Go(func() error {
		if team, err := s.teamRepo.GetByID(gctx, match.AwayTeamID); err == nil {
			match.AwayTeam = team
		}
		return nil
	})
	_ = g.Wait()

	score, err := match.GetScore()
	if err != nil {
		s.logger.Warn("stored score is not valid JSON", "match_id", match.ID, "error", err)
		return
	}
	match.Score = score
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID int, filter repositories.ListMatchesFilter) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, filter)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if score, scoreErr := matches[i].GetScore(); scoreErr == nil {
			matches[i].Score = score
		}
	}
	return matches, nil
}

func (s *matchService) UpdateSchedule(ctx context.Context, id int, input UpdateScheduleInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchNotEditable
	}

	matchTime := sql.NullTime{}
	if input.MatchTime != nil {
		matchTime = sql.NullTime{Time: *input.MatchTime, Valid: true}
		match.MatchTime = *input.MatchTime
	}
	venue := match.Venue
	if input.Venue != nil {
		venue = input.Venue
		match.Venue = input.Venue
	}

	if err := s.matchRepo.UpdateSchedule(ctx, id, matchTime, venue); err != nil {
		return nil, err
	}
	return match, nil
}

// StartMatch flips an upcoming match to live and tells the room.
func (s *matchService) StartMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status != models.MatchStatusUpcoming {
		return nil, ErrMatchInvalidTransition
	}

	if err := s.matchRepo.UpdateStatus(ctx, id, models.MatchStatusLive); err != nil {
		return nil, err
	}
	match.Status = models.MatchStatusLive

	s.broadcast(match, live.EventMatchStarted)
	return match, nil
}

// UpdateLiveScore stores an in-progress score on a live match and pushes
// it to the match room without touching the lifecycle. The set in play
// may still be level, so undecided sets are tolerated here.
func (s *matchService) UpdateLiveScore(ctx context.Context, id int, input RecordScoreInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status != models.MatchStatusLive {
		return nil, ErrMatchInvalidTransition
	}

	score, err := buildProgressScore(input.Sets)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(score)
	if err != nil {
		return nil, fmt.Errorf("failed to encode score: %w", err)
	}
	rawStr := string(raw)

	if err := s.matchRepo.UpdateScoreAndStatus(ctx, id, &rawStr, models.MatchStatusLive); err != nil {
		return nil, err
	}
	match.ScoreJSON = &rawStr
	match.Score = score

	s.broadcast(match, live.EventScoreUpdated)
	return match, nil
}

// RecordScore validates and stores the final score of a live match and
// marks it completed. The aggregate set counts are always derived from
// the submitted sets, never trusted from the client.
func (s *matchService) RecordScore(ctx context.Context, id int, input RecordScoreInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status != models.MatchStatusLive {
		return nil, ErrMatchInvalidTransition
	}

	score, err := buildScore(input.Sets)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(score)
	if err != nil {
		return nil, fmt.Errorf("failed to encode score: %w", err)
	}
	rawStr := string(raw)

	if err := s.matchRepo.UpdateScoreAndStatus(ctx, id, &rawStr, models.MatchStatusCompleted); err != nil {
		return nil, err
	}
	match.Status = models.MatchStatusCompleted
	match.ScoreJSON = &rawStr
	match.Score = score

	s.broadcast(match, live.EventMatchCompleted)
	return match, nil
}

// buildScore derives the aggregate set counts and rejects payloads where
// any set has no decidable winner.
func buildScore(sets []models.SetScore) (*models.Score, error) {
	if len(sets) == 0 {
		return nil, ErrInvalidScore
	}
	score := &models.Score{Sets: sets}
	for _, set := range sets {
		if set.HomePoints < 0 || set.AwayPoints < 0 {
			return nil, ErrInvalidScore
		}
		// Equal points without an explicit winner means the set is
		// undecided; drawn matches are legal, undecided sets are not.
		switch set.WonBy() {
		case models.SideHome:
			score.HomeSets++
		case models.SideAway:
			score.AwaySets++
		default:
			return nil, ErrInvalidScore
		}
	}
	return score, nil
}

// buildProgressScore counts only the sets already decided; the set
// being played may sit at equal points.
func buildProgressScore(sets []models.SetScore) (*models.Score, error) {
	if len(sets) == 0 {
		return nil, ErrInvalidScore
	}
	score := &models.Score{Sets: sets}
	for _, set := range sets {
		if set.HomePoints < 0 || set.AwayPoints < 0 {
			return nil, ErrInvalidScore
		}
		switch set.WonBy() {
		case models.SideHome:
			score.HomeSets++
		case models.SideAway:
			score.AwaySets++
		}
	}
	return score, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	return nil
}

func (s *matchService) broadcast(match *models.Match, event live.EventType) {
	if s.hub == nil {
		return
	}
	room := fmt.Sprintf("match:%d", match.ID)
	s.hub.BroadcastToRoom(room, live.Message{Type: event, Payload: match, Room: room})
}
