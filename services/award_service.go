package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/repositories"
)

type AwardService interface {
	GrantAward(ctx context.Context, input GrantAwardInput) (*models.Award, error)
	GetAwardByID(ctx context.Context, id int) (*models.Award, error)
	ListTournamentAwards(ctx context.Context, tournamentID int) ([]*models.Award, error)
	RevokeAward(ctx context.Context, id int) error
}

type GrantAwardInput struct {
	TournamentID int    `json:"tournament_id" validate:"required"`
	PlayerID     int    `json:"player_id" validate:"required"`
	Title        string `json:"title" validate:"required"`
}

type awardService struct {
	awardRepo  repositories.AwardRepository
	playerRepo repositories.PlayerRepository
}

func NewAwardService(awardRepo repositories.AwardRepository, playerRepo repositories.PlayerRepository) AwardService {
	return &awardService{awardRepo: awardRepo, playerRepo: playerRepo}
}

func (s *awardService) GrantAward(ctx context.Context, input GrantAwardInput) (*models.Award, error) {
	award := &models.Award{
		TournamentID: input.TournamentID,
		PlayerID:     input.PlayerID,
		Title:        input.Title,
	}
	if err := s.awardRepo.Create(ctx, award); err != nil {
		if errors.Is(err, repositories.ErrAwardReferenceInvalid) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to grant award: %w", err)
	}
	return award, nil
}

func (s *awardService) GetAwardByID(ctx context.Context, id int) (*models.Award, error) {
	award, err := s.awardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAwardNotFound) {
			return nil, ErrAwardNotFound
		}
		return nil, err
	}
	return award, nil
}

func (s *awardService) ListTournamentAwards(ctx context.Context, tournamentID int) ([]*models.Award, error) {
	awards, err := s.awardRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, award := range awards {
		if player, playerErr := s.playerRepo.GetByID(ctx, award.PlayerID); playerErr == nil {
			award.Player = player
		}
	}
	return awards, nil
}

func (s *awardService) RevokeAward(ctx context.Context, id int) error {
	if err := s.awardRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAwardNotFound) {
			return ErrAwardNotFound
		}
		return err
	}
	return nil
}
