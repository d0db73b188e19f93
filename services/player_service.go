package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/repositories"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context, filter repositories.ListPlayersFilter) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
}

type CreatePlayerInput struct {
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name" validate:"required"`
	Number    *int       `json:"number,omitempty" validate:"omitempty,min=1,max=99"`
	Position  *string    `json:"position,omitempty"`
	TeamID    *int       `json:"team_id,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

type UpdatePlayerInput struct {
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	Number    *int       `json:"number,omitempty" validate:"omitempty,min=1,max=99"`
	Position  *string    `json:"position,omitempty"`
	TeamID    *int       `json:"team_id,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{playerRepo: playerRepo, teamRepo: teamRepo}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	player := &models.Player{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Number:    input.Number,
		TeamID:    input.TeamID,
		BirthDate: input.BirthDate,
	}
	if input.Position != nil {
		position := models.PlayerPosition(*input.Position)
		player.Position = &position
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if player.TeamID != nil {
		team, teamErr := s.teamRepo.GetByID(ctx, *player.TeamID)
		if teamErr == nil {
			player.Team = team
		}
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, filter repositories.ListPlayersFilter) ([]*models.Player, error) {
	return s.playerRepo.List(ctx, filter)
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if input.FirstName != nil {
		player.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		player.LastName = *input.LastName
	}
	if input.Number != nil {
		player.Number = input.Number
	}
	if input.Position != nil {
		position := models.PlayerPosition(*input.Position)
		player.Position = &position
	}
	if input.TeamID != nil {
		player.TeamID = input.TeamID
	}
	if input.BirthDate != nil {
		player.BirthDate = input.BirthDate
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}
