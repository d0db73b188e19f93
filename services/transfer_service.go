package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/repositories"
)

type TransferService interface {
	RecordTransfer(ctx context.Context, input RecordTransferInput) (*models.Transfer, error)
	GetTransferByID(ctx context.Context, id int) (*models.Transfer, error)
	ListTransfers(ctx context.Context, filter repositories.ListTransfersFilter) ([]*models.Transfer, error)
	DeleteTransfer(ctx context.Context, id int) error
}

type RecordTransferInput struct {
	PlayerID      int        `json:"player_id" validate:"required"`
	ToTeamID      int        `json:"to_team_id" validate:"required"`
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
	Note          *string    `json:"note,omitempty"`
}

type transferService struct {
	db           *sql.DB
	transferRepo repositories.TransferRepository
	playerRepo   repositories.PlayerRepository
	teamRepo     repositories.TeamRepository
}

func NewTransferService(
	db *sql.DB,
	transferRepo repositories.TransferRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
) TransferService {
	return &transferService{
		db:           db,
		transferRepo: transferRepo,
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
	}
}

// RecordTransfer writes the transfer record and moves the player to the
// destination team in one transaction; the history entry and the
// player's current team can never disagree.
func (s *transferService) RecordTransfer(ctx context.Context, input RecordTransferInput) (*models.Transfer, error) {
	player, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if player.TeamID != nil && *player.TeamID == input.ToTeamID {
		return nil, ErrTransferSameTeam
	}
	if _, err := s.teamRepo.GetByID(ctx, input.ToTeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	effective := time.Now().UTC()
	if input.EffectiveDate != nil {
		effective = *input.EffectiveDate
	}
	transfer := &models.Transfer{
		PlayerID:      input.PlayerID,
		FromTeamID:    player.TeamID,
		ToTeamID:      input.ToTeamID,
		EffectiveDate: effective,
		Note:          input.Note,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transfer transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.transferRepo.Create(ctx, tx, transfer); err != nil {
		if errors.Is(err, repositories.ErrTransferReferenceInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to record transfer: %w", err)
	}
	if err := s.playerRepo.UpdateTeam(ctx, tx, input.PlayerID, &input.ToTeamID); err != nil {
		return nil, fmt.Errorf("failed to move player: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transfer transaction: %w", err)
	}
	return transfer, nil
}

func (s *transferService) GetTransferByID(ctx context.Context, id int) (*models.Transfer, error) {
	transfer, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransferNotFound) {
			return nil, ErrTransferNotFound
		}
		return nil, err
	}
	return transfer, nil
}

func (s *transferService) ListTransfers(ctx context.Context, filter repositories.ListTransfersFilter) ([]*models.Transfer, error) {
	return s.transferRepo.List(ctx, filter)
}

func (s *transferService) DeleteTransfer(ctx context.Context, id int) error {
	if err := s.transferRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTransferNotFound) {
			return ErrTransferNotFound
		}
		return err
	}
	return nil
}
