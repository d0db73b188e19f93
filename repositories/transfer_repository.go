package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mkalnins/volleyball-league/models"
)

var (
	ErrTransferNotFound         = errors.New("transfer not found")
	ErrTransferReferenceInvalid = errors.New("transfer player or team reference is invalid")
)

type ListTransfersFilter struct {
	PlayerID *int
	TeamID   *int // matches either side of the transfer
	Limit    int
}

type TransferRepository interface {
	Create(ctx context.Context, exec SQLExecutor, transfer *models.Transfer) error
	GetByID(ctx context.Context, id int) (*models.Transfer, error)
	List(ctx context.Context, filter ListTransfersFilter) ([]*models.Transfer, error)
	Delete(ctx context.Context, id int) error
}

type postgresTransferRepository struct {
	db *sql.DB
}

func NewPostgresTransferRepository(db *sql.DB) TransferRepository {
	return &postgresTransferRepository{db: db}
}

func (r *postgresTransferRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const transferColumns = `id, player_id, from_team_id, to_team_id, effective_date, note, created_at`

func scanTransfer(rowScanner interface{ Scan(...interface{}) error }) (*models.Transfer, error) {
	var t models.Transfer
	err := rowScanner.Scan(
		&t.ID, &t.PlayerID, &t.FromTeamID, &t.ToTeamID, &t.EffectiveDate, &t.Note, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransferNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTransferRepository) Create(ctx context.Context, exec SQLExecutor, transfer *models.Transfer) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO transfers (player_id, from_team_id, to_team_id, effective_date, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		transfer.PlayerID, transfer.FromTeamID, transfer.ToTeamID, transfer.EffectiveDate, transfer.Note,
	).Scan(&transfer.ID, &transfer.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTransferReferenceInvalid
		}
		return err
	}
	return nil
}

func (r *postgresTransferRepository) GetByID(ctx context.Context, id int) (*models.Transfer, error) {
	return scanTransfer(r.db.QueryRowContext(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id))
}

func (r *postgresTransferRepository) List(ctx context.Context, filter ListTransfersFilter) ([]*models.Transfer, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + transferColumns + ` FROM transfers WHERE 1=1`)

	args := []interface{}{}
	argID := 1

	if filter.PlayerID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND player_id = $%d", argID))
		args = append(args, *filter.PlayerID)
		argID++
	}
	if filter.TeamID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND (from_team_id = $%d OR to_team_id = $%d)", argID, argID))
		args = append(args, *filter.TeamID)
		argID++
	}
	queryBuilder.WriteString(" ORDER BY effective_date DESC, id DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argID))
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := make([]*models.Transfer, 0)
	for rows.Next() {
		t, scanErr := scanTransfer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

func (r *postgresTransferRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTransferNotFound)
}
