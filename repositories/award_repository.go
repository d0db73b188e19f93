package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/mkalnins/volleyball-league/models"
)

var (
	ErrAwardNotFound         = errors.New("award not found")
	ErrAwardReferenceInvalid = errors.New("award tournament or player reference is invalid")
)

type AwardRepository interface {
	Create(ctx context.Context, award *models.Award) error
	GetByID(ctx context.Context, id int) (*models.Award, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Award, error)
	Delete(ctx context.Context, id int) error
}

type postgresAwardRepository struct {
	db *sql.DB
}

func NewPostgresAwardRepository(db *sql.DB) AwardRepository {
	return &postgresAwardRepository{db: db}
}

func (r *postgresAwardRepository) Create(ctx context.Context, award *models.Award) error {
	query := `
		INSERT INTO awards (tournament_id, player_id, title)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, award.TournamentID, award.PlayerID, award.Title).
		Scan(&award.ID, &award.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrAwardReferenceInvalid
		}
		return err
	}
	return nil
}

func (r *postgresAwardRepository) GetByID(ctx context.Context, id int) (*models.Award, error) {
	query := `SELECT id, tournament_id, player_id, title, created_at FROM awards WHERE id = $1`

	var a models.Award
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.TournamentID, &a.PlayerID, &a.Title, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAwardNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresAwardRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Award, error) {
	query := `
		SELECT id, tournament_id, player_id, title, created_at
		FROM awards
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	awards := make([]*models.Award, 0)
	for rows.Next() {
		var a models.Award
		if scanErr := rows.Scan(&a.ID, &a.TournamentID, &a.PlayerID, &a.Title, &a.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		awards = append(awards, &a)
	}
	return awards, rows.Err()
}

func (r *postgresAwardRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM awards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAwardNotFound)
}
