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
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player team reference is invalid")
)

type ListPlayersFilter struct {
	TeamID *int
	Search *string
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context, filter ListPlayersFilter) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdateTeam(ctx context.Context, exec SQLExecutor, playerID int, teamID *int) error
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `id, first_name, last_name, number, position, team_id, birth_date, created_at`

func scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := rowScanner.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Number, &p.Position, &p.TeamID, &p.BirthDate, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (first_name, last_name, number, position, team_id, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.FirstName, player.LastName, player.Number, player.Position, player.TeamID, player.BirthDate,
	).Scan(&player.ID, &player.CreatedAt)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter ListPlayersFilter) ([]*models.Player, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + playerColumns + ` FROM players WHERE 1=1`)

	args := []interface{}{}
	argID := 1

	if filter.TeamID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND team_id = $%d", argID))
		args = append(args, *filter.TeamID)
		argID++
	}
	if filter.Search != nil && *filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d)", argID, argID))
		args = append(args, "%"+*filter.Search+"%")
		argID++
	}
	queryBuilder.WriteString(" ORDER BY last_name ASC, first_name ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET first_name = $1, last_name = $2, number = $3, position = $4, team_id = $5, birth_date = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		player.FirstName, player.LastName, player.Number, player.Position,
		player.TeamID, player.BirthDate, player.ID,
	)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateTeam(ctx context.Context, exec SQLExecutor, playerID int, teamID *int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE players SET team_id = $1 WHERE id = $2`, teamID, playerID)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "players_team_id_fkey" {
			return ErrPlayerTeamInvalid
		}
	}
	return err
}
