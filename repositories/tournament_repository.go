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
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict for this season")
	ErrTournamentInUse        = errors.New("tournament is in use (matches or registrations exist)")
)

type ListTournamentsFilter struct {
	Division *models.Division
	Season   *string
	Phase    *models.TournamentPhase
	Limit    int
	Offset   int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdatePhase(ctx context.Context, exec SQLExecutor, id int, phase models.TournamentPhase) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `id, name, season, division, phase, start_date, end_date, created_at`

func scanTournament(rowScanner interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	var t models.Tournament
	err := rowScanner.Scan(
		&t.ID, &t.Name, &t.Season, &t.Division, &t.Phase, &t.StartDate, &t.EndDate, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, season, division, phase, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Season, t.Division, t.Phase, t.StartDate, t.EndDate,
	).Scan(&t.ID, &t.CreatedAt)
	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	return scanTournament(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + tournamentColumns + ` FROM tournaments WHERE 1=1`)

	args := []interface{}{}
	argID := 1

	if filter.Division != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND division = $%d", argID))
		args = append(args, *filter.Division)
		argID++
	}
	if filter.Season != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND season = $%d", argID))
		args = append(args, *filter.Season)
		argID++
	}
	if filter.Phase != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND phase = $%d", argID))
		args = append(args, *filter.Phase)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY start_date DESC, id DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argID))
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argID))
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, season = $2, division = $3, start_date = $4, end_date = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Season, t.Division, t.StartDate, t.EndDate, t.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdatePhase(ctx context.Context, exec SQLExecutor, id int, phase models.TournamentPhase) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE tournaments SET phase = $1 WHERE id = $2`, phase, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "tournaments_name_season_key" {
				return ErrTournamentNameConflict
			}
		case "23503":
			return ErrTournamentInUse
		}
	}
	return err
}
