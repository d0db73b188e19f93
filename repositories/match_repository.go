package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/mkalnins/volleyball-league/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
	ErrMatchTeamsNotDistinct  = errors.New("match teams must be distinct")
)

type ListMatchesFilter struct {
	Stage        *models.KnockoutStage
	Status       *models.MatchStatus
	RoundRobin   bool // only matches without a knockout stage tag
	KnockoutOnly bool // only matches carrying a stage tag
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, filter ListMatchesFilter) ([]models.Match, error)
	UpdateSchedule(ctx context.Context, id int, matchTime sql.NullTime, venue *string) error
	UpdateStatus(ctx context.Context, id int, status models.MatchStatus) error
	UpdateScoreAndStatus(ctx context.Context, id int, scoreJSON *string, status models.MatchStatus) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, tournament_id, home_team_id, away_team_id, match_time, venue, status, stage, score, created_at`

func scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID, &m.TournamentID, &m.HomeTeamID, &m.AwayTeamID, &m.MatchTime,
		&m.Venue, &m.Status, &m.Stage, &m.ScoreJSON, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (tournament_id, home_team_id, away_team_id, match_time, venue, status, stage, score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		match.TournamentID, match.HomeTeamID, match.AwayTeamID, match.MatchTime,
		match.Venue, match.Status, match.Stage, match.ScoreJSON,
	).Scan(&match.ID, &match.CreatedAt)
	return r.handleMatchError(err)
}

// CreateBatch inserts all matches through one prepared statement. It is
// meant to run inside a caller-owned transaction so a failed insert
// rolls the whole batch back.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	query := `
		INSERT INTO matches (tournament_id, home_team_id, away_team_id, match_time, venue, status, stage, score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	for i := range matches {
		m := &matches[i]
		err := executor.QueryRowContext(ctx, query,
			m.TournamentID, m.HomeTeamID, m.AwayTeamID, m.MatchTime,
			m.Venue, m.Status, m.Stage, m.ScoreJSON,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return fmt.Errorf("batch insert failed at match %d: %w", i, r.handleMatchError(err))
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, filter ListMatchesFilter) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	placeholderIndex := 2

	if filter.Stage != nil {
		queryBuilder.WriteString(" AND stage = $" + strconv.Itoa(placeholderIndex))
		args = append(args, *filter.Stage)
		placeholderIndex++
	}
	if filter.Status != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(placeholderIndex))
		args = append(args, *filter.Status)
		placeholderIndex++
	}
	if filter.RoundRobin {
		queryBuilder.WriteString(" AND stage IS NULL")
	}
	if filter.KnockoutOnly {
		queryBuilder.WriteString(" AND stage IS NOT NULL")
	}

	queryBuilder.WriteString(" ORDER BY match_time ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateSchedule(ctx context.Context, id int, matchTime sql.NullTime, venue *string) error {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`UPDATE matches SET venue = $1`)
	args := []interface{}{venue}
	placeholderIndex := 2

	if matchTime.Valid {
		queryBuilder.WriteString(", match_time = $" + strconv.Itoa(placeholderIndex))
		args = append(args, matchTime.Time)
		placeholderIndex++
	}
	queryBuilder.WriteString(" WHERE id = $" + strconv.Itoa(placeholderIndex))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, id int, status models.MatchStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE matches SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateScoreAndStatus(ctx context.Context, id int, scoreJSON *string, status models.MatchStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET score = $1, status = $2 WHERE id = $3`,
		scoreJSON, status, id,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
				return ErrMatchTeamInvalid
			}
		case "23514": // check_violation
			if pqErr.Constraint == "matches_teams_distinct_check" {
				return ErrMatchTeamsNotDistinct
			}
		}
	}
	return err
}
