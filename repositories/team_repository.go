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
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name is already in use")
	ErrTeamClubInvalid  = errors.New("team club reference is invalid")
	ErrTeamInUse        = errors.New("team is referenced by matches or rosters")
)

type ListTeamsFilter struct {
	Division *models.Division
	ClubID   *int
}

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	List(ctx context.Context, filter ListTeamsFilter) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, short_name, division, club_id, logo_key, created_at`

func scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := rowScanner.Scan(
		&t.ID, &t.Name, &t.ShortName, &t.Division, &t.ClubID, &t.LogoKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, short_name, division, club_id, logo_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Name, team.ShortName, team.Division, team.ClubID, team.LogoKey,
	).Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE lower(name) = lower($1)`
	return scanTeam(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresTeamRepository) List(ctx context.Context, filter ListTeamsFilter) ([]*models.Team, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + teamColumns + ` FROM teams WHERE 1=1`)

	args := []interface{}{}
	argID := 1

	if filter.Division != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND division = $%d", argID))
		args = append(args, *filter.Division)
		argID++
	}
	if filter.ClubID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND club_id = $%d", argID))
		args = append(args, *filter.ClubID)
		argID++
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = $1, short_name = $2, division = $3, club_id = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		team.Name, team.ShortName, team.Division, team.ClubID, team.ID,
	)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "teams_name_key" {
				return ErrTeamNameConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "teams_club_id_fkey" {
				return ErrTeamClubInvalid
			}
			return ErrTeamInUse
		}
	}
	return err
}
