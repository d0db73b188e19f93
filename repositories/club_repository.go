package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/mkalnins/volleyball-league/models"
)

var (
	ErrClubNotFound     = errors.New("club not found")
	ErrClubNameConflict = errors.New("club name is already in use")
	ErrClubInUse        = errors.New("club still has teams attached")
)

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int) (*models.Club, error)
	List(ctx context.Context) ([]*models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	UpdateLogoKey(ctx context.Context, clubID int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

func (r *postgresClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (name, city, logo_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, club.Name, club.City, club.LogoKey).
		Scan(&club.ID, &club.CreatedAt)
	return r.handleClubError(err)
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	query := `
		SELECT id, name, city, logo_key, created_at
		FROM clubs
		WHERE id = $1`

	club := &models.Club{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&club.ID, &club.Name, &club.City, &club.LogoKey, &club.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}

func (r *postgresClubRepository) List(ctx context.Context) ([]*models.Club, error) {
	query := `
		SELECT id, name, city, logo_key, created_at
		FROM clubs
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := make([]*models.Club, 0)
	for rows.Next() {
		var club models.Club
		if scanErr := rows.Scan(&club.ID, &club.Name, &club.City, &club.LogoKey, &club.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		clubs = append(clubs, &club)
	}
	return clubs, rows.Err()
}

func (r *postgresClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE clubs
		SET name = $1, city = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, club.Name, club.City, club.ID)
	if err != nil {
		return r.handleClubError(err)
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) UpdateLogoKey(ctx context.Context, clubID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE clubs SET logo_key = $1 WHERE id = $2`, logoKey, clubID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return r.handleClubError(err)
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) handleClubError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "clubs_name_key" {
				return ErrClubNameConflict
			}
		case "23503": // foreign_key_violation
			return ErrClubInUse
		}
	}
	return err
}
