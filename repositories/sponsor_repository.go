package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mkalnins/volleyball-league/models"
)

var ErrSponsorNotFound = errors.New("sponsor not found")

type SponsorRepository interface {
	Create(ctx context.Context, sponsor *models.Sponsor) error
	GetByID(ctx context.Context, id int) (*models.Sponsor, error)
	List(ctx context.Context) ([]*models.Sponsor, error)
	Update(ctx context.Context, sponsor *models.Sponsor) error
	UpdateLogoKey(ctx context.Context, sponsorID int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresSponsorRepository struct {
	db *sql.DB
}

func NewPostgresSponsorRepository(db *sql.DB) SponsorRepository {
	return &postgresSponsorRepository{db: db}
}

const sponsorColumns = `id, name, tier, website_url, logo_key, created_at`

func scanSponsor(rowScanner interface{ Scan(...interface{}) error }) (*models.Sponsor, error) {
	var s models.Sponsor
	err := rowScanner.Scan(&s.ID, &s.Name, &s.Tier, &s.WebsiteURL, &s.LogoKey, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSponsorNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresSponsorRepository) Create(ctx context.Context, sponsor *models.Sponsor) error {
	query := `
		INSERT INTO sponsors (name, tier, website_url, logo_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, sponsor.Name, sponsor.Tier, sponsor.WebsiteURL, sponsor.LogoKey).
		Scan(&sponsor.ID, &sponsor.CreatedAt)
}

func (r *postgresSponsorRepository) GetByID(ctx context.Context, id int) (*models.Sponsor, error) {
	return scanSponsor(r.db.QueryRowContext(ctx, `SELECT `+sponsorColumns+` FROM sponsors WHERE id = $1`, id))
}

func (r *postgresSponsorRepository) List(ctx context.Context) ([]*models.Sponsor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sponsorColumns+` FROM sponsors ORDER BY tier ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sponsors := make([]*models.Sponsor, 0)
	for rows.Next() {
		s, scanErr := scanSponsor(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sponsors = append(sponsors, s)
	}
	return sponsors, rows.Err()
}

func (r *postgresSponsorRepository) Update(ctx context.Context, sponsor *models.Sponsor) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sponsors SET name = $1, tier = $2, website_url = $3 WHERE id = $4`,
		sponsor.Name, sponsor.Tier, sponsor.WebsiteURL, sponsor.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSponsorNotFound)
}

func (r *postgresSponsorRepository) UpdateLogoKey(ctx context.Context, sponsorID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE sponsors SET logo_key = $1 WHERE id = $2`, logoKey, sponsorID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSponsorNotFound)
}

func (r *postgresSponsorRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSponsorNotFound)
}
