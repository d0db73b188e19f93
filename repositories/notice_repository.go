package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mkalnins/volleyball-league/models"
)

var ErrNoticeNotFound = errors.New("notice not found")

type NoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, id int) (*models.Notice, error)
	ListPublished(ctx context.Context, now time.Time) ([]*models.Notice, error)
	ListAll(ctx context.Context) ([]*models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id int) error
}

type postgresNoticeRepository struct {
	db *sql.DB
}

func NewPostgresNoticeRepository(db *sql.DB) NoticeRepository {
	return &postgresNoticeRepository{db: db}
}

const noticeColumns = `id, title, body, pinned, published_at, author_id, created_at`

func scanNotice(rowScanner interface{ Scan(...interface{}) error }) (*models.Notice, error) {
	var n models.Notice
	err := rowScanner.Scan(&n.ID, &n.Title, &n.Body, &n.Pinned, &n.PublishedAt, &n.AuthorID, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *postgresNoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	query := `
		INSERT INTO notices (title, body, pinned, published_at, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		notice.Title, notice.Body, notice.Pinned, notice.PublishedAt, notice.AuthorID,
	).Scan(&notice.ID, &notice.CreatedAt)
}

func (r *postgresNoticeRepository) GetByID(ctx context.Context, id int) (*models.Notice, error) {
	return scanNotice(r.db.QueryRowContext(ctx, `SELECT `+noticeColumns+` FROM notices WHERE id = $1`, id))
}

func (r *postgresNoticeRepository) ListPublished(ctx context.Context, now time.Time) ([]*models.Notice, error) {
	query := `
		SELECT ` + noticeColumns + `
		FROM notices
		WHERE published_at IS NOT NULL AND published_at <= $1
		ORDER BY pinned DESC, published_at DESC`
	return r.queryNotices(ctx, query, now)
}

func (r *postgresNoticeRepository) ListAll(ctx context.Context) ([]*models.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices ORDER BY created_at DESC`
	return r.queryNotices(ctx, query)
}

func (r *postgresNoticeRepository) queryNotices(ctx context.Context, query string, args ...interface{}) ([]*models.Notice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notices := make([]*models.Notice, 0)
	for rows.Next() {
		n, scanErr := scanNotice(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (r *postgresNoticeRepository) Update(ctx context.Context, notice *models.Notice) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notices SET title = $1, body = $2, pinned = $3, published_at = $4 WHERE id = $5`,
		notice.Title, notice.Body, notice.Pinned, notice.PublishedAt, notice.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNoticeNotFound)
}

func (r *postgresNoticeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNoticeNotFound)
}
