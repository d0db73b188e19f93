package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/mkalnins/volleyball-league/models"
)

var (
	ErrRosterEntryNotFound   = errors.New("tournament team registration not found")
	ErrRosterEntryConflict   = errors.New("team is already registered for this tournament")
	ErrRosterReferenceBroken = errors.New("roster tournament or team reference is invalid")
)

type TournamentTeamRepository interface {
	Register(ctx context.Context, exec SQLExecutor, entry *models.TournamentTeam) error
	Unregister(ctx context.Context, tournamentID, teamID int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.TournamentTeam, error)
}

type postgresTournamentTeamRepository struct {
	db *sql.DB
}

func NewPostgresTournamentTeamRepository(db *sql.DB) TournamentTeamRepository {
	return &postgresTournamentTeamRepository{db: db}
}

func (r *postgresTournamentTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentTeamRepository) Register(ctx context.Context, exec SQLExecutor, entry *models.TournamentTeam) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournament_teams (tournament_id, team_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, entry.TournamentID, entry.TeamID).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrRosterEntryConflict
			case "23503":
				return ErrRosterReferenceBroken
			}
		}
		return err
	}
	return nil
}

func (r *postgresTournamentTeamRepository) Unregister(ctx context.Context, tournamentID, teamID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tournament_teams WHERE tournament_id = $1 AND team_id = $2`,
		tournamentID, teamID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRosterEntryNotFound)
}

func (r *postgresTournamentTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.TournamentTeam, error) {
	query := `
		SELECT id, tournament_id, team_id, created_at
		FROM tournament_teams
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.TournamentTeam, 0)
	for rows.Next() {
		var e models.TournamentTeam
		if scanErr := rows.Scan(&e.ID, &e.TournamentID, &e.TeamID, &e.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
