package models

import "time"

// TournamentTeam links a team to a tournament it is registered for, so
// teams with zero played matches still appear in the standings.
type TournamentTeam struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
