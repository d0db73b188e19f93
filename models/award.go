package models

import "time"

type Award struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	Title        string    `json:"title" db:"title"` // e.g. "MVP", "Best Setter"
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Player     *Player     `json:"player,omitempty" db:"-"`
	Tournament *Tournament `json:"-" db:"-"` // Avoid circular ref in JSON if not needed
}
