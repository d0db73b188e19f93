package models

import "time"

// Transfer records a player moving between teams. FromTeamID is nil for
// players joining the league from outside it.
type Transfer struct {
	ID            int       `json:"id" db:"id"`
	PlayerID      int       `json:"player_id" db:"player_id"`
	FromTeamID    *int      `json:"from_team_id,omitempty" db:"from_team_id"`
	ToTeamID      int       `json:"to_team_id" db:"to_team_id"`
	EffectiveDate time.Time `json:"effective_date" db:"effective_date"`
	Note          *string   `json:"note,omitempty" db:"note"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Player   *Player `json:"player,omitempty" db:"-"`
	FromTeam *Team   `json:"from_team,omitempty" db:"-"`
	ToTeam   *Team   `json:"to_team,omitempty" db:"-"`
}
