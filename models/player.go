package models

import "time"

type PlayerPosition string

const (
	PositionSetter       PlayerPosition = "setter"
	PositionOutsideHit   PlayerPosition = "outside_hitter"
	PositionOppositeHit  PlayerPosition = "opposite_hitter"
	PositionMiddleBlock  PlayerPosition = "middle_blocker"
	PositionLibero       PlayerPosition = "libero"
	PositionUniversalist PlayerPosition = "universal"
)

type Player struct {
	ID        int             `json:"id" db:"id"`
	FirstName string          `json:"first_name" db:"first_name"`
	LastName  string          `json:"last_name" db:"last_name"`
	Number    *int            `json:"number,omitempty" db:"number"`
	Position  *PlayerPosition `json:"position,omitempty" db:"position"`
	TeamID    *int            `json:"team_id,omitempty" db:"team_id"`
	BirthDate *time.Time      `json:"birth_date,omitempty" db:"birth_date"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

func (p Player) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
