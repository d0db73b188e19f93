package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ShortName string    `json:"short_name" db:"short_name"`
	Division  Division  `json:"division" db:"division"`
	ClubID    *int      `json:"club_id,omitempty" db:"club_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	Club    *Club    `json:"club,omitempty" db:"-"`
	Players []Player `json:"players,omitempty" db:"-"`
}
