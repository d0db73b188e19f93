package models

import "time"

type Club struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	City      *string   `json:"city,omitempty" db:"city"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}
