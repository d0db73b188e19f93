package models

import "time"

type SponsorTier string

const (
	SponsorTierGeneral SponsorTier = "general"
	SponsorTierGold    SponsorTier = "gold"
	SponsorTierSilver  SponsorTier = "silver"
	SponsorTierPartner SponsorTier = "partner"
)

type Sponsor struct {
	ID        int         `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Tier      SponsorTier `json:"tier" db:"tier"`
	WebsiteURL *string    `json:"website_url,omitempty" db:"website_url"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
