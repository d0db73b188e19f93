package models

import "time"

// TournamentPhase mirrors the tournament_phase ENUM in the database.
type TournamentPhase string

const (
	PhaseRoundRobin TournamentPhase = "round_robin"
	PhaseKnockout   TournamentPhase = "knockout"
	PhaseCompleted  TournamentPhase = "completed"
)

type Tournament struct {
	ID        int             `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Season    string          `json:"season" db:"season"`
	Division  Division        `json:"division" db:"division"`
	Phase     TournamentPhase `json:"phase" db:"phase"`
	StartDate time.Time       `json:"start_date" db:"start_date"`
	EndDate   time.Time       `json:"end_date" db:"end_date"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`

	// Optional related entities, loaded separately.
	Teams   []Team  `json:"teams,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}
