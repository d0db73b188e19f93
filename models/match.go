package models

import (
	"encoding/json"
	"time"
)

type MatchStatus string

const (
	MatchStatusUpcoming  MatchStatus = "upcoming"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
)

// KnockoutStage marks elimination-round matches. Round-robin matches
// carry no stage tag.
type KnockoutStage string

const (
	StageQuarterFinal KnockoutStage = "quarter_final"
	StageSemiFinal    KnockoutStage = "semi_final"
	StageFinal        KnockoutStage = "final"
)

type Match struct {
	ID           int            `json:"id" db:"id"`
	TournamentID int            `json:"tournament_id" db:"tournament_id"`
	HomeTeamID   int            `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int            `json:"away_team_id" db:"away_team_id"`
	MatchTime    time.Time      `json:"match_time" db:"match_time"`
	Venue        *string        `json:"venue,omitempty" db:"venue"`
	Status       MatchStatus    `json:"status" db:"status"`
	Stage        *KnockoutStage `json:"stage,omitempty" db:"stage"`
	ScoreJSON    *string        `json:"-" db:"score"` // Raw JSON string from DB
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`

	// Parsed score, populated by service if needed
	Score *Score `json:"score,omitempty" db:"-"`

	HomeTeam *Team `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team `json:"away_team,omitempty" db:"-"`
}

// GetScore unmarshals the raw score column. A completed match without a
// score payload yields (nil, nil); callers treat that as not-yet-scored.
func (m *Match) GetScore() (*Score, error) {
	if m.ScoreJSON == nil || *m.ScoreJSON == "" {
		return nil, nil
	}
	var score Score
	if err := json.Unmarshal([]byte(*m.ScoreJSON), &score); err != nil {
		return nil, err
	}
	return &score, nil
}

func (m *Match) IsKnockout() bool {
	return m.Stage != nil
}
