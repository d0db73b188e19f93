package models

// StandingRow is a derived per-team summary of tournament performance.
// Rows are recomputed from the current match set on every query and are
// never persisted.
type StandingRow struct {
	TeamID          int     `json:"team_id"`
	TeamName        string  `json:"team_name"`
	TeamShortName   string  `json:"team_short_name"`
	LogoURL         *string `json:"logo_url,omitempty"`
	GamesPlayed     int     `json:"games_played"`
	Wins            int     `json:"wins"`
	Draws           int     `json:"draws"`
	Losses          int     `json:"losses"`
	PointsFor       int     `json:"points_for"`
	PointsAgainst   int     `json:"points_against"`
	PointDifference int     `json:"point_difference"`
	Points          int     `json:"points"` // league points, not rally points
}
