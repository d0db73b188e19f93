package standings

import (
	"testing"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/stretchr/testify/assert"
)

func TestLessOrderingPriorities(t *testing.T) {
	tests := []struct {
		name string
		a, b models.StandingRow
	}{
		{
			name: "league points beat differential",
			a:    models.StandingRow{TeamID: 1, Points: 9, PointDifference: -20},
			b:    models.StandingRow{TeamID: 2, Points: 6, PointDifference: 50},
		},
		{
			name: "differential beats points-for",
			a:    models.StandingRow{TeamID: 1, Points: 6, PointDifference: 10, PointsFor: 100},
			b:    models.StandingRow{TeamID: 2, Points: 6, PointDifference: 5, PointsFor: 300},
		},
		{
			name: "points-for beats name",
			a:    models.StandingRow{TeamID: 1, Points: 6, PointsFor: 120, TeamName: "Zulu"},
			b:    models.StandingRow{TeamID: 2, Points: 6, PointsFor: 100, TeamName: "Alpha"},
		},
		{
			name: "name ascending, case-insensitive",
			a:    models.StandingRow{TeamID: 2, TeamName: "alpha"},
			b:    models.StandingRow{TeamID: 1, TeamName: "Bravo"},
		},
		{
			name: "team id breaks duplicate names",
			a:    models.StandingRow{TeamID: 1, TeamName: "Alpha"},
			b:    models.StandingRow{TeamID: 2, TeamName: "Alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Less(tt.a, tt.b))
			assert.False(t, Less(tt.b, tt.a), "order must be strict: no two distinct rows compare equal")
		})
	}
}

func TestLessIsIrreflexive(t *testing.T) {
	row := models.StandingRow{TeamID: 7, TeamName: "Alpha", Points: 12}
	assert.False(t, Less(row, row))
}

func TestSortIsIdempotent(t *testing.T) {
	rows := []models.StandingRow{
		{TeamID: 3, TeamName: "Charlie", Points: 6, PointDifference: -3},
		{TeamID: 1, TeamName: "Alpha", Points: 9},
		{TeamID: 2, TeamName: "Bravo", Points: 6, PointDifference: 12},
		{TeamID: 4, TeamName: "Delta", Points: 0},
	}

	Sort(rows)
	first := make([]models.StandingRow, len(rows))
	copy(first, rows)
	Sort(rows)
	assert.Equal(t, first, rows)

	assert.Equal(t, []int{1, 2, 3, 4}, []int{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID, rows[3].TeamID})
}
