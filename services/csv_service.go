package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mkalnins/volleyball-league/repositories"
)

// fixtureTimeLayout is the timestamp format accepted in fixture import
// files and emitted on export.
const fixtureTimeLayout = "2006-01-02 15:04"

type CSVService interface {
	ExportStandings(ctx context.Context, tournamentID int, w io.Writer) error
	ExportFixtures(ctx context.Context, tournamentID int, w io.Writer) error
	ImportFixtures(ctx context.Context, tournamentID int, r io.Reader) (*ImportFixturesResult, error)
}

// ImportFixturesResult reports what an import run accomplished; rejected
// lines carry the row number so the caller can fix the file.
type ImportFixturesResult struct {
	Created  int               `json:"created"`
	Rejected []RejectedFixture `json:"rejected,omitempty"`
}

type RejectedFixture struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type csvService struct {
	tournamentSvc TournamentService
	matchSvc      MatchService
	teamRepo      repositories.TeamRepository
}

func NewCSVService(tournamentSvc TournamentService, matchSvc MatchService, teamRepo repositories.TeamRepository) CSVService {
	return &csvService{tournamentSvc: tournamentSvc, matchSvc: matchSvc, teamRepo: teamRepo}
}

func (s *csvService) ExportStandings(ctx context.Context, tournamentID int, w io.Writer) error {
	rows, err := s.tournamentSvc.GetStandings(ctx, tournamentID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{"rank", "team", "played", "wins", "draws", "losses", "points_for", "points_against", "difference", "points"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write standings header: %w", err)
	}
	for i, row := range rows {
		record := []string{
			strconv.Itoa(i + 1),
			row.TeamName,
			strconv.Itoa(row.GamesPlayed),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Draws),
			strconv.Itoa(row.Losses),
			strconv.Itoa(row.PointsFor),
			strconv.Itoa(row.PointsAgainst),
			strconv.Itoa(row.PointDifference),
			strconv.Itoa(row.Points),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write standings row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (s *csvService) ExportFixtures(ctx context.Context, tournamentID int, w io.Writer) error {
	matches, err := s.matchSvc.ListMatches(ctx, tournamentID, repositories.ListMatchesFilter{})
	if err != nil {
		return err
	}

	teamNames, err := s.teamNameIndex(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{"home_team", "away_team", "match_time", "venue", "status", "stage"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write fixtures header: %w", err)
	}
	for _, match := range matches {
		stage := ""
		if match.Stage != nil {
			stage = string(*match.Stage)
		}
		record := []string{
			teamNames[match.HomeTeamID],
			teamNames[match.AwayTeamID],
			match.MatchTime.UTC().Format(fixtureTimeLayout),
			derefString(match.Venue),
			string(match.Status),
			stage,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write fixture row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ImportFixtures reads a fixtures file with columns
// home_team,away_team,match_time[,venue] and creates upcoming matches.
// Team names are resolved to IDs up front; a row naming an unknown team
// is rejected rather than aborting the whole file.
func (s *csvService) ImportFixtures(ctx context.Context, tournamentID int, r io.Reader) (*ImportFixturesResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrValidationFailed)
	}

	// Skip a header line if the first row does not parse as a fixture.
	start := 0
	if len(records[0]) >= 3 {
		if _, timeErr := time.Parse(fixtureTimeLayout, records[0][2]); timeErr != nil {
			start = 1
		}
	}

	result := &ImportFixturesResult{}
	for i := start; i < len(records); i++ {
		record := records[i]
		line := i + 1
		if len(record) < 3 {
			result.Rejected = append(result.Rejected, RejectedFixture{Line: line, Reason: "expected at least home_team, away_team, match_time"})
			continue
		}

		homeTeam, err := s.teamRepo.GetByName(ctx, record[0])
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedFixture{Line: line, Reason: fmt.Sprintf("unknown home team %q", record[0])})
			continue
		}
		awayTeam, err := s.teamRepo.GetByName(ctx, record[1])
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedFixture{Line: line, Reason: fmt.Sprintf("unknown away team %q", record[1])})
			continue
		}
		matchTime, err := time.Parse(fixtureTimeLayout, record[2])
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedFixture{Line: line, Reason: fmt.Sprintf("bad match_time %q", record[2])})
			continue
		}

		input := CreateMatchInput{
			TournamentID: tournamentID,
			HomeTeamID:   homeTeam.ID,
			AwayTeamID:   awayTeam.ID,
			MatchTime:    matchTime,
		}
		if len(record) >= 4 && record[3] != "" {
			venue := record[3]
			input.Venue = &venue
		}

		if _, err := s.matchSvc.CreateMatch(ctx, input); err != nil {
			reason := "failed to create match"
			if errors.Is(err, ErrSameTeamFixture) {
				reason = "home and away team are the same"
			}
			result.Rejected = append(result.Rejected, RejectedFixture{Line: line, Reason: reason})
			continue
		}
		result.Created++
	}
	return result, nil
}

func (s *csvService) teamNameIndex(ctx context.Context) (map[int]string, error) {
	teams, err := s.teamRepo.List(ctx, repositories.ListTeamsFilter{})
	if err != nil {
		return nil, err
	}
	index := make(map[int]string, len(teams))
	for _, team := range teams {
		index[team.ID] = team.Name
	}
	return index, nil
}
