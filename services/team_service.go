package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/repositories"
	"github.com/mkalnins/volleyball-league/storage"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, division *models.Division) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
}

type CreateTeamInput struct {
	Name      string `json:"name" validate:"required"`
	ShortName string `json:"short_name" validate:"required,max=8"`
	Division  string `json:"division" validate:"required,oneof=first second"`
	ClubID    *int   `json:"club_id,omitempty"`
}

type UpdateTeamInput struct {
	Name      *string `json:"name,omitempty"`
	ShortName *string `json:"short_name,omitempty" validate:"omitempty,max=8"`
	Division  *string `json:"division,omitempty" validate:"omitempty,oneof=first second"`
	ClubID    *int    `json:"club_id,omitempty"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, playerRepo repositories.PlayerRepository, uploader storage.FileUploader) TeamService {
	return &teamService{teamRepo: teamRepo, playerRepo: playerRepo, uploader: uploader}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	division := models.Division(input.Division)
	if !division.Valid() {
		return nil, ErrInvalidDivision
	}

	team := &models.Team{
		Name:      input.Name,
		ShortName: input.ShortName,
		Division:  division,
		ClubID:    input.ClubID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamClubInvalid):
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	populateTeamLogoURL(team, s.uploader)

	players, err := s.playerRepo.List(ctx, repositories.ListPlayersFilter{TeamID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %d: %w", id, err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, division *models.Division) ([]*models.Team, error) {
	if division != nil && !division.Valid() {
		return nil, ErrInvalidDivision
	}
	teams, err := s.teamRepo.List(ctx, repositories.ListTeamsFilter{Division: division})
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		populateTeamLogoURL(t, s.uploader)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = *input.Name
	}
	if input.ShortName != nil {
		team.ShortName = *input.ShortName
	}
	if input.Division != nil {
		division := models.Division(*input.Division)
		if !division.Valid() {
			return nil, ErrInvalidDivision
		}
		team.Division = division
	}
	if input.ClubID != nil {
		team.ClubID = input.ClubID
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamClubInvalid):
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.LogoKey = &key
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamInUse):
			return fmt.Errorf("%w: team is referenced by matches or tournament rosters", ErrValidationFailed)
		}
		return err
	}
	return nil
}
