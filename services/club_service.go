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

type ClubService interface {
	CreateClub(ctx context.Context, input CreateClubInput) (*models.Club, error)
	GetClubByID(ctx context.Context, id int) (*models.Club, error)
	ListClubs(ctx context.Context) ([]*models.Club, error)
	UpdateClub(ctx context.Context, id int, input UpdateClubInput) (*models.Club, error)
	UploadLogo(ctx context.Context, clubID int, contentType string, file io.Reader) (*models.Club, error)
	DeleteClub(ctx context.Context, id int) error
}

type CreateClubInput struct {
	Name string  `json:"name" validate:"required"`
	City *string `json:"city,omitempty"`
}

type UpdateClubInput struct {
	Name *string `json:"name,omitempty"`
	City *string `json:"city,omitempty"`
}

type clubService struct {
	clubRepo repositories.ClubRepository
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewClubService(clubRepo repositories.ClubRepository, teamRepo repositories.TeamRepository, uploader storage.FileUploader) ClubService {
	return &clubService{clubRepo: clubRepo, teamRepo: teamRepo, uploader: uploader}
}

func (s *clubService) CreateClub(ctx context.Context, input CreateClubInput) (*models.Club, error) {
	club := &models.Club{Name: input.Name, City: input.City}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrClubNameConflict) {
			return nil, ErrClubNameConflict
		}
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return club, nil
}

func (s *clubService) GetClubByID(ctx context.Context, id int) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	populateClubLogoURL(club, s.uploader)

	teams, err := s.teamRepo.List(ctx, repositories.ListTeamsFilter{ClubID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of club %d: %w", id, err)
	}
	club.Teams = make([]models.Team, 0, len(teams))
	for _, t := range teams {
		populateTeamLogoURL(t, s.uploader)
		club.Teams = append(club.Teams, *t)
	}
	return club, nil
}

func (s *clubService) ListClubs(ctx context.Context) ([]*models.Club, error) {
	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clubs {
		populateClubLogoURL(c, s.uploader)
	}
	return clubs, nil
}

func (s *clubService) UpdateClub(ctx context.Context, id int, input UpdateClubInput) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		club.Name = *input.Name
	}
	if input.City != nil {
		club.City = input.City
	}

	if err := s.clubRepo.Update(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrClubNameConflict) {
			return nil, ErrClubNameConflict
		}
		return nil, err
	}
	populateClubLogoURL(club, s.uploader)
	return club, nil
}

func (s *clubService) UploadLogo(ctx context.Context, clubID int, contentType string, file io.Reader) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("clubs/%d/logo%s", clubID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload club logo: %w", err)
	}

	oldKey := club.LogoKey
	if err := s.clubRepo.UpdateLogoKey(ctx, clubID, &key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != key {
		// Orphaned object cleanup is best effort.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	club.LogoKey = &key
	populateClubLogoURL(club, s.uploader)
	return club, nil
}

func (s *clubService) DeleteClub(ctx context.Context, id int) error {
	if err := s.clubRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrClubNotFound):
			return ErrClubNotFound
		case errors.Is(err, repositories.ErrClubInUse):
			return fmt.Errorf("%w: club still has teams", ErrValidationFailed)
		}
		return err
	}
	return nil
}
