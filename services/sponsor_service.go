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

type SponsorService interface {
	CreateSponsor(ctx context.Context, input CreateSponsorInput) (*models.Sponsor, error)
	GetSponsorByID(ctx context.Context, id int) (*models.Sponsor, error)
	ListSponsors(ctx context.Context) ([]*models.Sponsor, error)
	UpdateSponsor(ctx context.Context, id int, input UpdateSponsorInput) (*models.Sponsor, error)
	UploadLogo(ctx context.Context, sponsorID int, contentType string, file io.Reader) (*models.Sponsor, error)
	DeleteSponsor(ctx context.Context, id int) error
}

type CreateSponsorInput struct {
	Name       string  `json:"name" validate:"required"`
	Tier       string  `json:"tier" validate:"required,oneof=general gold silver partner"`
	WebsiteURL *string `json:"website_url,omitempty" validate:"omitempty,url"`
}

type UpdateSponsorInput struct {
	Name       *string `json:"name,omitempty"`
	Tier       *string `json:"tier,omitempty" validate:"omitempty,oneof=general gold silver partner"`
	WebsiteURL *string `json:"website_url,omitempty" validate:"omitempty,url"`
}

type sponsorService struct {
	sponsorRepo repositories.SponsorRepository
	uploader    storage.FileUploader
}

func NewSponsorService(sponsorRepo repositories.SponsorRepository, uploader storage.FileUploader) SponsorService {
	return &sponsorService{sponsorRepo: sponsorRepo, uploader: uploader}
}

func (s *sponsorService) CreateSponsor(ctx context.Context, input CreateSponsorInput) (*models.Sponsor, error) {
	sponsor := &models.Sponsor{
		Name:       input.Name,
		Tier:       models.SponsorTier(input.Tier),
		WebsiteURL: input.WebsiteURL,
	}
	if err := s.sponsorRepo.Create(ctx, sponsor); err != nil {
		return nil, fmt.Errorf("failed to create sponsor: %w", err)
	}
	return sponsor, nil
}

func (s *sponsorService) GetSponsorByID(ctx context.Context, id int) (*models.Sponsor, error) {
	sponsor, err := s.sponsorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSponsorNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, err
	}
	populateSponsorLogoURL(sponsor, s.uploader)
	return sponsor, nil
}

func (s *sponsorService) ListSponsors(ctx context.Context) ([]*models.Sponsor, error) {
	sponsors, err := s.sponsorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, sponsor := range sponsors {
		populateSponsorLogoURL(sponsor, s.uploader)
	}
	return sponsors, nil
}

func (s *sponsorService) UpdateSponsor(ctx context.Context, id int, input UpdateSponsorInput) (*models.Sponsor, error) {
	sponsor, err := s.GetSponsorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		sponsor.Name = *input.Name
	}
	if input.Tier != nil {
		sponsor.Tier = models.SponsorTier(*input.Tier)
	}
	if input.WebsiteURL != nil {
		sponsor.WebsiteURL = input.WebsiteURL
	}

	if err := s.sponsorRepo.Update(ctx, sponsor); err != nil {
		return nil, err
	}
	return sponsor, nil
}

func (s *sponsorService) UploadLogo(ctx context.Context, sponsorID int, contentType string, file io.Reader) (*models.Sponsor, error) {
	sponsor, err := s.GetSponsorByID(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("sponsors/%d/logo%s", sponsorID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload sponsor logo: %w", err)
	}

	oldKey := sponsor.LogoKey
	if err := s.sponsorRepo.UpdateLogoKey(ctx, sponsorID, &key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	sponsor.LogoKey = &key
	populateSponsorLogoURL(sponsor, s.uploader)
	return sponsor, nil
}

func (s *sponsorService) DeleteSponsor(ctx context.Context, id int) error {
	sponsor, err := s.GetSponsorByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sponsorRepo.Delete(ctx, id); err != nil {
		return err
	}
	if sponsor.LogoKey != nil {
		_ = s.uploader.Delete(ctx, *sponsor.LogoKey)
	}
	return nil
}
