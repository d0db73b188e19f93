package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/repositories"
)

type NoticeService interface {
	CreateNotice(ctx context.Context, authorID int, input CreateNoticeInput) (*models.Notice, error)
	GetNoticeByID(ctx context.Context, id int) (*models.Notice, error)
	ListNotices(ctx context.Context, includeUnpublished bool) ([]*models.Notice, error)
	UpdateNotice(ctx context.Context, id int, input UpdateNoticeInput) (*models.Notice, error)
	DeleteNotice(ctx context.Context, id int) error
}

type CreateNoticeInput struct {
	Title       string     `json:"title" validate:"required"`
	Body        string     `json:"body" validate:"required"`
	Pinned      bool       `json:"pinned"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type UpdateNoticeInput struct {
	Title       *string    `json:"title,omitempty"`
	Body        *string    `json:"body,omitempty"`
	Pinned      *bool      `json:"pinned,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type noticeService struct {
	noticeRepo repositories.NoticeRepository
}

func NewNoticeService(noticeRepo repositories.NoticeRepository) NoticeService {
	return &noticeService{noticeRepo: noticeRepo}
}

func (s *noticeService) CreateNotice(ctx context.Context, authorID int, input CreateNoticeInput) (*models.Notice, error) {
	notice := &models.Notice{
		Title:       input.Title,
		Body:        input.Body,
		Pinned:      input.Pinned,
		PublishedAt: input.PublishedAt,
		AuthorID:    authorID,
	}
	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, fmt.Errorf("failed to create notice: %w", err)
	}
	return notice, nil
}

func (s *noticeService) GetNoticeByID(ctx context.Context, id int) (*models.Notice, error) {
	notice, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNoticeNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return notice, nil
}

// ListNotices returns published notices for the public surface; staff
// sees drafts and scheduled notices too.
func (s *noticeService) ListNotices(ctx context.Context, includeUnpublished bool) ([]*models.Notice, error) {
	if includeUnpublished {
		return s.noticeRepo.ListAll(ctx)
	}
	return s.noticeRepo.ListPublished(ctx, time.Now().UTC())
}

func (s *noticeService) UpdateNotice(ctx context.Context, id int, input UpdateNoticeInput) (*models.Notice, error) {
	notice, err := s.GetNoticeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		notice.Title = *input.Title
	}
	if input.Body != nil {
		notice.Body = *input.Body
	}
	if input.Pinned != nil {
		notice.Pinned = *input.Pinned
	}
	if input.PublishedAt != nil {
		notice.PublishedAt = input.PublishedAt
	}

	if err := s.noticeRepo.Update(ctx, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

func (s *noticeService) DeleteNotice(ctx context.Context, id int) error {
	if err := s.noticeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNoticeNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}
	return nil
}
