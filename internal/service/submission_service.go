package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

// SubmissionStore is what SubmissionService needs from the record store.
type SubmissionStore interface {
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	FindByTaskAndUser(ctx context.Context, taskID, userID string) (*models.Submission, error)
	ListByUser(ctx context.Context, userID string) ([]models.Submission, error)
	ListByTask(ctx context.Context, taskID string) ([]models.Submission, error)
	Review(ctx context.Context, id string, score float64, reviewerID string) error
	Delete(ctx context.Context, id string) error
}

type SubmissionService struct {
	subs SubmissionStore
}

func NewSubmissionService(subs SubmissionStore) *SubmissionService {
	return &SubmissionService{subs: subs}
}

func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}

// ListMine backs the profile page: the user's submissions, newest first.
func (s *SubmissionService) ListMine(ctx context.Context, userID string) ([]models.Submission, error) {
	return s.subs.ListByUser(ctx, userID)
}

func (s *SubmissionService) ListByTask(ctx context.Context, taskID string) ([]models.Submission, error) {
	return s.subs.ListByTask(ctx, taskID)
}

// Review scores a submission and marks it reviewed. This is the only
// transition out of pending; auto-save never takes it.
func (s *SubmissionService) Review(ctx context.Context, id string, score float64, reviewerID string) (*models.Submission, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.subs.Review(ctx, id, score, reviewerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *SubmissionService) Delete(ctx context.Context, id string) error {
	if err := s.subs.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
