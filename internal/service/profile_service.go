package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

// ProfileAdminStore extends the credential store with the admin
// management operations.
type ProfileAdminStore interface {
	ProfileStore
	List(ctx context.Context) ([]models.Profile, error)
	Delete(ctx context.Context, id string) error
}

// ProfileService backs the admin user-management screens.
type ProfileService struct {
	profiles ProfileAdminStore
	creds    *AuthService
}

func NewProfileService(profiles ProfileAdminStore, creds *AuthService) *ProfileService {
	return &ProfileService{profiles: profiles, creds: creds}
}

func (s *ProfileService) List(ctx context.Context) ([]models.ProfileResponse, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]models.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, profiles[i].ToResponse())
	}
	return resp, nil
}

func (s *ProfileService) Get(ctx context.Context, id string) (*models.ProfileResponse, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	resp := profile.ToResponse()
	return &resp, nil
}

// Create provisions an additional account. Unlike the bootstrap path
// the admin chooses the role here.
func (s *ProfileService) Create(ctx context.Context, email, password, fullName, role string) (*models.ProfileResponse, error) {
	id, err := s.creds.SignUp(ctx, email, password, fullName, role)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ProfileService) Delete(ctx context.Context, id string) error {
	if err := s.profiles.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
