package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Adarsha-Hegade/data-entry1/internal/auth"
	"github.com/Adarsha-Hegade/data-entry1/internal/bootstrap"
	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
)

// ProfileStore is what AuthService needs from the record store.
type ProfileStore interface {
	Any(ctx context.Context) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	Create(ctx context.Context, p *models.Profile) error
}

// AuthService is the credential service: it registers identities with
// role attributes and issues signed sessions. It satisfies
// bootstrap.Credentials.
type AuthService struct {
	profiles  ProfileStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(profiles ProfileStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{profiles: profiles, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// SignUp creates a profile with the given role attribute and returns
// the new identity's id.
func (s *AuthService) SignUp(ctx context.Context, email, password, fullName, role string) (string, error) {
	if !models.ValidRole(role) {
		return "", errors.New("unknown role: " + role)
	}
	existing, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	profile := &models.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return "", err
	}
	return profile.ID, nil
}

// SignIn checks the password and issues a session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*bootstrap.Session, error) {
	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil || !auth.CheckPassword(password, profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, s.tokenTTL, profile.ID, profile.Email, profile.Role)
	if err != nil {
		return nil, err
	}
	return &bootstrap.Session{Token: token, User: profile.ToResponse()}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	resp := profile.ToResponse()
	return &resp, nil
}
