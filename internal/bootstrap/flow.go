package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

// State names the steps of the first-admin bootstrap workflow.
type State string

const (
	StateChecking             State = "checking"
	StateAwaitingFirstAdmin   State = "awaiting_first_admin_submit"
	StateAwaitingNormalSignIn State = "awaiting_normal_sign_in"
	StateProvisioning         State = "provisioning"
	StateVerifying            State = "verifying"
	StateSigningIn            State = "signing_in"
	StateComplete             State = "complete"
	StateError                State = "error"
)

// IsTerminal reports whether the state ends a workflow invocation.
func IsTerminal(s State) bool {
	return s == StateComplete || s == StateError
}

var (
	// ErrCheckingStatus is returned when the account probe fails.
	// Ambiguous data never silently grants the first-admin path.
	ErrCheckingStatus = errors.New("error checking system status")
	// ErrProfileNotFound is returned when the provisioned account's
	// profile never shows up within the verification window.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNotFirstUser is returned when a first-admin submit races an
	// already-populated account store.
	ErrNotFirstUser = errors.New("an account already exists")
)

// Session is the result of a completed sign-in.
type Session struct {
	Token string                 `json:"token"`
	User  models.ProfileResponse `json:"user"`
}

// AccountStore is the slice of the record store the workflow needs.
type AccountStore interface {
	Any(ctx context.Context) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

// Credentials is the credential service contract: sign-up with
// attributes and password sign-in.
type Credentials interface {
	SignUp(ctx context.Context, email, password, fullName, role string) (string, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
}

type Option func(*Flow)

// WithVerifyPolicy tunes the bounded polling used in Verifying.
func WithVerifyPolicy(attempts int, interval time.Duration) Option {
	return func(f *Flow) {
		f.verifyAttempts = attempts
		f.verifyInterval = interval
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(f *Flow) { f.log = log }
}

// Flow runs one invocation of the bootstrap workflow. Create one per
// login attempt; Error is terminal for the invocation and the caller
// retries by submitting again with a fresh Flow.
type Flow struct {
	accounts AccountStore
	creds    Credentials
	log      *slog.Logger

	verifyAttempts int
	verifyInterval time.Duration

	mu    sync.Mutex
	state State
}

func New(accounts AccountStore, creds Credentials, opts ...Option) *Flow {
	f := &Flow{
		accounts:       accounts,
		creds:          creds,
		log:            slog.Default(),
		verifyAttempts: 5,
		verifyInterval: 200 * time.Millisecond,
		state:          StateChecking,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Check probes the account store and decides which login form the
// caller should present. A probe failure moves to Error: the workflow
// never assumes "first user" on ambiguous data.
func (f *Flow) Check(ctx context.Context) (State, error) {
	f.setState(StateChecking)
	exists, err := f.accounts.Any(ctx)
	if err != nil {
		f.setState(StateError)
		f.log.Error("first-user check failed", "error", err)
		return StateError, fmt.Errorf("%w: %v", ErrCheckingStatus, err)
	}
	if exists {
		f.setState(StateAwaitingNormalSignIn)
		return StateAwaitingNormalSignIn, nil
	}
	f.setState(StateAwaitingFirstAdmin)
	return StateAwaitingFirstAdmin, nil
}

// SubmitFirstAdmin provisions the very first account as an
// administrator, verifies the resulting profile record, then signs in
// with the same credentials. The role attribute is always admin; the
// caller never chooses it.
func (f *Flow) SubmitFirstAdmin(ctx context.Context, email, password, fullName string) (*Session, error) {
	// Re-run the probe so a raced or forged submit cannot provision
	// an admin once any account exists.
	state, err := f.Check(ctx)
	if err != nil {
		return nil, err
	}
	if state != StateAwaitingFirstAdmin {
		f.setState(StateError)
		return nil, ErrNotFirstUser
	}

	f.setState(StateProvisioning)
	id, err := f.creds.SignUp(ctx, email, password, fullName, models.RoleAdmin)
	if err != nil {
		f.setState(StateError)
		return nil, err
	}
	f.log.Info("first admin provisioned", "user_id", id, "email", email)

	f.setState(StateVerifying)
	if err := f.verifyProfile(ctx, id); err != nil {
		f.setState(StateError)
		return nil, err
	}

	return f.signIn(ctx, email, password)
}

// SubmitSignIn is the ordinary path once accounts exist.
func (f *Flow) SubmitSignIn(ctx context.Context, email, password string) (*Session, error) {
	return f.signIn(ctx, email, password)
}

func (f *Flow) signIn(ctx context.Context, email, password string) (*Session, error) {
	f.setState(StateSigningIn)
	session, err := f.creds.SignIn(ctx, email, password)
	if err != nil {
		f.setState(StateError)
		return nil, err
	}
	f.setState(StateComplete)
	return session, nil
}

// verifyProfile waits for the profile record backing the new identity
// to appear, polling a bounded number of times. The workflow never
// proceeds to sign-in on an unverified account.
func (f *Flow) verifyProfile(ctx context.Context, id string) error {
	var lastErr error
	for attempt := 0; attempt < f.verifyAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.verifyInterval):
		}

		profile, err := f.accounts.FindByID(ctx, id)
		if err != nil {
			lastErr = err
			continue
		}
		if profile != nil {
			return nil
		}
	}
	if lastErr != nil {
		f.log.Error("profile verification failed", "user_id", id, "error", lastErr)
		return lastErr
	}
	return ErrProfileNotFound
}
