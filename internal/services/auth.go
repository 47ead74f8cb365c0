package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"monipaep/internal/domain"
)

type authService struct {
	endpoints domain.AuthEndpoints
	store     domain.CredentialStore
	registry  domain.SessionRegistry
	maxAge    time.Duration
	logger    *slog.Logger
	now       func() time.Time
	profiles  singleflight.Group
}

// NewAuthService creates an AuthService issuing console sessions backed by store.
func NewAuthService(endpoints domain.AuthEndpoints, store domain.CredentialStore, registry domain.SessionRegistry, maxAge time.Duration, logger *slog.Logger) domain.AuthService {
	if maxAge <= 0 {
		maxAge = domain.CredentialMaxAge
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		endpoints: endpoints,
		store:     store,
		registry:  registry,
		maxAge:    maxAge,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *authService) SignIn(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	email = strings.TrimSpace(email)
	var problems []string
	if !domain.ValidEmail(email) {
		problems = append(problems, "invalid email")
	}
	if password == "" {
		problems = append(problems, "password is required")
	}
	if err := domain.NewValidationError(problems); err != nil {
		return "", nil, err
	}

	resp, err := s.endpoints.Login(ctx, email, password)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign in: %w", err)
	}

	now := s.now()
	sessionID := uuid.NewString()
	if err := s.store.Save(ctx, &domain.StoredCredentials{
		SessionID:   sessionID,
		Credentials: resp.Credentials,
		ExpiresAt:   now.Add(s.maxAge),
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return "", nil, fmt.Errorf("failed to save credentials: %w", err)
	}
	s.registry.Open(sessionID, resp.Credentials)
	s.logger.InfoContext(ctx, "session opened", "session_id", sessionID, "user_id", resp.User.ID)

	profile := resp.Profile
	return sessionID, &profile, nil
}

// Me loads the profile of the signed-in user. Concurrent calls for one session
// share a request. A session whose profile cannot be loaded is signed out.
func (s *authService) Me(ctx context.Context, sessionID string) (*domain.Profile, error) {
	v, err, _ := s.profiles.Do(sessionID, func() (any, error) {
		return s.loadProfile(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	profile := *v.(*domain.Profile)
	return &profile, nil
}

func (s *authService) loadProfile(ctx context.Context, sessionID string) (*domain.Profile, error) {
	client, err := s.registry.Resolve(domain.WithSessionID(ctx, sessionID))
	if err != nil {
		return nil, err
	}
	var profile domain.Profile
	err = client.Get(ctx, "/systemuser/me", nil, &profile)
	if err == nil {
		return &profile, nil
	}
	if _, ok := domain.AsAPIError(err); !ok && !errors.Is(err, domain.ErrDecode) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if signOutErr := s.registry.SignOut(ctx, sessionID); signOutErr != nil {
		s.logger.WarnContext(ctx, "failed to sign out", "session_id", sessionID, "error", signOutErr)
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrSignedOut, err)
}

func (s *authService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.registry.SignOut(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}
