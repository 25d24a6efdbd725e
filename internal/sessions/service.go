package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/security"
	"gorm.io/gorm"
)

const minPasswordLen = 4

type sessionRepository interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUserWithSession(ctx context.Context, user *models.User, session *models.Session) error
	CreateSession(ctx context.Context, session *models.Session) error
	FindSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service gates every business operation behind a valid session token.
type Service interface {
	Register(ctx context.Context, input RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, input LoginRequest) (*TokenResponse, error)
	Logout(ctx context.Context, rawToken string) error
	Validate(ctx context.Context, rawToken string) (string, error)
	CleanupExpired(ctx context.Context)
}

// ServiceParams configure the session service.
type ServiceParams struct {
	Repo        sessionRepository
	Logger      *logger.Logger
	PasswordCfg config.PasswordConfig
	SessionCfg  config.SessionConfig
	Now         func() time.Time
}

type service struct {
	repo        sessionRepository
	logg        *logger.Logger
	passwordCfg config.PasswordConfig
	ttl         time.Duration
	now         func() time.Time
}

// NewService builds a session service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("session repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := params.SessionCfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		logg:        params.Logger,
		passwordCfg: params.PasswordCfg,
		ttl:         ttl,
		now:         now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterRequest) (*TokenResponse, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)

	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Username and password required.")
	}
	if len(password) < minPasswordLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Password must be at least 4 characters.")
	}

	if _, err := s.repo.FindUserByUsername(ctx, username); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Username already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
	}

	if err := s.repo.CreateUserWithSession(ctx, user, session); err != nil {
		// a concurrent registration can win between the pre-check and the write
		if db.IsUniqueViolation(err, "username") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Username already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return &TokenResponse{Token: session.Token, Username: username}, nil
}

func (s *service) Login(ctx context.Context, input LoginRequest) (*TokenResponse, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)

	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Username and password required.")
	}

	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid username or password.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid username or password.")
	}

	// Multiple concurrent sessions per user are permitted.
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	return &TokenResponse{Token: session.Token, Username: username}, nil
}

func (s *service) Logout(ctx context.Context, rawToken string) error {
	token := StripBearer(rawToken)
	if token == "" {
		return nil
	}
	// Deleting an already-absent token is not an error.
	if err := s.repo.DeleteSession(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete session")
	}
	return nil
}

// Validate resolves a bearer token to a user id. Staleness is checked here
// directly rather than trusting that cleanup already ran.
func (s *service) Validate(ctx context.Context, rawToken string) (string, error) {
	token := StripBearer(rawToken)
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	session, err := s.repo.FindSession(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid token")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup session")
	}

	if s.now().Sub(session.CreatedAt) >= s.ttl {
		if err := s.repo.DeleteSession(ctx, token); err != nil {
			s.logg.Error(ctx, "failed to delete expired session", err)
		}
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid token")
	}

	return session.UserID, nil
}

// CleanupExpired purges stale sessions. Best effort: failures are logged and
// swallowed so they never fail the enclosing request.
func (s *service) CleanupExpired(ctx context.Context) {
	cutoff := s.now().Add(-s.ttl)
	deleted, err := s.repo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logg.Error(ctx, "session cleanup failed", err)
		return
	}
	if deleted > 0 {
		s.logg.Info(s.logg.WithField(ctx, "deleted", deleted), "expired sessions purged")
	}
}

// StripBearer trims an optional "Bearer " prefix; bare tokens are accepted.
func StripBearer(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
