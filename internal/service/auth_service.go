package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ZvonimirSimic/weather-service/internal/auth"
	"github.com/ZvonimirSimic/weather-service/internal/config"
	"github.com/ZvonimirSimic/weather-service/internal/domain"
	"github.com/ZvonimirSimic/weather-service/internal/events"
	"github.com/ZvonimirSimic/weather-service/internal/repository"
	apperrors "github.com/ZvonimirSimic/weather-service/pkg/util"
)

const uniqueViolationCode = "23505"

// Login failures always surface this exact message, whether the username is
// unknown or the password wrong, so callers cannot enumerate accounts.
const genericLoginMessage = "invalid username or password"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg),
		bcryptCost: cfg.BcryptCost,
		dispatcher: dispatcher,
	}
}

// Register creates a new account. The username existence check here is only
// a friendly fast path; the unique index on users.username is the actual
// enforcement point under concurrent registrations, and its violation maps
// to the same duplicate error.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewDuplicateUsername(username)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewDuplicateUsername(username)
		}
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventUserRegistered,
			Timestamp: time.Now().UTC(),
			Payload:   events.UserRegisteredPayload{UserID: user.ID, Username: user.Username},
		})
	}
	return user, nil
}

// Login authenticates a user and mints a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewUnauthorized(genericLoginMessage)
		}
		return nil, "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized(genericLoginMessage)
	}

	token, _, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
