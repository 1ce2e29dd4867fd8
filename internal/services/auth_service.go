package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	iauth "github.com/meirshuvax/bynet-portal/internal/auth"
	"github.com/meirshuvax/bynet-portal/internal/models"
	"github.com/meirshuvax/bynet-portal/pkg/crypto"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
	"github.com/meirshuvax/bynet-portal/pkg/metrics"
)

// LoginResult bundles the issued token with the authenticated user.
type LoginResult struct {
	Token string
	User  *models.User
}

// AuthService verifies credentials and issues access tokens. It replaces the
// fixed-identity shim the portal originally shipped with: every request's
// acting user is resolved from a verified token, never from ambient state.
type AuthService struct {
	db    *gorm.DB
	users *UserService
	jwt   *iauth.JWTService
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, users *UserService, jwt *iauth.JWTService) (*AuthService, error) {
	if db == nil {
		return nil, errors.New("auth service: db is required")
	}
	if users == nil {
		return nil, errors.New("auth service: user service is required")
	}
	if jwt == nil {
		return nil, errors.New("auth service: jwt service is required")
	}
	return &AuthService{db: db, users: users, jwt: jwt}, nil
}

// Login verifies the supplied credentials and returns a signed access token.
// Unknown users, bad passwords, and deactivated accounts all collapse into
// the same invalid-credentials error to avoid user enumeration.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	ctx = ensureContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewBadRequest("username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !crypto.VerifyPassword(user.Password, password) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(iauth.AccessTokenInput{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue access token")
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &LoginResult{Token: token, User: user}, nil
}
