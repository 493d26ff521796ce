package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-attendance/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
}

// Credentials come from the environment: a single admin account guards
// the management surface, while marking itself stays unauthenticated.
type service struct {
	username     string
	passwordHash []byte
	secret       []byte
	logger       *zap.Logger
	nowFn        func() time.Time
}

func NewService(logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	return &service{
		username:     username,
		passwordHash: []byte(os.Getenv("ADMIN_PASSWORD_HASH")),
		secret:       []byte(os.Getenv("JWT_SECRET")),
		logger:       l,
		nowFn:        time.Now,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	if req.Username != s.username || len(s.passwordHash) == 0 {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	now := s.nowFn()
	claims := jwt.MapClaims{
		"user_id": s.username,
		"role":    "admin",
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tokenTTL.Seconds()),
	}, nil
}
