package service

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	"github.com/noah-isme/sma-absensi-api/pkg/config"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

// AuthService authenticates the single configured teacher account and issues
// access tokens. There is no user table: the credential pair comes from
// configuration. The configured password may be stored as a bcrypt hash
// (recommended) or as a plain value compared in constant time.
type AuthService struct {
	cfg       config.AuthConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(cfg config.AuthConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{cfg: cfg, validator: validate, logger: logger, now: time.Now}
}

// Login checks the credential pair and returns a signed JWT.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Username)) == 1
	if !userOK || !s.passwordMatches(req.Password) {
		s.logger.Warn("login rejected", zap.String("username", req.Username))
		return nil, appErrors.ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.cfg.Expiration)
	claims := models.JWTClaims{
		Username: s.cfg.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.cfg.Username,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt, Username: s.cfg.Username}, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(raw string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) passwordMatches(supplied string) bool {
	if strings.HasPrefix(s.cfg.Password, "$2a$") || strings.HasPrefix(s.cfg.Password, "$2b$") || strings.HasPrefix(s.cfg.Password, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.Password), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(s.cfg.Password)) == 1
}
