package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	"github.com/noah-isme/sma-absensi-api/pkg/config"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

func testAuthConfig(password string) config.AuthConfig {
	return config.AuthConfig{
		Username:   "guru",
		Password:   password,
		JWTSecret:  "test-secret",
		Expiration: time.Hour,
	}
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc := NewAuthService(testAuthConfig("rahasia"), nil, zap.NewNop())

	resp, err := svc.Login(models.LoginRequest{Username: "guru", Password: "rahasia"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "guru", resp.Username)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestAuthServiceLoginBcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(testAuthConfig(string(hash)), nil, zap.NewNop())

	_, err = svc.Login(models.LoginRequest{Username: "guru", Password: "rahasia"})
	require.NoError(t, err)

	_, err = svc.Login(models.LoginRequest{Username: "guru", Password: "salah"})
	require.Error(t, err)
}

func TestAuthServiceLoginWrongCredentials(t *testing.T) {
	svc := NewAuthService(testAuthConfig("rahasia"), nil, zap.NewNop())

	cases := []models.LoginRequest{
		{Username: "guru", Password: "salah"},
		{Username: "bukan-guru", Password: "rahasia"},
	}
	for _, req := range cases {
		_, err := svc.Login(req)
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	}
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc := NewAuthService(testAuthConfig("rahasia"), nil, zap.NewNop())

	_, err := svc.Login(models.LoginRequest{Username: "", Password: ""})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := NewAuthService(testAuthConfig("rahasia"), nil, zap.NewNop())

	resp, err := svc.Login(models.LoginRequest{Username: "guru", Password: "rahasia"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "guru", claims.Username)

	_, err = svc.ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestAuthServiceValidateExpiredToken(t *testing.T) {
	svc := NewAuthService(testAuthConfig("rahasia"), nil, zap.NewNop())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	resp, err := svc.Login(models.LoginRequest{Username: "guru", Password: "rahasia"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
