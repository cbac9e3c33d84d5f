package services_test

import (
	"testing"

	"estoque/internal/auth"
	"estoque/internal/services"

	"github.com/stretchr/testify/assert"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	verifier, err := auth.NewFixedVerifier("admin", "admin")
	assert.NoError(t, err)
	return services.NewAuthService(verifier, "test_jwt_secret")
}

func TestAuthService_Login(t *testing.T) {
	authService := newAuthService(t)

	token, err := authService.Login("admin", "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "1", claims["sub"])
	assert.Equal(t, "Administrador", claims["name"])
	assert.NotEmpty(t, claims["jti"])
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	authService := newAuthService(t)

	_, err := authService.Login("admin", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = authService.Login("someone", "admin")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(t)

	// Garbage is rejected.
	_, err := authService.ValidateToken("not-a-token")
	assert.Error(t, err)

	// A token signed with a different secret is rejected.
	verifier, err := auth.NewFixedVerifier("admin", "admin")
	assert.NoError(t, err)
	other := services.NewAuthService(verifier, "another_secret")
	token, err := other.Login("admin", "admin")
	assert.NoError(t, err)

	_, err = authService.ValidateToken(token)
	assert.Error(t, err)
}

// Every issued token carries a fresh jti.
func TestAuthService_TokenUniqueness(t *testing.T) {
	authService := newAuthService(t)

	first, err := authService.Login("admin", "admin")
	assert.NoError(t, err)
	second, err := authService.Login("admin", "admin")
	assert.NoError(t, err)

	firstClaims, err := authService.ValidateToken(first)
	assert.NoError(t, err)
	secondClaims, err := authService.ValidateToken(second)
	assert.NoError(t, err)
	assert.NotEqual(t, firstClaims["jti"], secondClaims["jti"])
}
