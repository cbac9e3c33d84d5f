package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"estoque/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned when the submitted pair does not match
// the known identity. Deliberately opaque about which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues and validates session tokens. Credential checking is
// delegated to a CredentialVerifier so the demo pair can be replaced by a
// real store.
type AuthService struct {
	verifier   auth.CredentialVerifier
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which the session token is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(verifier auth.CredentialVerifier, jwtSecret string) *AuthService {
	return &AuthService{
		verifier:   verifier,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// TokenDuration returns how long issued tokens remain valid. Handlers use it
// to align the cookie lifetime with the token lifetime.
func (s *AuthService) TokenDuration() time.Duration {
	return s.tokenDurat
}

// Login verifies the credential pair and returns a signed session token.
func (s *AuthService) Login(username, password string) (string, error) {
	identity, ok := s.verifier.Verify(username, password)
	if !ok {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  identity.ID,
		"name": identity.Name,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenDurat).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a session token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
