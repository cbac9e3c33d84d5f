package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Identity is the subject established by a successful credential check.
type Identity struct {
	ID       string
	Username string
	Name     string
}

// CredentialVerifier checks a submitted username/password pair. Implementations
// can be swapped for a real credential store (hashed password table, external
// identity provider) without touching the product service.
type CredentialVerifier interface {
	Verify(username, password string) (*Identity, bool)
}

// FixedVerifier accepts exactly one case-sensitive identity. It is a
// demonstration stub, not a credential store.
type FixedVerifier struct {
	username     string
	passwordHash []byte
	identity     Identity
}

// NewFixedVerifier hashes the configured password once and keeps the single
// valid identity.
func NewFixedVerifier(username, password string) (*FixedVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &FixedVerifier{
		username:     username,
		passwordHash: hash,
		identity: Identity{
			ID:       "1",
			Username: username,
			Name:     "Administrador",
		},
	}, nil
}

// Verify performs an exact, case-sensitive match against the fixed pair.
func (v *FixedVerifier) Verify(username, password string) (*Identity, bool) {
	if username != v.username {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)); err != nil {
		return nil, false
	}
	identity := v.identity
	return &identity, true
}
