// Package auth issues and verifies the service's own HS256 access/refresh
// token pair. First-login identity comes from an external provider behind
// the Verifier interface.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("refresh token reused or revoked")
)

type Identity struct {
	UID   string
	Email string
	Name  string
}

// Verifier checks an identity-provider token and returns the caller.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

type Manager struct {
	accessSecret  []byte
	refreshSecret []byte

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> refresh expiry
}

func NewManager(accessSecret, refreshSecret string) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		revoked:       make(map[string]time.Time),
	}
}

func (m *Manager) AccessToken(id Identity) (string, error) {
	return m.sign(id, "access", AccessTTL, m.accessSecret)
}

func (m *Manager) RefreshToken(id Identity) (string, error) {
	return m.sign(id, "refresh", RefreshTTL, m.refreshSecret)
}

func (m *Manager) sign(id Identity, typ string, ttl time.Duration, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id.UID,
		"email": id.Email,
		"name":  id.Name,
		"exp":   time.Now().Add(ttl).Unix(),
		"type":  typ,
		"jti":   uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccess validates an access token and returns its identity.
func (m *Manager) VerifyAccess(token string) (Identity, error) {
	id, _, err := m.verify(token, "access", m.accessSecret)
	return id, err
}

// VerifyRefresh validates a refresh token, rejecting revoked jtis, and
// returns the identity plus the jti so the caller can rotate it.
func (m *Manager) VerifyRefresh(token string) (Identity, string, error) {
	id, jti, err := m.verify(token, "refresh", m.refreshSecret)
	if err != nil {
		return Identity{}, "", err
	}
	m.mu.Lock()
	_, revoked := m.revoked[jti]
	m.mu.Unlock()
	if revoked {
		return Identity{}, "", ErrTokenRevoked
	}
	return id, jti, nil
}

// Revoke marks a refresh jti as spent. Entries past the refresh TTL are
// dropped opportunistically to keep the map bounded.
func (m *Manager) Revoke(jti string) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, k)
		}
	}
	m.revoked[jti] = now.Add(RefreshTTL)
}

func (m *Manager) verify(token, wantType string, secret []byte) (Identity, string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Identity{}, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != wantType {
		return Identity{}, "", fmt.Errorf("%w: wrong token type", ErrInvalidToken)
	}
	id := Identity{}
	if s, ok := claims["sub"].(string); ok {
		id.UID = s
	}
	if s, ok := claims["email"].(string); ok {
		id.Email = s
	}
	if s, ok := claims["name"].(string); ok {
		id.Name = s
	}
	if id.UID == "" {
		return Identity{}, "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	jti, _ := claims["jti"].(string)
	return id, jti, nil
}
