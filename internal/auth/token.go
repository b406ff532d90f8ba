// Package auth provides the token source used by the transport to
// authenticate requests.
package auth

import "context"

// TokenManager supplies the bearer token attached to every request. The
// Triage API uses static per-account tokens, but the seam allows swapping
// in a refreshing source.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenManager provides a fixed token.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a token manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken implements TokenManager.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}
