package testutil

import (
	"net/http"
	"testing"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/token"
)

// MockTokenManager is a mock implementation of token.Manager for testing
type MockTokenManager struct {
	GenerateSessionTokenFunc func(userID uint32, email, role string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

func (m *MockTokenManager) GenerateSessionToken(userID uint32, email, role string) (string, error) {
	if m.GenerateSessionTokenFunc != nil {
		return m.GenerateSessionTokenFunc(userID, email, role)
	}
	return "mock-session-token", nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return nil, token.ErrInvalidToken
}

// Ensure MockTokenManager implements token.Manager
var _ token.Manager = (*MockTokenManager)(nil)

// NewMockTokenManager creates a new mock token manager with default behavior
func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

// SessionCookie signs a real session token for user with the test config secret
func SessionCookie(t *testing.T, cfg *config.Config, user *model.User) *http.Cookie {
	t.Helper()

	value, err := token.NewJWTManager(cfg).GenerateSessionToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		t.Fatalf("Failed to sign session token: %v", err)
	}
	return &http.Cookie{Name: cfg.Session.CookieName, Value: value}
}
