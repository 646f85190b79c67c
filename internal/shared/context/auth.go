package context

import (
	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
)

// Context keys for storing session information
const (
	SessionUserKey = "session_user"
)

// SessionUser is the authenticated user restored from the session cookie
type SessionUser struct {
	ID    uint32
	Email string
	Role  model.Role
}

func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == model.RoleAdmin
}

// HasRole reports whether the user holds any of the given roles
func (u *SessionUser) HasRole(roles ...model.Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// CanModify reports whether the user owns the resource or is an admin
func (u *SessionUser) CanModify(ownerID *uint32) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == u.ID
}

func SetUser(c *gin.Context, user *SessionUser) {
	c.Set(SessionUserKey, user)
}

func GetUser(c *gin.Context) (*SessionUser, bool) {
	value, exists := c.Get(SessionUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*SessionUser)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
