package auth

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/user"
)

type SignupRequest struct {
	Username        string     `json:"username" form:"username" binding:"required,username"`
	Email           string     `json:"email" form:"email" binding:"required,email,max=255"`
	Password        string     `json:"password" form:"password" binding:"required,min=8,max=64,password"`
	ConfirmPassword string     `json:"confirmPassword" form:"confirmPassword" binding:"required,eqfield=Password"`
	Name            string     `json:"name" form:"name" binding:"required,min=1,max=50"`
	Role            model.Role `json:"role" form:"role" binding:"required,oneof=SKKU_MEMBER EXTERNAL_MEMBER"`
	Department      string     `json:"department" form:"department" binding:"required_if=Role SKKU_MEMBER,max=100"`
	StudentYear     int        `json:"studentYear" form:"studentYear" binding:"required_if=Role SKKU_MEMBER,gte=0,lte=2100"`
	IsClubMember    bool       `json:"isClubMember" form:"isClubMember"`
	Affiliation     string     `json:"affiliation" form:"affiliation" binding:"required_if=Role EXTERNAL_MEMBER,max=200"`
}

// LoginRequest accepts either a username or an email as the identifier
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required_without=Email,max=255"`
	Email    string `json:"email" form:"email" binding:"required_without=Username,max=255"`
	Password string `json:"password" form:"password" binding:"required,max=64"`
	Redirect string `json:"redirect" form:"redirect"`
}

func (r *LoginRequest) Identifier() string {
	if r.Username != "" {
		return strings.TrimSpace(r.Username)
	}
	return strings.TrimSpace(r.Email)
}

type LoginResponse struct {
	User     user.UserResponse `json:"user"`
	Redirect string            `json:"redirect"`
}

type EmailRequest struct {
	Email string `json:"email" form:"email" binding:"required,email,max=255"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" form:"token" binding:"required,max=64"`
	Password        string `json:"password" form:"password" binding:"required,min=8,max=64,password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required,eqfield=Password"`
}

// SafeRedirect keeps only same-site absolute paths. Browsers drop tabs and newlines
// from URLs, so any control character is rejected before the prefix checks.
func SafeRedirect(target, fallback string) string {
	if strings.ContainsFunc(target, unicode.IsControl) {
		return fallback
	}
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return fallback
	}
	return target
}
