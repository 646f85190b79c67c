package user

import (
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

var roleLabels = map[model.Role]string{
	model.RoleAdmin:          "관리자",
	model.RoleSkkuMember:     "성균관대 회원",
	model.RoleExternalMember: "외부 회원",
}

var statusLabels = map[model.UserStatus]string{
	model.UserStatusPending:    "승인 대기",
	model.UserStatusActive:     "활성",
	model.UserStatusInactive:   "비활성",
	model.UserStatusBlocked:    "차단",
	model.UserStatusUnverified: "이메일 미인증",
}

// RoleLabel returns the Korean display name of a role
func RoleLabel(r model.Role) string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

func StatusLabel(s model.UserStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

type UserResponse struct {
	ID           uint32           `json:"id"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	Name         string           `json:"name"`
	Role         model.Role       `json:"role"`
	Status       model.UserStatus `json:"status"`
	Department   string           `json:"department,omitempty"`
	StudentYear  int              `json:"studentYear,omitempty"`
	IsClubMember bool             `json:"isClubMember"`
	Affiliation  string           `json:"affiliation,omitempty"`
	LastLoginAt  *time.Time       `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func NewUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
	if u.SkkuProfile != nil {
		resp.Department = u.SkkuProfile.Department
		resp.StudentYear = u.SkkuProfile.StudentYear
		resp.IsClubMember = u.SkkuProfile.IsClubMember
	}
	if u.ExternalProfile != nil {
		resp.Affiliation = u.ExternalProfile.Affiliation
	}
	return resp
}

func (u UserResponse) RoleLabel() string {
	return RoleLabel(u.Role)
}

func (u UserResponse) StatusLabel() string {
	return StatusLabel(u.Status)
}

func (u UserResponse) IsSkkuMember() bool {
	return u.Role == model.RoleSkkuMember
}

func (u UserResponse) IsExternalMember() bool {
	return u.Role == model.RoleExternalMember
}

type UserListResponse struct {
	Items      []UserResponse        `json:"items"`
	Pagination pagination.Pagination `json:"pagination"`
}

// UpdateProfileRequest is the self-service profile update; profile fields apply to the caller's role
type UpdateProfileRequest struct {
	Name         string `json:"name" form:"name" binding:"required,min=1,max=50"`
	Department   string `json:"department" form:"department" binding:"max=100"`
	StudentYear  int    `json:"studentYear" form:"studentYear" binding:"gte=0,lte=2100"`
	IsClubMember bool   `json:"isClubMember" form:"isClubMember"`
	Affiliation  string `json:"affiliation" form:"affiliation" binding:"max=200"`
}

// AdminUpdateRequest changes what only an administrator may change
type AdminUpdateRequest struct {
	Name   string           `json:"name" form:"name" binding:"required,min=1,max=50"`
	Role   model.Role       `json:"role" form:"role" binding:"required,oneof=ADMIN SKKU_MEMBER EXTERNAL_MEMBER"`
	Status model.UserStatus `json:"status" form:"status" binding:"required,oneof=PENDING ACTIVE INACTIVE BLOCKED UNVERIFIED"`
}

type ListQuery struct {
	Role    string `form:"role" binding:"omitempty,oneof=ADMIN SKKU_MEMBER EXTERNAL_MEMBER"`
	Status  string `form:"status" binding:"omitempty,oneof=PENDING ACTIVE INACTIVE BLOCKED UNVERIFIED"`
	Keyword string `form:"keyword" binding:"max=100"`
}

func (q ListQuery) Filter() ListFilter {
	return ListFilter{
		Role:    model.Role(q.Role),
		Status:  model.UserStatus(q.Status),
		Keyword: q.Keyword,
	}
}
