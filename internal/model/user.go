package model

import "time"

type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleSkkuMember     Role = "SKKU_MEMBER"
	RoleExternalMember Role = "EXTERNAL_MEMBER"
)

type UserStatus string

const (
	UserStatusPending    UserStatus = "PENDING"
	UserStatusActive     UserStatus = "ACTIVE"
	UserStatusInactive   UserStatus = "INACTIVE"
	UserStatusBlocked    UserStatus = "BLOCKED"
	UserStatusUnverified UserStatus = "UNVERIFIED"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSkkuMember, RoleExternalMember:
		return true
	}
	return false
}

// IsValid reports whether s is one of the known statuses
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusInactive, UserStatusBlocked, UserStatusUnverified:
		return true
	}
	return false
}

// User represents a gallery account
type User struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Username    string     `gorm:"column:username;type:VARCHAR(50);not null;uniqueIndex:idx_user_username"`
	Email       string     `gorm:"column:email;type:VARCHAR(255);not null;uniqueIndex:idx_user_email"`
	Password    string     `gorm:"column:password;type:VARCHAR(60);not null"` // bcrypt hash
	Name        string     `gorm:"column:name;type:VARCHAR(100);not null"`
	Role        Role       `gorm:"column:role;type:VARCHAR(20);not null;index"`
	Status      UserStatus `gorm:"column:status;type:VARCHAR(20);not null;index"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`

	SkkuProfile     *SkkuProfile     `gorm:"foreignKey:UserID"`
	ExternalProfile *ExternalProfile `gorm:"foreignKey:UserID"`

	BaseEntity
}

func (*User) TableName() string {
	return "users"
}

// SkkuProfile holds the SKKU member specific fields
type SkkuProfile struct {
	ID           uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	UserID       uint32 `gorm:"column:user_id;not null;uniqueIndex:idx_skku_profile_user"`
	Department   string `gorm:"column:department;type:VARCHAR(100);not null"`
	StudentYear  int    `gorm:"column:student_year;not null"`
	IsClubMember bool   `gorm:"column:is_club_member;not null;default:false"`

	BaseEntity
}

func (*SkkuProfile) TableName() string {
	return "skku_user_profile"
}

// ExternalProfile holds the external member specific fields
type ExternalProfile struct {
	ID          uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      uint32 `gorm:"column:user_id;not null;uniqueIndex:idx_external_profile_user"`
	Affiliation string `gorm:"column:affiliation;type:VARCHAR(200)"`

	BaseEntity
}

func (*ExternalProfile) TableName() string {
	return "external_user_profile"
}

// NewUser creates a user; password must already be hashed (handled in service layer)
func NewUser(username, email, hashedPassword, name string, role Role, status UserStatus) *User {
	return &User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Name:     name,
		Role:     role,
		Status:   status,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
