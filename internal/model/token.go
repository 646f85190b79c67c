package model

import "time"

type TokenKind string

const (
	TokenKindEmailVerification TokenKind = "EMAIL_VERIFICATION"
	TokenKindPasswordReset     TokenKind = "PASSWORD_RESET"
)

// UserToken is a one-time token persisted by the database token store
type UserToken struct {
	ID        uint32    `gorm:"column:id;primaryKey;autoIncrement"`
	Token     string    `gorm:"column:token;type:VARCHAR(64);not null;uniqueIndex:idx_user_token_token"`
	Kind      TokenKind `gorm:"column:kind;type:VARCHAR(30);not null"`
	UserID    uint32    `gorm:"column:user_id;not null;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`

	BaseEntity
}

func (*UserToken) TableName() string {
	return "user_token"
}
