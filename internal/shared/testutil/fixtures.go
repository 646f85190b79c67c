package testutil

import (
	"testing"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultPassword = "password123"

// CreateUser inserts an ACTIVE user whose password is DefaultPassword
func CreateUser(t *testing.T, db *gorm.DB, username, email string, role model.Role) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := model.NewUser(username, email, string(hash), username, role, model.UserStatusActive)
	if role == model.RoleSkkuMember {
		user.SkkuProfile = &model.SkkuProfile{Department: "미술학과", StudentYear: 2021}
	}
	if role == model.RoleExternalMember {
		user.ExternalProfile = &model.ExternalProfile{Affiliation: "외부 기관"}
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// CreateExhibition inserts an exhibition spanning [start, start+days)
func CreateExhibition(t *testing.T, db *gorm.DB, title string, start time.Time, days int) *model.Exhibition {
	t.Helper()

	exhibition := &model.Exhibition{
		Title:          title,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, days-1),
		ExhibitionType: model.ExhibitionTypeRegular,
	}
	if err := db.Create(exhibition).Error; err != nil {
		t.Fatalf("Failed to create exhibition: %v", err)
	}
	return exhibition
}

// CreateArtwork inserts an artwork owned by ownerID
func CreateArtwork(t *testing.T, db *gorm.DB, title string, ownerID uint32, exhibitionID *uint32) *model.Artwork {
	t.Helper()

	artwork := &model.Artwork{
		Title:        title,
		Artist:       "홍길동",
		Department:   "미술학과",
		Year:         2024,
		UserID:       &ownerID,
		ExhibitionID: exhibitionID,
	}
	if err := db.Create(artwork).Error; err != nil {
		t.Fatalf("Failed to create artwork: %v", err)
	}
	return artwork
}
