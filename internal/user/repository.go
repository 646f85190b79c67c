package user

import (
	"context"
	"strings"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"gorm.io/gorm"
)

// ListFilter narrows the admin user listing
type ListFilter struct {
	Role    model.Role
	Status  model.UserStatus
	Keyword string
}

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *UserRepository) IsUsernameTaken(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Create inserts the user together with its role profile
func (r *UserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.User, error) {
	var user model.User
	err := withProfiles(db.WithContext(ctx)).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	var user model.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin looks a user up by username or email; emails are stored lower-cased
func (r *UserRepository) FindByLogin(ctx context.Context, db *gorm.DB, identifier string) (*model.User, error) {
	var user model.User
	err := db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, db *gorm.DB, filter ListFilter, offset, limit int) ([]model.User, error) {
	var users []model.User
	err := applyFilter(withProfiles(db.WithContext(ctx)), filter).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Count(ctx context.Context, db *gorm.DB, filter ListFilter) (int64, error) {
	var count int64
	err := applyFilter(db.WithContext(ctx).Model(&model.User{}), filter).Count(&count).Error
	return count, err
}

// UpdateFields applies a partial update to the user row
func (r *UserRepository) UpdateFields(ctx context.Context, db *gorm.DB, id uint32, fields map[string]any) error {
	return db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, db *gorm.DB, id uint32, hashedPassword string) error {
	return r.UpdateFields(ctx, db, id, map[string]any{"password": hashedPassword})
}

func (r *UserRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uint32, status model.UserStatus) error {
	return r.UpdateFields(ctx, db, id, map[string]any{"status": status})
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, db *gorm.DB, id uint32, at time.Time) error {
	return r.UpdateFields(ctx, db, id, map[string]any{"last_login_at": at})
}

// SaveSkkuProfile creates or replaces the SKKU profile of a user
func (r *UserRepository) SaveSkkuProfile(ctx context.Context, db *gorm.DB, profile *model.SkkuProfile) error {
	return db.WithContext(ctx).
		Where("user_id = ?", profile.UserID).
		Assign(map[string]any{
			"department":     profile.Department,
			"student_year":   profile.StudentYear,
			"is_club_member": profile.IsClubMember,
		}).
		FirstOrCreate(profile).Error
}

// SaveExternalProfile creates or replaces the external profile of a user
func (r *UserRepository) SaveExternalProfile(ctx context.Context, db *gorm.DB, profile *model.ExternalProfile) error {
	return db.WithContext(ctx).
		Where("user_id = ?", profile.UserID).
		Assign(map[string]any{"affiliation": profile.Affiliation}).
		FirstOrCreate(profile).Error
}

// Delete removes the user and everything that cannot outlive it. Artworks and notices are kept
// with their owner reference cleared. Must run inside a transaction.
func (r *UserRepository) Delete(ctx context.Context, tx *gorm.DB, id uint32) error {
	tx = tx.WithContext(ctx)

	steps := []func() error{
		func() error { return tx.Where("author_id = ?", id).Delete(&model.Comment{}).Error },
		func() error {
			return tx.Model(&model.Artwork{}).Where("user_id = ?", id).Update("user_id", nil).Error
		},
		func() error {
			return tx.Model(&model.Notice{}).Where("author_id = ?", id).Update("author_id", nil).Error
		},
		func() error { return tx.Where("user_id = ?", id).Delete(&model.UserToken{}).Error },
		func() error { return tx.Where("user_id = ?", id).Delete(&model.SkkuProfile{}).Error },
		func() error { return tx.Where("user_id = ?", id).Delete(&model.ExternalProfile{}).Error },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	result := tx.Where("id = ?", id).Delete(&model.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindUnverifiedBefore lists ids of UNVERIFIED accounts created before cutoff
func (r *UserRepository) FindUnverifiedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]uint32, error) {
	var ids []uint32
	err := db.WithContext(ctx).
		Model(&model.User{}).
		Where("status = ? AND created_at < ?", model.UserStatusUnverified, cutoff).
		Pluck("id", &ids).Error
	return ids, err
}

func withProfiles(db *gorm.DB) *gorm.DB {
	return db.Preload("SkkuProfile").Preload("ExternalProfile")
}

func applyFilter(db *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		db = db.Where("(username LIKE ? OR email LIKE ? OR name LIKE ?)", like, like, like)
	}
	return db
}
