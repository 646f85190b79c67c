package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/mail"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db             *gorm.DB
	cfg            *config.Config
	userRepository *UserRepository
	mailer         mail.Sender
	publisher      event.Publisher
}

func NewUserService(db *gorm.DB, cfg *config.Config, userRepository *UserRepository, mailer mail.Sender, publisher event.Publisher) *UserService {
	return &UserService{
		db:             db,
		cfg:            cfg,
		userRepository: userRepository,
		mailer:         mailer,
		publisher:      publisher,
	}
}

func (s *UserService) GetProfile(ctx context.Context, id uint32) (*UserResponse, error) {
	user, err := s.find(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	resp := NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes the caller's name and the profile fields of their role
func (s *UserService) UpdateProfile(ctx context.Context, id uint32, req *UpdateProfileRequest) (*UserResponse, error) {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		user, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.userRepository.UpdateFields(ctx, tx, id, map[string]any{"name": req.Name}); err != nil {
			return fmt.Errorf("update user: %w", err)
		}

		switch user.Role {
		case model.RoleSkkuMember:
			err = s.userRepository.SaveSkkuProfile(ctx, tx, &model.SkkuProfile{
				UserID:       id,
				Department:   req.Department,
				StudentYear:  req.StudentYear,
				IsClubMember: req.IsClubMember,
			})
		case model.RoleExternalMember:
			err = s.userRepository.SaveExternalProfile(ctx, tx, &model.ExternalProfile{
				UserID:      id,
				Affiliation: req.Affiliation,
			})
		}
		if err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("프로필 수정 실패", "user_id", id, "error", err)
		return nil, err
	}

	log.Info("프로필 수정 완료", "user_id", id)
	return s.GetProfile(ctx, id)
}

// DeleteAccount removes the caller's own account
func (s *UserService) DeleteAccount(ctx context.Context, id uint32) error {
	return s.delete(ctx, id, id)
}

func (s *UserService) List(ctx context.Context, query ListQuery, page pagination.Query) (*UserListResponse, error) {
	filter := query.Filter()

	total, err := s.userRepository.Count(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	p := pagination.New(total, page.Page, page.Limit, s.cfg.Pagination.DisplayPageCount)
	users, err := s.userRepository.List(ctx, s.db, filter, p.Offset(), p.Limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, NewUserResponse(&users[i]))
	}
	return &UserListResponse{Items: items, Pagination: p}, nil
}

// AdminUpdate changes name, role and status. An admin cannot change their own role or status.
func (s *UserService) AdminUpdate(ctx context.Context, actorID, id uint32, req *AdminUpdateRequest) (*UserResponse, error) {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		user, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		if actorID == id && (req.Role != user.Role || req.Status != user.Status) {
			return fmt.Errorf("admin update: %w", ErrCannotDemoteSelf)
		}

		return s.userRepository.UpdateFields(ctx, tx, id, map[string]any{
			"name":   req.Name,
			"role":   req.Role,
			"status": req.Status,
		})
	})
	if err != nil {
		log.Warn("회원 정보 수정 실패", "target_id", id, "error", err)
		return nil, err
	}

	log.Info("회원 정보 수정 완료", "target_id", id, "role", req.Role, "status", req.Status)
	return s.GetProfile(ctx, id)
}

func (s *UserService) AdminDelete(ctx context.Context, actorID, id uint32) error {
	if actorID == id {
		return fmt.Errorf("admin delete: %w", ErrCannotDeleteSelf)
	}
	return s.delete(ctx, actorID, id)
}

// ResetPassword replaces the password with a generated one and mails it to the user
func (s *UserService) ResetPassword(ctx context.Context, id uint32) error {
	log := logger.FromContext(ctx)

	user, err := s.find(ctx, s.db, id)
	if err != nil {
		return err
	}

	password, err := GenerateTemporaryPassword()
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, s.db, id, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.mailer.Send(ctx, mail.TemporaryPasswordMessage(user.Email, user.Name, password)); err != nil {
		log.Error("임시 비밀번호 메일 발송 실패", "email", logger.MaskEmail(user.Email), "error", err)
		return fmt.Errorf("send mail: %w", err)
	}

	log.Info("임시 비밀번호 발급", "target_id", id)
	return nil
}

// PurgeUnverified deletes UNVERIFIED accounts created before cutoff
func (s *UserService) PurgeUnverified(ctx context.Context, cutoff time.Time) (int64, error) {
	ids, err := s.userRepository.FindUnverifiedBefore(ctx, s.db, cutoff)
	if err != nil {
		return 0, fmt.Errorf("find unverified users: %w", err)
	}

	var purged int64
	for _, id := range ids {
		err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
			return s.userRepository.Delete(ctx, tx, id)
		})
		if err != nil {
			return purged, fmt.Errorf("delete user %d: %w", id, err)
		}
		purged++
	}
	return purged, nil
}

func (s *UserService) delete(ctx context.Context, actorID, id uint32) error {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.userRepository.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("delete user: %w", ErrUserNotFound)
		}
		log.Error("회원 삭제 실패", "target_id", id, "error", err)
		return fmt.Errorf("delete user: %w", err)
	}

	log.Info("회원 삭제 완료", "target_id", id, "actor_id", actorID)
	event.Emit(ctx, s.publisher, event.New(event.UserDeleted, id, actorID))
	return nil
}

func (s *UserService) find(ctx context.Context, db *gorm.DB, id uint32) (*model.User, error) {
	user, err := s.userRepository.FindByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user %d: %w", id, ErrUserNotFound)
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}
