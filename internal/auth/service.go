package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/mail"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/token"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/tokenstore"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/validator"
	"github.com/skku-gallery/gallery/go-web-server/internal/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	verifyEmailPath   = "/user/verify-email"
	resetPasswordPath = "/user/password/reset"
)

// LoginResult carries the signed session token next to the response body
type LoginResult struct {
	SessionToken string
	Response     LoginResponse
}

type AuthService struct {
	db             *gorm.DB
	cfg            *config.Config
	userRepository *user.UserRepository
	tokenManager   token.Manager
	tokens         tokenstore.Store
	mailer         mail.Sender
	publisher      event.Publisher
}

func NewAuthService(
	db *gorm.DB,
	cfg *config.Config,
	userRepository *user.UserRepository,
	tokenManager token.Manager,
	tokens tokenstore.Store,
	mailer mail.Sender,
	publisher event.Publisher,
) *AuthService {
	return &AuthService{
		db:             db,
		cfg:            cfg,
		userRepository: userRepository,
		tokenManager:   tokenManager,
		tokens:         tokens,
		mailer:         mailer,
		publisher:      publisher,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResult, error) {
	log := logger.FromContext(ctx)
	identifier := request.Identifier()

	// 1. Find user by username or email
	found, err := a.userRepository.FindByLogin(ctx, a.db, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("로그인 실패 - user not found", "identifier", logger.MaskEmail(identifier))
			return nil, fmt.Errorf("login: %w", ErrIncorrectCredentials) // Security: don't reveal if account exists
		}
		log.Error("로그인 실패 - 알 수 없는 오류", "error", err)
		return nil, fmt.Errorf("로그인 실패: %w", err)
	}

	// 2. Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(request.Password)); err != nil {
		log.Warn("로그인 실패 - invalid password", "user_id", found.ID)
		return nil, fmt.Errorf("login: %w", ErrIncorrectCredentials)
	}

	// 3. Only active accounts may log in
	if err := statusError(found.Status); err != nil {
		log.Warn("로그인 실패 - inactive account", "user_id", found.ID, "status", found.Status)
		return nil, fmt.Errorf("login: %w", err)
	}

	// 4. Sign session token
	sessionToken, err := a.tokenManager.GenerateSessionToken(found.ID, found.Email, string(found.Role))
	if err != nil {
		log.Error("session token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now().UTC()
	if err := a.userRepository.TouchLastLogin(ctx, a.db, found.ID, now); err != nil {
		log.Warn("마지막 로그인 시각 갱신 실패", "user_id", found.ID, "error", err)
	}
	found.LastLoginAt = &now

	fallback := "/"
	if found.IsAdmin() {
		fallback = "/admin"
	}

	log.Info("로그인 성공", "user_id", found.ID, "email", logger.MaskEmail(found.Email))

	return &LoginResult{
		SessionToken: sessionToken,
		Response: LoginResponse{
			User:     user.NewUserResponse(found),
			Redirect: SafeRedirect(request.Redirect, fallback),
		},
	}, nil
}

// Signup registers a SKKU or external member. With email verification enabled the account
// starts UNVERIFIED and a verification link is mailed.
func (a *AuthService) Signup(ctx context.Context, request *SignupRequest) (*user.UserResponse, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if request.Role == model.RoleSkkuMember && !validator.IsSkkuEmail(email) {
		log.Warn("SKKU 이메일이 아닌 회원가입 시도", "email", logger.MaskEmail(email))
		return nil, fmt.Errorf("signup: %w", ErrSkkuEmailRequired)
	}

	status := model.UserStatusActive
	if a.cfg.Auth.EmailVerification {
		status = model.UserStatusUnverified
	}

	var created *model.User
	err := database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		exists, err := a.userRepository.IsEmailTaken(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			log.Warn("User already exists", "email", logger.MaskEmail(email))
			return fmt.Errorf("signup: %w", user.ErrEmailAlreadyExists)
		}

		exists, err = a.userRepository.IsUsernameTaken(ctx, tx, request.Username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return fmt.Errorf("signup: %w", user.ErrUsernameAlreadyExists)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		created = model.NewUser(request.Username, email, string(hashedPassword), strings.TrimSpace(request.Name), request.Role, status)
		switch request.Role {
		case model.RoleSkkuMember:
			created.SkkuProfile = &model.SkkuProfile{
				Department:   request.Department,
				StudentYear:  request.StudentYear,
				IsClubMember: request.IsClubMember,
			}
		case model.RoleExternalMember:
			created.ExternalProfile = &model.ExternalProfile{Affiliation: request.Affiliation}
		}

		if err := a.userRepository.Create(ctx, tx, created); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		var domainErr sharedError.DomainError
		if !errors.As(err, &domainErr) {
			log.Error("Failed to create user", "error", err)
		}
		return nil, err
	}

	log.Info("User created successfully", "user_id", created.ID, "email", logger.MaskEmail(email), "status", status)
	event.Emit(ctx, a.publisher, event.New(event.UserRegistered, created.ID, created.ID))

	if status == model.UserStatusUnverified {
		if err := a.sendVerification(ctx, created); err != nil {
			// 가입은 유지하고 인증 메일 재발송으로 복구할 수 있다
			log.Error("인증 메일 발송 실패", "user_id", created.ID, "error", err)
		}
	}

	resp := user.NewUserResponse(created)
	return &resp, nil
}

// VerifyEmail consumes a verification token and activates the account
func (a *AuthService) VerifyEmail(ctx context.Context, rawToken string) error {
	log := logger.FromContext(ctx)

	userID, err := a.tokens.Consume(ctx, model.TokenKindEmailVerification, rawToken)
	if err != nil {
		log.Warn("이메일 인증 실패", "error", err)
		return fmt.Errorf("verify email: %w", err)
	}

	found, err := a.userRepository.FindByID(ctx, a.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("verify email: %w", tokenstore.ErrTokenInvalid)
		}
		return fmt.Errorf("verify email: %w", err)
	}

	if found.Status == model.UserStatusUnverified {
		if err := a.userRepository.UpdateStatus(ctx, a.db, userID, model.UserStatusActive); err != nil {
			return fmt.Errorf("activate user: %w", err)
		}
	}

	log.Info("이메일 인증 완료", "user_id", userID)
	event.Emit(ctx, a.publisher, event.New(event.UserVerified, userID, userID))
	return nil
}

// ResendVerification mails a new link when the address belongs to an UNVERIFIED account.
// Unknown addresses and delivery failures succeed silently.
func (a *AuthService) ResendVerification(ctx context.Context, email string) error {
	found, err := a.userRepository.FindByEmail(ctx, a.db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}
	if found.Status != model.UserStatusUnverified {
		return nil
	}
	if err := a.sendVerification(ctx, found); err != nil {
		logger.FromContext(ctx).Error("인증 메일 재발송 실패", "user_id", found.ID, "error", err)
	}
	return nil
}

// ForgotPassword mails a reset link. Unknown addresses and delivery failures succeed silently
// so the response never reveals whether an account exists.
func (a *AuthService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	found, err := a.userRepository.FindByEmail(ctx, a.db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info("비밀번호 재설정 요청 - 존재하지 않는 이메일", "email", logger.MaskEmail(email))
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	raw, err := a.tokens.Issue(ctx, model.TokenKindPasswordReset, found.ID, a.cfg.Auth.PasswordResetTTL)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	msg := mail.PasswordResetMessage(found.Email, found.Name, a.link(resetPasswordPath, raw), a.cfg.Auth.PasswordResetTTL)
	if err := a.mailer.Send(ctx, msg); err != nil {
		// 응답은 미가입 이메일과 같아야 한다
		log.Error("비밀번호 재설정 메일 발송 실패", "user_id", found.ID, "error", err)
		return nil
	}

	log.Info("비밀번호 재설정 메일 발송", "user_id", found.ID)
	return nil
}

func (a *AuthService) ResetPassword(ctx context.Context, request *ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	userID, err := a.tokens.Consume(ctx, model.TokenKindPasswordReset, request.Token)
	if err != nil {
		log.Warn("비밀번호 재설정 토큰 검증 실패", "error", err)
		return fmt.Errorf("reset password: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, a.db, userID, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	log.Info("비밀번호 재설정 완료", "user_id", userID)
	return nil
}

func (a *AuthService) sendVerification(ctx context.Context, u *model.User) error {
	raw, err := a.tokens.Issue(ctx, model.TokenKindEmailVerification, u.ID, a.cfg.Auth.VerificationTTL)
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}

	msg := mail.VerificationMessage(u.Email, u.Name, a.link(verifyEmailPath, raw), a.cfg.Auth.VerificationTTL)
	return a.mailer.Send(ctx, msg)
}

func (a *AuthService) link(path, rawToken string) string {
	return strings.TrimRight(a.cfg.App.URL, "/") + path + "?token=" + url.QueryEscape(rawToken)
}

func statusError(status model.UserStatus) error {
	switch status {
	case model.UserStatusActive:
		return nil
	case model.UserStatusUnverified:
		return ErrAccountUnverified
	case model.UserStatusPending:
		return ErrAccountPending
	case model.UserStatusBlocked:
		return ErrAccountBlocked
	default:
		return ErrAccountInactive
	}
}
