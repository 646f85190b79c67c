package user_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/testutil"
	"github.com/skku-gallery/gallery/go-web-server/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*user.UserService, *gorm.DB, *testutil.MockMailer, *event.Recorder) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mailer := testutil.NewMockMailer()
	publisher := &event.Recorder{}
	svc := user.NewUserService(db, testutil.NewTestConfig(), user.NewUserRepository(), mailer, publisher)
	return svc, db, mailer, publisher
}

func TestUpdateProfile_SkkuMember(t *testing.T) {
	svc, db, _, _ := setupService(t)
	member := testutil.CreateUser(t, db, "member", "member@skku.edu", model.RoleSkkuMember)

	resp, err := svc.UpdateProfile(context.Background(), member.ID, &user.UpdateProfileRequest{
		Name:         "새 이름",
		Department:   "디자인학과",
		StudentYear:  2022,
		IsClubMember: true,
		Affiliation:  "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "새 이름", resp.Name)
	assert.Equal(t, "디자인학과", resp.Department)
	assert.Equal(t, 2022, resp.StudentYear)
	assert.True(t, resp.IsClubMember)
	assert.Empty(t, resp.Affiliation)

	var count int64
	require.NoError(t, db.Model(&model.SkkuProfile{}).Where("user_id = ?", member.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateProfile_ExternalMember(t *testing.T) {
	svc, db, _, _ := setupService(t)
	guest := testutil.CreateUser(t, db, "guest", "guest@example.com", model.RoleExternalMember)

	resp, err := svc.UpdateProfile(context.Background(), guest.ID, &user.UpdateProfileRequest{
		Name:        "게스트",
		Affiliation: "국립현대미술관",
	})
	require.NoError(t, err)

	assert.Equal(t, "국립현대미술관", resp.Affiliation)
	assert.Empty(t, resp.Department)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, _, _, _ := setupService(t)

	_, err := svc.GetProfile(context.Background(), 999)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAdminUpdate(t *testing.T) {
	svc, db, _, _ := setupService(t)
	admin := testutil.CreateUser(t, db, "admin", "admin@skku.edu", model.RoleAdmin)
	member := testutil.CreateUser(t, db, "member", "member@skku.edu", model.RoleSkkuMember)

	resp, err := svc.AdminUpdate(context.Background(), admin.ID, member.ID, &user.AdminUpdateRequest{
		Name:   "차단 회원",
		Role:   model.RoleSkkuMember,
		Status: model.UserStatusBlocked,
	})
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusBlocked, resp.Status)
	assert.Equal(t, "차단 회원", resp.Name)
}

func TestAdminUpdate_CannotDemoteSelf(t *testing.T) {
	svc, db, _, _ := setupService(t)
	admin := testutil.CreateUser(t, db, "admin", "admin@skku.edu", model.RoleAdmin)

	_, err := svc.AdminUpdate(context.Background(), admin.ID, admin.ID, &user.AdminUpdateRequest{
		Name:   "admin",
		Role:   model.RoleSkkuMember,
		Status: model.UserStatusActive,
	})
	assert.ErrorIs(t, err, user.ErrCannotDemoteSelf)

	// renaming yourself is fine
	resp, err := svc.AdminUpdate(context.Background(), admin.ID, admin.ID, &user.AdminUpdateRequest{
		Name:   "관리자",
		Role:   model.RoleAdmin,
		Status: model.UserStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "관리자", resp.Name)
}

func TestAdminDelete_CannotDeleteSelf(t *testing.T) {
	svc, db, _, _ := setupService(t)
	admin := testutil.CreateUser(t, db, "admin", "admin@skku.edu", model.RoleAdmin)

	err := svc.AdminDelete(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, user.ErrCannotDeleteSelf)
}

func TestDeleteAccount_KeepsArtworksDropsComments(t *testing.T) {
	svc, db, _, publisher := setupService(t)
	member := testutil.CreateUser(t, db, "member", "member@skku.edu", model.RoleSkkuMember)
	other := testutil.CreateUser(t, db, "other", "other@skku.edu", model.RoleSkkuMember)

	artwork := testutil.CreateArtwork(t, db, "봄", member.ID, nil)
	require.NoError(t, db.Create(&model.Comment{Content: "좋아요", ArtworkID: artwork.ID, AuthorID: member.ID}).Error)
	require.NoError(t, db.Create(&model.Comment{Content: "멋져요", ArtworkID: artwork.ID, AuthorID: other.ID}).Error)

	require.NoError(t, svc.DeleteAccount(context.Background(), member.ID))

	var kept model.Artwork
	require.NoError(t, db.First(&kept, artwork.ID).Error)
	assert.Nil(t, kept.UserID)

	var comments []model.Comment
	require.NoError(t, db.Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, other.ID, comments[0].AuthorID)

	var profiles int64
	require.NoError(t, db.Model(&model.SkkuProfile{}).Where("user_id = ?", member.ID).Count(&profiles).Error)
	assert.Zero(t, profiles)

	assert.Equal(t, []event.Type{event.UserDeleted}, publisher.Types())

	err := svc.DeleteAccount(context.Background(), member.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestResetPassword_MailsTemporaryPassword(t *testing.T) {
	svc, db, mailer, _ := setupService(t)
	member := testutil.CreateUser(t, db, "member", "member@skku.edu", model.RoleSkkuMember)

	require.NoError(t, svc.ResetPassword(context.Background(), member.ID))

	msg, ok := mailer.Last()
	require.True(t, ok)
	assert.Equal(t, "member@skku.edu", msg.To)

	match := regexp.MustCompile(`<b[^>]*>([A-Za-z0-9]+)</b>`).FindStringSubmatch(msg.HTMLBody)
	require.Len(t, match, 2)

	var stored model.User
	require.NoError(t, db.First(&stored, member.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(match[1])))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(testutil.DefaultPassword)))
}

func TestResetPassword_MailFailure(t *testing.T) {
	svc, db, mailer, _ := setupService(t)
	member := testutil.CreateUser(t, db, "member", "member@skku.edu", model.RoleSkkuMember)
	mailer.Err = assert.AnError

	err := svc.ResetPassword(context.Background(), member.ID)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestList_FiltersAndPaginates(t *testing.T) {
	svc, db, _, _ := setupService(t)
	testutil.CreateUser(t, db, "admin", "admin@skku.edu", model.RoleAdmin)
	for _, name := range []string{"kim01", "kim02", "kim03"} {
		testutil.CreateUser(t, db, name, name+"@skku.edu", model.RoleSkkuMember)
	}
	testutil.CreateUser(t, db, "guest", "guest@example.com", model.RoleExternalMember)

	resp, err := svc.List(context.Background(), user.ListQuery{Role: string(model.RoleSkkuMember)}, pagination.Query{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(3), resp.Pagination.TotalItems)
	assert.Equal(t, 2, resp.Pagination.TotalPages)

	resp, err = svc.List(context.Background(), user.ListQuery{Keyword: "guest"}, pagination.Query{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "외부 회원", resp.Items[0].RoleLabel())

	// out-of-range pages are clamped to the last page
	resp, err = svc.List(context.Background(), user.ListQuery{}, pagination.Query{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Pagination.Page)
	assert.Len(t, resp.Items, 1)
}

func TestPurgeUnverified(t *testing.T) {
	svc, db, _, _ := setupService(t)
	stale := testutil.CreateUser(t, db, "stale", "stale@skku.edu", model.RoleSkkuMember)
	fresh := testutil.CreateUser(t, db, "fresh", "fresh@skku.edu", model.RoleSkkuMember)
	active := testutil.CreateUser(t, db, "active", "active@skku.edu", model.RoleSkkuMember)

	old := time.Now().UTC().AddDate(0, 0, -10)
	require.NoError(t, db.Model(stale).Updates(map[string]any{"status": model.UserStatusUnverified, "created_at": old}).Error)
	require.NoError(t, db.Model(fresh).Update("status", model.UserStatusUnverified).Error)
	require.NoError(t, db.Model(active).Update("created_at", old).Error)

	purged, err := svc.PurgeUnverified(context.Background(), time.Now().UTC().AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var remaining []string
	require.NoError(t, db.Model(&model.User{}).Order("username").Pluck("username", &remaining).Error)
	assert.Equal(t, []string{"active", "fresh"}, remaining)
}

func TestGenerateTemporaryPassword(t *testing.T) {
	letter := regexp.MustCompile(`[A-Za-z]`)
	digit := regexp.MustCompile(`[0-9]`)

	seen := map[string]bool{}
	for range 50 {
		password, err := user.GenerateTemporaryPassword()
		require.NoError(t, err)
		assert.Len(t, password, 12)
		assert.Regexp(t, letter, password)
		assert.Regexp(t, digit, password)
		seen[password] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestNewUserResponse_KeepsIdentity(t *testing.T) {
	u := model.NewUser("member", "member@skku.edu", "hash", "회원", model.RoleSkkuMember, model.UserStatusBlocked)
	u.ID = 42
	u.SkkuProfile = &model.SkkuProfile{Department: "미술학과", StudentYear: 2021, IsClubMember: true}

	resp := user.NewUserResponse(u)

	assert.Equal(t, uint32(42), resp.ID)
	assert.Equal(t, "member@skku.edu", resp.Email)
	assert.Equal(t, "미술학과", resp.Department)
	assert.True(t, resp.IsSkkuMember())
	assert.False(t, resp.IsExternalMember())
	assert.Equal(t, "member@skku.edu", u.Email, "the model is left untouched")
	assert.Equal(t, user.StatusLabel(model.UserStatusBlocked), resp.StatusLabel())
}
