package router_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/router"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/testutil"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/tokenstore"
	"github.com/skku-gallery/gallery/go-web-server/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	cfg        *config.Config
	db         *gorm.DB
	engine     *gin.Engine
	publisher  *event.Recorder
	admin      *model.User
	member     *model.User
	guest      *model.User
	artwork    *model.Artwork
	exhibition *model.Exhibition
	notice     *model.Notice
}

func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()

	cfg := testutil.NewTestConfig()
	db := testutil.SetupTestDB(t)
	publisher := &event.Recorder{}

	engine := testutil.SetupTestRouter(t)
	router.Setup(engine, router.Dependencies{
		Config:    cfg,
		DB:        &database.DB{DB: db},
		Storage:   testutil.NewTestStorage(t),
		Tokens:    tokenstore.NewDatabaseStore(db),
		Mailer:    testutil.NewMockMailer(),
		Publisher: publisher,
		Static:    web.Static(),
	})

	admin := testutil.CreateUser(t, db, "admin", "admin@skku.edu", model.RoleAdmin)
	member := testutil.CreateUser(t, db, "member", "member@skku.edu", model.RoleSkkuMember)
	guest := testutil.CreateUser(t, db, "guest", "guest@example.com", model.RoleExternalMember)

	exhibition := testutil.CreateExhibition(t, db, "봄 정기전", time.Now().UTC().AddDate(0, 0, -1), 10)
	artwork := testutil.CreateArtwork(t, db, "새벽의 정원", member.ID, &exhibition.ID)
	require.NoError(t, db.Model(artwork).Update("is_featured", true).Error)
	require.NoError(t, db.Create(&model.Comment{Content: "인상적인 작품입니다", ArtworkID: artwork.ID, AuthorID: guest.ID}).Error)

	notice := &model.Notice{Title: "전시 오픈 안내", Content: "첫 문단\n\n둘째 문단", IsImportant: true, AuthorID: &admin.ID}
	require.NoError(t, db.Create(notice).Error)

	return &testEnv{
		cfg:        cfg,
		db:         db,
		engine:     engine,
		publisher:  publisher,
		admin:      admin,
		member:     member,
		guest:      guest,
		artwork:    artwork,
		exhibition: exhibition,
		notice:     notice,
	}
}

func (e *testEnv) page(t *testing.T, url string, user *model.User) (int, string, http.Header) {
	t.Helper()

	req := testutil.TestRequest{Method: http.MethodGet, URL: url, Headers: testutil.AcceptHTML()}
	if user != nil {
		req.Cookies = []*http.Cookie{testutil.SessionCookie(t, e.cfg, user)}
	}
	recorder := testutil.ExecuteRequest(t, e.engine, req)
	return recorder.Code, recorder.Body.String(), recorder.Header()
}

func TestHealth(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, env.engine, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Status     string         `json:"status"`
		Components map[string]any `json:"components"`
	}
	testutil.ParseResponse(t, recorder, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "database", body.Components["tokens"])
	assert.Equal(t, "log", body.Components["events"])
}

func TestPublicPages_Render(t *testing.T) {
	env := setupTestEnvironment(t)

	testCases := []struct {
		url      string
		contains string
	}{
		{url: "/", contains: "새벽의 정원"},
		{url: "/artwork", contains: "새벽의 정원"},
		{url: fmt.Sprintf("/artwork/%d", env.artwork.ID), contains: "인상적인 작품입니다"},
		{url: "/exhibition", contains: "봄 정기전"},
		{url: "/exhibition?status=ongoing", contains: "봄 정기전"},
		{url: fmt.Sprintf("/exhibition/%d", env.exhibition.ID), contains: "새벽의 정원"},
		{url: "/notice", contains: "전시 오픈 안내"},
		{url: fmt.Sprintf("/notice/%d", env.notice.ID), contains: "둘째 문단"},
		{url: "/user/login", contains: "<form"},
		{url: "/user/signup", contains: "<form"},
		{url: "/user/password/forgot", contains: "<form"},
		{url: "/user/password/reset?token=abc", contains: "abc"},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			code, body, header := env.page(t, tc.url, nil)

			assert.Equal(t, http.StatusOK, code)
			assert.Contains(t, header.Get("Content-Type"), "text/html")
			assert.Contains(t, body, tc.contains)
			assert.Contains(t, body, "</html>")
		})
	}
}

func TestPages_ShowSessionUser(t *testing.T) {
	env := setupTestEnvironment(t)

	code, body, _ := env.page(t, "/user/me", env.member)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "member@skku.edu")
	assert.Contains(t, body, "</html>")

	// signed-in users skip the login form
	code, _, header := env.page(t, "/user/login", env.member)
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/", header.Get("Location"))
}

func TestStaticAssets(t *testing.T) {
	env := setupTestEnvironment(t)

	for _, url := range []string{"/css/common.css", "/js/app.js", "/images/logo.svg"} {
		recorder := testutil.ExecuteRequest(t, env.engine, testutil.TestRequest{Method: http.MethodGet, URL: url})
		assert.Equal(t, http.StatusOK, recorder.Code, url)
	}
}

func TestNotFound(t *testing.T) {
	env := setupTestEnvironment(t)

	code, body, _ := env.page(t, "/no/such/page", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "</html>")

	recorder := testutil.ExecuteRequest(t, env.engine, testutil.TestRequest{Method: http.MethodGet, URL: "/no/such/page"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	envelope := testutil.ParseEnvelope(t, recorder, nil)
	assert.False(t, envelope.Success)

	code, _, _ = env.page(t, "/artwork/999", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdmin_AccessControl(t *testing.T) {
	env := setupTestEnvironment(t)

	// anonymous page requests go to the login page and come back afterwards
	code, _, header := env.page(t, "/admin/management/user", nil)
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/user/login?redirect=%2Fadmin%2Fmanagement%2Fuser", header.Get("Location"))

	code, _, _ = env.page(t, "/admin", env.member)
	assert.Equal(t, http.StatusForbidden, code)

	// a forged cookie is ignored and cleared
	recorder := testutil.ExecuteRequest(t, env.engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/admin",
		Cookies: []*http.Cookie{{Name: env.cfg.Session.CookieName, Value: "forged"}},
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Set-Cookie"), env.cfg.Session.CookieName+"=;")
}

func TestAdminPages_Render(t *testing.T) {
	env := setupTestEnvironment(t)

	testCases := []struct {
		url      string
		contains string
	}{
		{url: "/admin", contains: "새벽의 정원"},
		{url: "/admin/management/user", contains: "member@skku.edu"},
		{url: "/admin/management/user?role=SKKU_MEMBER&page=1", contains: "member@skku.edu"},
		{url: fmt.Sprintf("/admin/management/user/%d", env.guest.ID), contains: "guest@example.com"},
		{url: "/admin/management/artwork", contains: "새벽의 정원"},
		{url: "/admin/management/artwork/new", contains: "봄 정기전"},
		{url: fmt.Sprintf("/admin/management/artwork/%d", env.artwork.ID), contains: "새벽의 정원"},
		{url: "/admin/management/exhibition", contains: "봄 정기전"},
		{url: "/admin/management/exhibition/new", contains: "<form"},
		{url: fmt.Sprintf("/admin/management/exhibition/%d", env.exhibition.ID), contains: env.exhibition.StartDate.Format("2006-01-02")},
		{url: "/admin/management/notice", contains: "전시 오픈 안내"},
		{url: "/admin/management/notice/new", contains: "<form"},
		{url: fmt.Sprintf("/admin/management/notice/%d", env.notice.ID), contains: "전시 오픈 안내"},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			code, body, _ := env.page(t, tc.url, env.admin)

			assert.Equal(t, http.StatusOK, code)
			assert.Contains(t, body, tc.contains)
			assert.Contains(t, body, "/css/admin/common.css")
			assert.Contains(t, body, "</html>")
		})
	}
}

func TestAdmin_ManageExhibition(t *testing.T) {
	env := setupTestEnvironment(t)
	cookie := testutil.SessionCookie(t, env.cfg, env.admin)

	// Given: an exhibition posted through the admin form
	recorder := testutil.ExecuteMultipart(t, env.engine, http.MethodPost, "/admin/management/exhibition", map[string]string{
		"title":          "가을 특별전",
		"startDate":      "2024-09-01",
		"endDate":        "2024-09-30",
		"exhibitionType": "special",
		"artists":        "홍길동, 김철수",
	}, "poster.png", cookie)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		ID       uint32   `json:"id"`
		Artists  []string `json:"artists"`
		ImageURL string   `json:"imageUrl"`
		Status   string   `json:"status"`
	}
	testutil.ParseEnvelope(t, recorder, &created)
	assert.Equal(t, []string{"홍길동", "김철수"}, created.Artists)
	assert.True(t, strings.HasPrefix(created.ImageURL, "/uploads/exhibitions/"))
	assert.Equal(t, "ended", created.Status)

	// When: the period is reversed
	recorder = testutil.ExecuteMultipart(t, env.engine, http.MethodPut, fmt.Sprintf("/admin/management/exhibition/%d", created.ID), map[string]string{
		"title":     "가을 특별전",
		"startDate": "2024-09-30",
		"endDate":   "2024-09-01",
	}, "", cookie)

	// Then: the update is rejected
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := testutil.ParseEnvelope(t, recorder, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "EXHIBITION-002", envelope.Error.Code)

	// When: the title is only whitespace
	recorder = testutil.ExecuteMultipart(t, env.engine, http.MethodPut, fmt.Sprintf("/admin/management/exhibition/%d", created.ID), map[string]string{
		"title":     "   ",
		"startDate": "2024-09-01",
		"endDate":   "2024-09-30",
	}, "", cookie)

	// Then: the form is rejected before reaching the service
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope = testutil.ParseEnvelope(t, recorder, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ERROR-001", envelope.Error.Code)
	assert.Equal(t, "제목을(를) 입력해 주세요.", envelope.Error.Message)

	recorder = testutil.ExecuteRequest(t, env.engine, testutil.TestRequest{
		Method:  http.MethodDelete,
		URL:     fmt.Sprintf("/admin/management/exhibition/%d", env.exhibition.ID),
		Cookies: []*http.Cookie{cookie},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var reloaded model.Artwork
	require.NoError(t, env.db.First(&reloaded, env.artwork.ID).Error)
	assert.Nil(t, reloaded.ExhibitionID)
	assert.Equal(t, []event.Type{event.ExhibitionCreated, event.ExhibitionDeleted}, env.publisher.Types())
}

func TestArtwork_MemberUploadAndAdminFeature(t *testing.T) {
	env := setupTestEnvironment(t)

	// external members may browse but not upload
	recorder := testutil.ExecuteMultipart(t, env.engine, http.MethodPost, "/artwork",
		map[string]string{"title": "외부 작품"}, "", testutil.SessionCookie(t, env.cfg, env.guest))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = testutil.ExecuteMultipart(t, env.engine, http.MethodPost, "/artwork", map[string]string{
		"title":        "회원 작품",
		"artist":       "김회원",
		"exhibitionId": fmt.Sprint(env.exhibition.ID),
	}, "work.png", testutil.SessionCookie(t, env.cfg, env.member))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		ID         uint32 `json:"id"`
		IsFeatured bool   `json:"isFeatured"`
	}
	testutil.ParseEnvelope(t, recorder, &created)
	assert.False(t, created.IsFeatured)

	recorder = testutil.ExecuteRequest(t, env.engine, testutil.TestRequest{
		Method:  http.MethodPatch,
		URL:     fmt.Sprintf("/admin/management/artwork/%d/featured", created.ID),
		Body:    map[string]bool{"isFeatured": true},
		Cookies: []*http.Cookie{testutil.SessionCookie(t, env.cfg, env.admin)},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	testutil.ParseEnvelope(t, recorder, &created)
	assert.True(t, created.IsFeatured)

	// the toggle only accepts a JSON body; an empty form post leaves the flag alone
	recorder = testutil.ExecuteRequest(t, env.engine, testutil.TestRequest{
		Method:  http.MethodPatch,
		URL:     fmt.Sprintf("/admin/management/artwork/%d/featured", created.ID),
		Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		Cookies: []*http.Cookie{testutil.SessionCookie(t, env.cfg, env.admin)},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := testutil.ParseEnvelope(t, recorder, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ERROR-002", envelope.Error.Code)

	var stored model.Artwork
	require.NoError(t, env.db.First(&stored, created.ID).Error)
	assert.True(t, stored.IsFeatured)
}
