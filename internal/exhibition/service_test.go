package exhibition_test

import (
	"context"
	"testing"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/exhibition"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc       *exhibition.ExhibitionService
	db        *gorm.DB
	storage   *imagestore.LocalStorage
	publisher *event.Recorder
	adminID   uint32
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	storage := testutil.NewTestStorage(t)
	publisher := &event.Recorder{}
	admin := testutil.CreateUser(t, db, "admin", "admin@skku.edu", model.RoleAdmin)

	return &fixture{
		svc:       exhibition.NewExhibitionService(db, testutil.NewTestConfig(), exhibition.NewExhibitionRepository(), storage, publisher),
		db:        db,
		storage:   storage,
		publisher: publisher,
		adminID:   admin.ID,
	}
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func TestCreate_WithPosterAndArtists(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.Create(context.Background(), f.adminID, &exhibition.ExhibitionRequest{
		Title:     " 2024 봄 정기전 ",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		Location:  "학생회관 전시실",
		Artists:   []string{"홍길동, 김철수", " 이영희 ", ""},
	}, testutil.ImageFile(t, "poster.png"))
	require.NoError(t, err)

	assert.Equal(t, "2024 봄 정기전", resp.Title)
	assert.Equal(t, model.ExhibitionTypeRegular, resp.ExhibitionType)
	assert.Equal(t, []string{"홍길동", "김철수", "이영희"}, resp.Artists)
	assert.Equal(t, "2024.03.01 ~ 2024.03.31", resp.Period())
	assert.Equal(t, model.ExhibitionStatusEnded, resp.Status)
	assert.Regexp(t, `^/uploads/exhibitions/.+\.png$`, resp.ImageURL)
	assert.Equal(t, 1, testutil.StoredFiles(t, f.storage))
	assert.Equal(t, []event.Type{event.ExhibitionCreated}, f.publisher.Types())
}

func TestCreate_InvalidDates(t *testing.T) {
	f := setup(t)

	testCases := []struct {
		name  string
		start string
		end   string
		want  error
	}{
		{name: "end before start", start: "2024-03-10", end: "2024-03-09", want: exhibition.ErrInvalidPeriod},
		{name: "malformed start", start: "2024/03/10", end: "2024-03-11", want: exhibition.ErrInvalidDate},
		{name: "impossible end", start: "2024-02-01", end: "2024-02-30", want: exhibition.ErrInvalidDate},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), f.adminID, &exhibition.ExhibitionRequest{
				Title:     "전시",
				StartDate: tc.start,
				EndDate:   tc.end,
			}, testutil.ImageFile(t, "poster.png"))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Zero(t, testutil.StoredFiles(t, f.storage))
	assert.Empty(t, f.publisher.Types())
}

func TestCreate_SingleDayExhibition(t *testing.T) {
	f := setup(t)
	day := today().Format(exhibition.DateLayout)

	resp, err := f.svc.Create(context.Background(), f.adminID, &exhibition.ExhibitionRequest{
		Title:          "하루 특별전",
		StartDate:      day,
		EndDate:        day,
		ExhibitionType: string(model.ExhibitionTypeSpecial),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.ExhibitionStatusOngoing, resp.Status)
	assert.Equal(t, "특별 전시", resp.TypeLabel())
	assert.Equal(t, day, resp.StartDateValue())
	assert.Equal(t, day, resp.EndDateValue())
}

func TestUpdate_ReplaceAndRemovePoster(t *testing.T) {
	f := setup(t)
	request := &exhibition.ExhibitionRequest{Title: "전시", StartDate: "2024-05-01", EndDate: "2024-05-10"}

	created, err := f.svc.Create(context.Background(), f.adminID, request, testutil.ImageFile(t, "first.png"))
	require.NoError(t, err)

	request.Title = "수정된 전시"
	request.Artists = []string{"박작가"}
	replaced, err := f.svc.Update(context.Background(), created.ID, request, testutil.ImageFile(t, "second.png"))
	require.NoError(t, err)
	assert.Equal(t, "수정된 전시", replaced.Title)
	assert.Equal(t, []string{"박작가"}, replaced.Artists)
	assert.NotEqual(t, created.ImageURL, replaced.ImageURL)
	assert.Equal(t, 1, testutil.StoredFiles(t, f.storage))

	request.RemoveImage = true
	removed, err := f.svc.Update(context.Background(), created.ID, request, nil)
	require.NoError(t, err)
	assert.Empty(t, removed.ImageURL)
	assert.Zero(t, testutil.StoredFiles(t, f.storage))

	_, err = f.svc.Update(context.Background(), 999, request, nil)
	assert.ErrorIs(t, err, exhibition.ErrExhibitionNotFound)
}

func TestDelete_DetachesArtworks(t *testing.T) {
	f := setup(t)
	target := testutil.CreateExhibition(t, f.db, "삭제할 전시", today(), 7)
	other := testutil.CreateExhibition(t, f.db, "남을 전시", today(), 7)
	detached := testutil.CreateArtwork(t, f.db, "분리될 작품", f.adminID, &target.ID)
	untouched := testutil.CreateArtwork(t, f.db, "그대로인 작품", f.adminID, &other.ID)

	require.NoError(t, f.svc.Delete(context.Background(), f.adminID, target.ID))

	_, err := f.svc.Get(context.Background(), target.ID)
	assert.ErrorIs(t, err, exhibition.ErrExhibitionNotFound)

	var reloaded model.Artwork
	require.NoError(t, f.db.First(&reloaded, detached.ID).Error)
	assert.Nil(t, reloaded.ExhibitionID, "artworks survive without an exhibition")

	require.NoError(t, f.db.First(&reloaded, untouched.ID).Error)
	require.NotNil(t, reloaded.ExhibitionID)
	assert.Equal(t, other.ID, *reloaded.ExhibitionID)

	assert.Equal(t, []event.Type{event.ExhibitionDeleted}, f.publisher.Types())

	err = f.svc.Delete(context.Background(), f.adminID, target.ID)
	assert.ErrorIs(t, err, exhibition.ErrExhibitionNotFound)
}

func TestGet_IncludesArtworks(t *testing.T) {
	f := setup(t)
	created := testutil.CreateExhibition(t, f.db, "전시", today(), 3)
	testutil.CreateArtwork(t, f.db, "첫 작품", f.adminID, &created.ID)
	testutil.CreateArtwork(t, f.db, "둘째 작품", f.adminID, &created.ID)

	resp, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Artworks, 2)

	_, err = f.svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, exhibition.ErrExhibitionNotFound)
}

func TestList_StatusFilters(t *testing.T) {
	f := setup(t)
	testutil.CreateExhibition(t, f.db, "예정 전시", today().AddDate(0, 0, 5), 10)
	testutil.CreateExhibition(t, f.db, "진행 전시", today().AddDate(0, 0, -3), 10)
	testutil.CreateExhibition(t, f.db, "오늘 끝나는 전시", today().AddDate(0, 0, -4), 5)
	testutil.CreateExhibition(t, f.db, "지난 전시", today().AddDate(0, 0, -20), 5)

	page := pagination.Query{Page: 1, Limit: 10}

	testCases := []struct {
		status string
		want   []string
	}{
		{status: "", want: []string{"예정 전시", "진행 전시", "오늘 끝나는 전시", "지난 전시"}},
		{status: "upcoming", want: []string{"예정 전시"}},
		{status: "ongoing", want: []string{"진행 전시", "오늘 끝나는 전시"}},
		{status: "ended", want: []string{"지난 전시"}},
	}

	for _, tc := range testCases {
		t.Run("status="+tc.status, func(t *testing.T) {
			resp, err := f.svc.List(context.Background(), exhibition.ListQuery{Status: tc.status}, page)
			require.NoError(t, err)

			titles := make([]string, 0, len(resp.Items))
			for _, item := range resp.Items {
				titles = append(titles, item.Title)
				if tc.status != "" {
					assert.Equal(t, model.ExhibitionStatus(tc.status), item.Status)
				}
			}
			assert.Equal(t, tc.want, titles)
		})
	}

	ongoing, err := f.svc.Ongoing(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, ongoing, 1)
	assert.Equal(t, "진행 전시", ongoing[0].Title)
}

func TestList_TypeAndKeyword(t *testing.T) {
	f := setup(t)
	testutil.CreateExhibition(t, f.db, "정기 회화전", today(), 3)
	special := testutil.CreateExhibition(t, f.db, "특별 사진전", today(), 3)
	require.NoError(t, f.db.Model(special).Update("exhibition_type", model.ExhibitionTypeSpecial).Error)

	page := pagination.Query{Page: 1, Limit: 10}

	resp, err := f.svc.List(context.Background(), exhibition.ListQuery{Type: "special"}, page)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "특별 사진전", resp.Items[0].Title)

	resp, err = f.svc.List(context.Background(), exhibition.ListQuery{Keyword: " 회화 "}, page)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "정기 회화전", resp.Items[0].Title)
}

func TestExhibitionStatusAt_EndDateInclusive(t *testing.T) {
	e := &model.Exhibition{
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, model.ExhibitionStatusUpcoming, e.StatusAt(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, model.ExhibitionStatusOngoing, e.StatusAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, model.ExhibitionStatusOngoing, e.StatusAt(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, model.ExhibitionStatusEnded, e.StatusAt(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestExhibitionRequest_Defaults(t *testing.T) {
	req := exhibition.ExhibitionRequest{}
	assert.Equal(t, model.ExhibitionTypeRegular, req.Type())
	assert.Empty(t, req.ArtistList())

	resp := exhibition.ExhibitionResponse{Artists: []string{"가", "나"}, Status: model.ExhibitionStatusUpcoming}
	assert.Equal(t, "가, 나", resp.ArtistsText())
	assert.Equal(t, "예정", resp.StatusLabel())
}

func TestCreateAndUpdate_BlankTitle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// Given: a title made only of whitespace
	req := &exhibition.ExhibitionRequest{Title: "   ", StartDate: "2024-03-01", EndDate: "2024-03-31"}

	// When: it is created
	_, err := f.svc.Create(ctx, f.adminID, req, testutil.ImageFile(t, "poster.png"))

	// Then: nothing is stored or uploaded
	assert.ErrorIs(t, err, exhibition.ErrTitleRequired)
	assert.Zero(t, testutil.StoredFiles(t, f.storage))
	assert.Empty(t, f.publisher.Types())
	var count int64
	require.NoError(t, f.db.Model(&model.Exhibition{}).Count(&count).Error)
	assert.Zero(t, count)

	existing := testutil.CreateExhibition(t, f.db, "봄 정기전", today(), 5)
	_, err = f.svc.Update(ctx, existing.ID, &exhibition.ExhibitionRequest{Title: "\t\n", StartDate: "2024-03-01", EndDate: "2024-03-31"}, nil)
	assert.ErrorIs(t, err, exhibition.ErrTitleRequired)

	var stored model.Exhibition
	require.NoError(t, f.db.First(&stored, existing.ID).Error)
	assert.Equal(t, "봄 정기전", stored.Title)
}
