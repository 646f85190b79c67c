package exhibition

import (
	"strings"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

const (
	DateLayout    = "2006-01-02"
	displayLayout = "2006.01.02"
	posterWidth   = 800
)

var typeLabels = map[model.ExhibitionType]string{
	model.ExhibitionTypeRegular: "정기 전시",
	model.ExhibitionTypeSpecial: "특별 전시",
}

var statusLabels = map[model.ExhibitionStatus]string{
	model.ExhibitionStatusUpcoming: "예정",
	model.ExhibitionStatusOngoing:  "진행 중",
	model.ExhibitionStatusEnded:    "종료",
}

type ArtworkSummary struct {
	ID       uint32 `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	ImageURL string `json:"imageUrl"`
}

func (a ArtworkSummary) ThumbnailURL() string {
	return imagestore.OptimizeURL(a.ImageURL, 480)
}

type ExhibitionResponse struct {
	ID             uint32                 `json:"id"`
	Title          string                 `json:"title"`
	Subtitle       string                 `json:"subtitle"`
	Description    string                 `json:"description"`
	StartDate      time.Time              `json:"startDate"`
	EndDate        time.Time              `json:"endDate"`
	ExhibitionType model.ExhibitionType   `json:"exhibitionType"`
	Status         model.ExhibitionStatus `json:"status"`
	ImageURL       string                 `json:"imageUrl"`
	Location       string                 `json:"location"`
	Artists        []string               `json:"artists"`
	IsFeatured     bool                   `json:"isFeatured"`
	Artworks       []ArtworkSummary       `json:"artworks,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// NewExhibitionResponse copies the exhibition and derives its status at now
func NewExhibitionResponse(e *model.Exhibition, now time.Time) ExhibitionResponse {
	resp := ExhibitionResponse{
		ID:             e.ID,
		Title:          e.Title,
		Subtitle:       e.Subtitle,
		Description:    e.Description,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		ExhibitionType: e.ExhibitionType,
		Status:         e.StatusAt(now),
		ImageURL:       e.ImageURL,
		Location:       e.Location,
		Artists:        append([]string{}, e.Artists...),
		IsFeatured:     e.IsFeatured,
		CreatedAt:      e.CreatedAt,
	}
	for _, a := range e.Artworks {
		resp.Artworks = append(resp.Artworks, ArtworkSummary{
			ID:       a.ID,
			Title:    a.Title,
			Artist:   a.Artist,
			ImageURL: a.ImageURL,
		})
	}
	return resp
}

func (e ExhibitionResponse) TypeLabel() string {
	if l, ok := typeLabels[e.ExhibitionType]; ok {
		return l
	}
	return string(e.ExhibitionType)
}

func (e ExhibitionResponse) StatusLabel() string {
	return statusLabels[e.Status]
}

// Period renders "2024.03.01 ~ 2024.03.31"
func (e ExhibitionResponse) Period() string {
	return e.StartDate.Format(displayLayout) + " ~ " + e.EndDate.Format(displayLayout)
}

func (e ExhibitionResponse) PosterURL() string {
	return imagestore.OptimizeURL(e.ImageURL, posterWidth)
}

// StartDateValue and EndDateValue fill <input type="date">
func (e ExhibitionResponse) StartDateValue() string {
	return e.StartDate.Format(DateLayout)
}

func (e ExhibitionResponse) EndDateValue() string {
	return e.EndDate.Format(DateLayout)
}

func (e ExhibitionResponse) ArtistsText() string {
	return strings.Join(e.Artists, ", ")
}

type ExhibitionListResponse struct {
	Items      []ExhibitionResponse  `json:"items"`
	Pagination pagination.Pagination `json:"pagination"`
}

type ExhibitionRequest struct {
	Title          string   `json:"title" form:"title" binding:"required,notblank,max=200"`
	Subtitle       string   `json:"subtitle" form:"subtitle" binding:"max=200"`
	Description    string   `json:"description" form:"description" binding:"max=10000"`
	StartDate      string   `json:"startDate" form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate        string   `json:"endDate" form:"endDate" binding:"required,datetime=2006-01-02"`
	ExhibitionType string   `json:"exhibitionType" form:"exhibitionType" binding:"omitempty,oneof=regular special"`
	Location       string   `json:"location" form:"location" binding:"max=200"`
	Artists        []string `json:"artists" form:"artists"`
	IsFeatured     bool     `json:"isFeatured" form:"isFeatured"`
	RemoveImage    bool     `json:"removeImage" form:"removeImage"`
}

// Type defaults to a regular exhibition
func (r *ExhibitionRequest) Type() model.ExhibitionType {
	if r.ExhibitionType == "" {
		return model.ExhibitionTypeRegular
	}
	return model.ExhibitionType(r.ExhibitionType)
}

// ArtistList accepts repeated fields as well as a single comma separated value
func (r *ExhibitionRequest) ArtistList() []string {
	artists := make([]string, 0, len(r.Artists))
	for _, entry := range r.Artists {
		for _, name := range strings.Split(entry, ",") {
			if name = strings.TrimSpace(name); name != "" {
				artists = append(artists, name)
			}
		}
	}
	return artists
}

// Period parses both dates as UTC calendar days and checks start <= end
func (r *ExhibitionRequest) Period() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, r.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	end, err := time.ParseInLocation(DateLayout, r.EndDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return start, end, nil
}

type ListQuery struct {
	Type    string `form:"type" binding:"omitempty,oneof=regular special"`
	Status  string `form:"status" binding:"omitempty,oneof=upcoming ongoing ended"`
	Keyword string `form:"keyword" binding:"max=100"`
}

func (q ListQuery) Filter(now time.Time) ListFilter {
	return ListFilter{
		Type:    model.ExhibitionType(q.Type),
		Status:  model.ExhibitionStatus(q.Status),
		Keyword: strings.TrimSpace(q.Keyword),
		Now:     now,
	}
}
