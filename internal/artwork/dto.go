package artwork

import (
	"strconv"
	"strings"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

const (
	thumbnailWidth = 480
	detailWidth    = 1200
)

type ArtworkResponse struct {
	ID              uint32    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Artist          string    `json:"artist"`
	ImageURL        string    `json:"imageUrl"`
	Department      string    `json:"department"`
	Year            int       `json:"year,omitempty"`
	IsFeatured      bool      `json:"isFeatured"`
	ExhibitionID    *uint32   `json:"exhibitionId,omitempty"`
	ExhibitionTitle string    `json:"exhibitionTitle,omitempty"`
	UserID          *uint32   `json:"userId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewArtworkResponse(a *model.Artwork) ArtworkResponse {
	resp := ArtworkResponse{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Artist:       a.Artist,
		ImageURL:     a.ImageURL,
		Department:   a.Department,
		Year:         a.Year,
		IsFeatured:   a.IsFeatured,
		ExhibitionID: a.ExhibitionID,
		UserID:       a.UserID,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.Exhibition != nil {
		resp.ExhibitionTitle = a.Exhibition.Title
	}
	return resp
}

func NewArtworkResponses(artworks []model.Artwork) []ArtworkResponse {
	items := make([]ArtworkResponse, 0, len(artworks))
	for i := range artworks {
		items = append(items, NewArtworkResponse(&artworks[i]))
	}
	return items
}

func (a ArtworkResponse) ThumbnailURL() string {
	return imagestore.OptimizeURL(a.ImageURL, thumbnailWidth)
}

func (a ArtworkResponse) DetailImageURL() string {
	return imagestore.OptimizeURL(a.ImageURL, detailWidth)
}

func (a ArtworkResponse) HasImage() bool {
	return a.ImageURL != ""
}

// ExhibitionValue is the selected exhibition id for form select boxes, 0 when none
func (a ArtworkResponse) ExhibitionValue() uint32 {
	if a.ExhibitionID == nil {
		return 0
	}
	return *a.ExhibitionID
}

// DisplayYear is empty for artworks without a production year
func (a ArtworkResponse) DisplayYear() string {
	if a.Year == 0 {
		return ""
	}
	return strconv.Itoa(a.Year)
}

type ArtworkListResponse struct {
	Items      []ArtworkResponse     `json:"items"`
	Pagination pagination.Pagination `json:"pagination"`
}

// ArtworkRequest is shared by create and update; the image arrives as a separate multipart file
type ArtworkRequest struct {
	Title        string  `json:"title" form:"title" binding:"required,notblank,max=200"`
	Description  string  `json:"description" form:"description" binding:"max=5000"`
	Artist       string  `json:"artist" form:"artist" binding:"max=100"`
	Department   string  `json:"department" form:"department" binding:"max=100"`
	Year         int     `json:"year" form:"year" binding:"omitempty,gte=1900,lte=2100"`
	IsFeatured   bool    `json:"isFeatured" form:"isFeatured"`
	ExhibitionID *uint32 `json:"exhibitionId" form:"exhibitionId"`
	RemoveImage  bool    `json:"removeImage" form:"removeImage"`
}

// Exhibition returns the referenced exhibition id, treating 0 as none
func (r *ArtworkRequest) Exhibition() *uint32 {
	if r.ExhibitionID == nil || *r.ExhibitionID == 0 {
		return nil
	}
	id := *r.ExhibitionID
	return &id
}

func (r *ArtworkRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Artist = strings.TrimSpace(r.Artist)
	r.Department = strings.TrimSpace(r.Department)
}

type ListQuery struct {
	Keyword      string `form:"keyword" binding:"max=100"`
	Department   string `form:"department" binding:"max=100"`
	ExhibitionID uint32 `form:"exhibitionId"`
	Featured     string `form:"featured" binding:"omitempty,oneof=true false"`
}

func (q ListQuery) Filter() ListFilter {
	filter := ListFilter{
		Keyword:      strings.TrimSpace(q.Keyword),
		Department:   q.Department,
		ExhibitionID: q.ExhibitionID,
	}
	if q.Featured != "" {
		featured := q.Featured == "true"
		filter.Featured = &featured
	}
	return filter
}

type FeaturedRequest struct {
	IsFeatured bool `json:"isFeatured" form:"isFeatured"`
}
