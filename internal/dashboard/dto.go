package dashboard

import (
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
)

type Stats struct {
	Users              int64 `json:"users"`
	UnverifiedUsers    int64 `json:"unverifiedUsers"`
	Artworks           int64 `json:"artworks"`
	FeaturedArtworks   int64 `json:"featuredArtworks"`
	Exhibitions        int64 `json:"exhibitions"`
	OngoingExhibitions int64 `json:"ongoingExhibitions"`
	Notices            int64 `json:"notices"`
}

type RecentItem struct {
	ID        uint32    `json:"id"`
	Label     string    `json:"label"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

type DashboardResponse struct {
	Stats          Stats        `json:"stats"`
	RecentUsers    []RecentItem `json:"recentUsers"`
	RecentArtworks []RecentItem `json:"recentArtworks"`
}

func userItems(users []model.User) []RecentItem {
	items := make([]RecentItem, 0, len(users))
	for _, u := range users {
		items = append(items, RecentItem{ID: u.ID, Label: u.Name, Detail: u.Email, CreatedAt: u.CreatedAt})
	}
	return items
}

func artworkItems(artworks []model.Artwork) []RecentItem {
	items := make([]RecentItem, 0, len(artworks))
	for _, a := range artworks {
		items = append(items, RecentItem{ID: a.ID, Label: a.Title, Detail: a.Artist, CreatedAt: a.CreatedAt})
	}
	return items
}
