package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"gorm.io/gorm"
)

const recentLimit = 5

type DashboardService struct {
	db                  *gorm.DB
	dashboardRepository *DashboardRepository
}

func NewDashboardService(db *gorm.DB, dashboardRepository *DashboardRepository) *DashboardService {
	return &DashboardService{
		db:                  db,
		dashboardRepository: dashboardRepository,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardResponse, error) {
	now := time.Now().UTC()
	repo := s.dashboardRepository

	var stats Stats
	counts := []struct {
		target *int64
		model  any
		query  string
		args   []any
	}{
		{&stats.Users, &model.User{}, "", nil},
		{&stats.UnverifiedUsers, &model.User{}, "status = ?", []any{model.UserStatusUnverified}},
		{&stats.Artworks, &model.Artwork{}, "", nil},
		{&stats.FeaturedArtworks, &model.Artwork{}, "is_featured = ?", []any{true}},
		{&stats.Exhibitions, &model.Exhibition{}, "", nil},
		{&stats.OngoingExhibitions, &model.Exhibition{}, "start_date <= ? AND end_date >= ?", []any{now, today(now)}},
		{&stats.Notices, &model.Notice{}, "", nil},
	}
	for _, c := range counts {
		n, err := repo.Count(ctx, s.db, c.model, c.query, c.args...)
		if err != nil {
			return nil, fmt.Errorf("dashboard count: %w", err)
		}
		*c.target = n
	}

	users, err := repo.RecentUsers(ctx, s.db, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	artworks, err := repo.RecentArtworks(ctx, s.db, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent artworks: %w", err)
	}

	return &DashboardResponse{
		Stats:          stats,
		RecentUsers:    userItems(users),
		RecentArtworks: artworkItems(artworks),
	}, nil
}
