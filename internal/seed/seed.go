package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	dateLayout    = "2006-01-02"
	adminUsername = "admin"
	adminName     = "관리자"
)

//go:embed demo.yaml
var demoData []byte

type Data struct {
	Exhibitions []Exhibition `yaml:"exhibitions"`
	Artworks    []Artwork    `yaml:"artworks"`
	Notices     []Notice     `yaml:"notices"`
}

type Exhibition struct {
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Description string   `yaml:"description"`
	StartDate   string   `yaml:"start_date"`
	EndDate     string   `yaml:"end_date"`
	Type        string   `yaml:"type"`
	Location    string   `yaml:"location"`
	Artists     []string `yaml:"artists"`
	Featured    bool     `yaml:"featured"`
}

type Artwork struct {
	Title       string `yaml:"title"`
	Artist      string `yaml:"artist"`
	Department  string `yaml:"department"`
	Year        int    `yaml:"year"`
	Description string `yaml:"description"`
	Exhibition  string `yaml:"exhibition"` // exhibition title
	Featured    bool   `yaml:"featured"`
}

type Notice struct {
	Title     string `yaml:"title"`
	Content   string `yaml:"content"`
	Important bool   `yaml:"important"`
}

type Result struct {
	Admin       bool
	Exhibitions int
	Artworks    int
	Notices     int
}

// Parse decodes seed YAML; unknown keys are rejected
func Parse(raw []byte) (*Data, error) {
	var data Data
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &data, nil
}

// ReadFile returns the seed file at path, or the embedded demo data when path is empty
func ReadFile(path string) (*Data, error) {
	if path == "" {
		return Parse(demoData)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Run creates the configured admin account and loads the demo content.
// Content is inserted only into empty tables, so restarting with seeding enabled is harmless.
func Run(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Result, error) {
	data, err := ReadFile(cfg.Seed.File)
	if err != nil {
		return nil, err
	}
	return Load(ctx, db, cfg.Seed, data)
}

func Load(ctx context.Context, db *gorm.DB, cfg config.SeedConfig, data *Data) (*Result, error) {
	result := &Result{}

	err := database.WithTransaction(ctx, db, func(tx *gorm.DB) error {
		admin, created, err := ensureAdmin(tx, cfg)
		if err != nil {
			return err
		}
		result.Admin = created

		if empty, err := isEmpty(tx, &model.Exhibition{}); err != nil {
			return err
		} else if empty {
			if result.Exhibitions, err = createExhibitions(tx, data.Exhibitions); err != nil {
				return err
			}
		}

		if empty, err := isEmpty(tx, &model.Artwork{}); err != nil {
			return err
		} else if empty {
			if result.Artworks, err = createArtworks(tx, data.Artworks, admin); err != nil {
				return err
			}
		}

		if empty, err := isEmpty(tx, &model.Notice{}); err != nil {
			return err
		} else if empty {
			if result.Notices, err = createNotices(tx, data.Notices, admin); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("시드 데이터 적재 완료",
		"admin_created", result.Admin,
		"exhibitions", result.Exhibitions,
		"artworks", result.Artworks,
		"notices", result.Notices,
	)
	return result, nil
}

// ensureAdmin returns the seed admin id, creating the account when a password is configured
func ensureAdmin(tx *gorm.DB, cfg config.SeedConfig) (*uint32, bool, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" {
		return nil, false, nil
	}

	var existing model.User
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find seed admin: %w", err)
	}
	if cfg.AdminPassword == "" {
		slog.Warn("SEED_ADMIN_PASSWORD가 없어 관리자 계정을 만들지 않습니다", "email", email)
		return nil, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash seed admin password: %w", err)
	}

	admin := model.NewUser(adminUsername, email, string(hash), adminName, model.RoleAdmin, model.UserStatusActive)
	if err := tx.Create(admin).Error; err != nil {
		return nil, false, fmt.Errorf("create seed admin: %w", err)
	}
	return &admin.ID, true, nil
}

func isEmpty(tx *gorm.DB, m any) (bool, error) {
	var count int64
	if err := tx.Model(m).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count %T: %w", m, err)
	}
	return count == 0, nil
}

func createExhibitions(tx *gorm.DB, items []Exhibition) (int, error) {
	for _, item := range items {
		start, err := time.ParseInLocation(dateLayout, item.StartDate, time.UTC)
		if err != nil {
			return 0, fmt.Errorf("exhibition %q start_date: %w", item.Title, err)
		}
		end, err := time.ParseInLocation(dateLayout, item.EndDate, time.UTC)
		if err != nil {
			return 0, fmt.Errorf("exhibition %q end_date: %w", item.Title, err)
		}
		if end.Before(start) {
			return 0, fmt.Errorf("exhibition %q ends before it starts", item.Title)
		}

		exhibitionType := model.ExhibitionType(item.Type)
		if !exhibitionType.IsValid() {
			exhibitionType = model.ExhibitionTypeRegular
		}

		exhibition := &model.Exhibition{
			Title:          item.Title,
			Subtitle:       item.Subtitle,
			Description:    item.Description,
			StartDate:      start,
			EndDate:        end,
			ExhibitionType: exhibitionType,
			Location:       item.Location,
			Artists:        datatypes.NewJSONSlice(item.Artists),
			IsFeatured:     item.Featured,
		}
		if err := tx.Create(exhibition).Error; err != nil {
			return 0, fmt.Errorf("create exhibition %q: %w", item.Title, err)
		}
	}
	return len(items), nil
}

func createArtworks(tx *gorm.DB, items []Artwork, owner *uint32) (int, error) {
	for _, item := range items {
		artwork := &model.Artwork{
			Title:       item.Title,
			Description: item.Description,
			Artist:      item.Artist,
			Department:  item.Department,
			Year:        item.Year,
			IsFeatured:  item.Featured,
			UserID:      owner,
		}

		if item.Exhibition != "" {
			var exhibition model.Exhibition
			if err := tx.Where("title = ?", item.Exhibition).First(&exhibition).Error; err != nil {
				return 0, fmt.Errorf("artwork %q exhibition %q: %w", item.Title, item.Exhibition, err)
			}
			artwork.ExhibitionID = &exhibition.ID
		}

		if err := tx.Create(artwork).Error; err != nil {
			return 0, fmt.Errorf("create artwork %q: %w", item.Title, err)
		}
	}
	return len(items), nil
}

func createNotices(tx *gorm.DB, items []Notice, author *uint32) (int, error) {
	for _, item := range items {
		notice := &model.Notice{
			Title:       item.Title,
			Content:     strings.TrimSpace(item.Content),
			IsImportant: item.Important,
			AuthorID:    author,
		}
		if err := tx.Create(notice).Error; err != nil {
			return 0, fmt.Errorf("create notice %q: %w", item.Title, err)
		}
	}
	return len(items), nil
}
