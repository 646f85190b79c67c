package model

import (
	"time"

	"gorm.io/datatypes"
)

type ExhibitionType string

const (
	ExhibitionTypeRegular ExhibitionType = "regular"
	ExhibitionTypeSpecial ExhibitionType = "special"
)

func (t ExhibitionType) IsValid() bool {
	return t == ExhibitionTypeRegular || t == ExhibitionTypeSpecial
}

// ExhibitionStatus is derived from the exhibition period, never stored
type ExhibitionStatus string

const (
	ExhibitionStatusUpcoming ExhibitionStatus = "upcoming"
	ExhibitionStatusOngoing  ExhibitionStatus = "ongoing"
	ExhibitionStatusEnded    ExhibitionStatus = "ended"
)

type Exhibition struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Title          string                      `gorm:"column:title;type:VARCHAR(200);not null;index"`
	Subtitle       string                      `gorm:"column:subtitle;type:VARCHAR(200)"`
	Description    string                      `gorm:"column:description;type:TEXT"`
	StartDate      time.Time                   `gorm:"column:start_date;not null;index"`
	EndDate        time.Time                   `gorm:"column:end_date;not null;index"`
	ExhibitionType ExhibitionType              `gorm:"column:exhibition_type;type:VARCHAR(20);not null;default:'regular'"`
	ImageURL       string                      `gorm:"column:image_url;type:VARCHAR(500)"`
	ImageKey       string                      `gorm:"column:image_key;type:VARCHAR(300)"`
	Location       string                      `gorm:"column:location;type:VARCHAR(200)"`
	Artists        datatypes.JSONSlice[string] `gorm:"column:artists"`
	IsFeatured     bool                        `gorm:"column:is_featured;not null;default:false"`

	Artworks []Artwork `gorm:"foreignKey:ExhibitionID"`

	BaseEntity
}

func (*Exhibition) TableName() string {
	return "exhibition"
}

// StatusAt reports the exhibition status at the given moment; the end date is inclusive
func (e *Exhibition) StatusAt(now time.Time) ExhibitionStatus {
	switch {
	case now.Before(e.StartDate):
		return ExhibitionStatusUpcoming
	case now.After(e.EndDate.Add(24*time.Hour - time.Nanosecond)):
		return ExhibitionStatusEnded
	default:
		return ExhibitionStatusOngoing
	}
}
