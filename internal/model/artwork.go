package model

// Artwork is a single piece shown in the gallery
type Artwork struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Title        string  `gorm:"column:title;type:VARCHAR(200);not null;index"`
	Description  string  `gorm:"column:description;type:TEXT"`
	Artist       string  `gorm:"column:artist;type:VARCHAR(100)"`
	ImageURL     string  `gorm:"column:image_url;type:VARCHAR(500)"`
	ImageKey     string  `gorm:"column:image_key;type:VARCHAR(300)"`
	Department   string  `gorm:"column:department;type:VARCHAR(100);index"`
	Year         int     `gorm:"column:year"`
	IsFeatured   bool    `gorm:"column:is_featured;not null;default:false;index"`
	ExhibitionID *uint32 `gorm:"column:exhibition_id;index"`
	UserID       *uint32 `gorm:"column:user_id;index"`

	Exhibition *Exhibition `gorm:"foreignKey:ExhibitionID"`
	User       *User       `gorm:"foreignKey:UserID"`

	BaseEntity
}

func (*Artwork) TableName() string {
	return "artwork"
}
