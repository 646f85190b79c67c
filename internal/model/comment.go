package model

type Comment struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Content   string `gorm:"column:content;type:VARCHAR(1000);not null"`
	ArtworkID uint32 `gorm:"column:artwork_id;not null;index"`
	AuthorID  uint32 `gorm:"column:author_id;not null;index"`

	Author *User `gorm:"foreignKey:AuthorID"`

	BaseEntity
}

func (*Comment) TableName() string {
	return "comment"
}
