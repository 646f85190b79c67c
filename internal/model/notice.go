package model

type Notice struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Title       string  `gorm:"column:title;type:VARCHAR(200);not null"`
	Content     string  `gorm:"column:content;type:TEXT;not null"`
	IsImportant bool    `gorm:"column:is_important;not null;default:false;index"`
	Views       int     `gorm:"column:views;not null;default:0"`
	AuthorID    *uint32 `gorm:"column:author_id;index"`

	Author *User `gorm:"foreignKey:AuthorID"`

	BaseEntity
}

func (*Notice) TableName() string {
	return "notice"
}
