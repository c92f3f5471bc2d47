package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// News is a portal news/announcement post managed by center leaders
type News struct {
	gorm.Model
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Summary     string         `gorm:"type:text" json:"summary"`
	Body        string         `gorm:"type:text" json:"body"`
	CoverImage  string         `gorm:"default:''" json:"coverImage"`
	Tags        datatypes.JSON `json:"tags"` // list of strings, validated at the boundary
	IsPublished bool           `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time     `json:"publishedAt"`
	AuthorID    uint           `gorm:"index" json:"authorId"`
	IsDeleted   bool           `gorm:"default:false" json:"isDeleted"`
}

func (News) TableName() string {
	return "news"
}
