package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TeamMember is a staff/faculty profile shown on the public team page
type TeamMember struct {
	gorm.Model
	Name          string         `gorm:"not null" json:"name"`
	Title         string         `gorm:"default:''" json:"title"` // e.g. Professor, Research Fellow
	Role          string         `gorm:"default:''" json:"role"`  // e.g. Center Leader, Lab Head
	Bio           string         `gorm:"type:text" json:"bio"`
	Photo         string         `gorm:"default:''" json:"photo"`
	Email         string         `gorm:"default:''" json:"email"`
	ResearchAreas datatypes.JSON `json:"researchAreas"` // list of strings, validated at the boundary
	SortOrder     int            `gorm:"default:0" json:"sortOrder"`
	IsDeleted     bool           `gorm:"default:false" json:"isDeleted"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
