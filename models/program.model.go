package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgramCategory distinguishes degree programmes from skills training
type ProgramCategory string

const (
	ProgramCategoryGeneral ProgramCategory = "GENERAL"
	ProgramCategorySkill   ProgramCategory = "SKILL"
)

// Program is an academic or skills-training programme offered by the center
type Program struct {
	gorm.Model
	Name              string          `gorm:"uniqueIndex;not null" json:"name"`
	Category          ProgramCategory `gorm:"type:varchar(20);default:'GENERAL'" json:"category"`
	Description       string          `gorm:"type:text" json:"description"`
	DurationMonths    int             `gorm:"default:12" json:"durationMonths"`
	EntryRequirements datatypes.JSON  `json:"entryRequirements"` // list of strings, validated at the boundary
	Banner            string          `gorm:"default:''" json:"banner"`
	IsActive          bool            `gorm:"default:true" json:"isActive"`
	IsDeleted         bool            `gorm:"default:false" json:"isDeleted"`
}

func (Program) TableName() string {
	return "programs"
}
