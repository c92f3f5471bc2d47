package models

import (
	"gorm.io/gorm"
)

// Admin resource permissions checked by middleware.CheckPermissionMiddleware
const (
	PermissionManageNews       = "MANAGE_NEWS"
	PermissionManagePrograms   = "MANAGE_PROGRAMS"
	PermissionManageTeam       = "MANAGE_TEAM"
	PermissionManageApplicants = "MANAGE_APPLICANTS"
)

type Permission struct {
	gorm.Model
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null"`          // Foreign key
	User       User `gorm:"foreignKey:UserID"` // Association with User
	Role       string
	Permission string `gorm:"type:varchar(255)"` // e.g., "MANAGE_NEWS"
	IsDeleted  bool   `gorm:"default:false"`
}
