package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Categories   []Category    `gorm:"constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	DefaultTasks []DefaultTask `gorm:"constraint:OnDelete:CASCADE" json:"default_tasks,omitempty"`
}

// DefaultTask is one entry of the user's standing checklist. A fresh day's
// ActivityRecord is seeded from these, all incomplete.
type DefaultTask struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"-"`
	Task     string `gorm:"not null" json:"task"`
	Priority int    `gorm:"default:1" json:"priority"`
}
