package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityRecord is the single canonical record for one (user, calendar day).
// The unique (user_id, day) index is what keeps concurrent first-access
// creation from producing two records for the same day.
type ActivityRecord struct {
	gorm.Model
	UserID         uint            `gorm:"uniqueIndex:idx_user_day;not null" json:"user_id"`
	Day            string          `gorm:"uniqueIndex:idx_user_day;not null" json:"day"` // civil date, YYYY-MM-DD
	Date           time.Time       `gorm:"index;not null" json:"date"`
	CaloriesBurned int             `json:"caloriesBurned"`
	Checklist      []ChecklistTask `gorm:"constraint:OnDelete:CASCADE" json:"checklist"`
}

type ChecklistTask struct {
	gorm.Model
	ActivityRecordID uint   `gorm:"uniqueIndex:idx_record_task;not null" json:"-"`
	Task             string `gorm:"uniqueIndex:idx_record_task;not null" json:"task"`
	Completed        bool   `json:"completed"`
	Priority         int    `gorm:"default:1" json:"priority"`
}
