package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense rows are immutable after creation except for the super-category
// stamp and deletion.
type Expense struct {
	gorm.Model
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	LedgerID    *uint           `gorm:"index" json:"ledger_id,omitempty"`

	// Super-category stamp: the label plus the exact day-aligned bounds it
	// was applied over. Cleared only by an explicit remove.
	SuperCategory string     `gorm:"index" json:"super_category,omitempty"`
	SuperStart    *time.Time `json:"super_start,omitempty"`
	SuperEnd      *time.Time `json:"super_end,omitempty"`
}
