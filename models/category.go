package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	UserID uint            `gorm:"uniqueIndex:idx_user_category;not null" json:"-"`
	Name   string          `gorm:"uniqueIndex:idx_user_category;not null" json:"name"`
	Budget decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"budget"`
}
