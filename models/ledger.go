package models

import (
	"gorm.io/gorm"
)

// SharedLedger pools expense records across users. Anyone holding the join
// token can become a collaborator, so tokens are crypto-random and unique.
// Revoking a ledger is a soft delete: Active flips to false and existing
// expense rows keep their ledger id.
type SharedLedger struct {
	gorm.Model
	Name      string         `gorm:"not null" json:"name"`
	OwnerID   uint           `gorm:"index;not null" json:"owner_id"`
	JoinToken string         `gorm:"uniqueIndex;not null" json:"-"`
	Active    bool           `gorm:"default:true" json:"active"`
	Members   []LedgerMember `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// LedgerMember records one collaborator. The owner is implicitly a member
// and never gets a row here; the unique pair index makes a concurrent
// double-join collapse to a single membership.
type LedgerMember struct {
	gorm.Model
	SharedLedgerID uint `gorm:"uniqueIndex:idx_ledger_member;not null" json:"-"`
	UserID         uint `gorm:"uniqueIndex:idx_ledger_member;not null" json:"user_id"`
}
