package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rkant062/fitback/models"
	"github.com/rkant062/fitback/utils"

	"gorm.io/gorm"
)

const (
	joinTokenLength = 24
	tokenRetries    = 5
)

// LedgerService owns shared-ledger membership and every authorization
// decision over expense rows.
type LedgerService struct{ db *gorm.DB }

func NewLedgerService(db *gorm.DB) *LedgerService { return &LedgerService{db: db} }

type LedgerView struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	OwnerID uint   `json:"owner_id"`
	Role    string `json:"role"`
	Members int    `json:"members"`
}

// Create opens a new ledger with a fresh join token. A token clash with an
// existing ledger is regenerated, never overwritten.
func (s *LedgerService) Create(ownerID uint, name string) (*models.SharedLedger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: ledger name is required", ErrInvalidInput)
	}

	for attempt := 0; attempt < tokenRetries; attempt++ {
		token, err := utils.GenerateRandomToken(joinTokenLength)
		if err != nil {
			return nil, err
		}
		ledger := models.SharedLedger{Name: name, OwnerID: ownerID, JoinToken: token, Active: true}
		err = s.db.Create(&ledger).Error
		if err == nil {
			return &ledger, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: could not allocate a unique join token", ErrConflict)
}

// Join adds userID as a collaborator of the active ledger holding token.
func (s *LedgerService) Join(token string, userID uint) (*models.SharedLedger, error) {
	var ledger models.SharedLedger
	if err := s.db.Where("join_token = ? AND active = ?", token, true).First(&ledger).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active ledger for that token", ErrNotFound)
		}
		return nil, err
	}
	if ledger.OwnerID == userID {
		return nil, fmt.Errorf("%w: you own this ledger", ErrAlreadyExists)
	}

	member := models.LedgerMember{SharedLedgerID: ledger.ID, UserID: userID}
	if err := s.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: already a member of %q", ErrAlreadyExists, ledger.Name)
		}
		return nil, err
	}
	return s.byID(ledger.ID)
}

func (s *LedgerService) byID(id uint) (*models.SharedLedger, error) {
	var ledger models.SharedLedger
	if err := s.db.Preload("Members").First(&ledger, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ledger %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &ledger, nil
}

// CanAccess reports whether userID may read, write or delete the given
// expense. Personal expenses belong to their owner alone. Ledger expenses
// are open to the ledger owner and collaborators while the ledger is
// active; once deactivated only the ledger owner retains access.
func (s *LedgerService) CanAccess(userID uint, expense *models.Expense) (bool, error) {
	if expense.LedgerID == nil {
		return expense.UserID == userID, nil
	}

	var ledger models.SharedLedger
	if err := s.db.First(&ledger, *expense.LedgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return expense.UserID == userID, nil
		}
		return false, err
	}
	if !ledger.Active {
		return ledger.OwnerID == userID, nil
	}
	if ledger.OwnerID == userID {
		return true, nil
	}
	return s.isMember(ledger.ID, userID)
}

// CanWriteLedger authorizes adding expenses into a ledger.
func (s *LedgerService) CanWriteLedger(userID, ledgerID uint) (bool, error) {
	var ledger models.SharedLedger
	if err := s.db.First(&ledger, ledgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: ledger %d", ErrNotFound, ledgerID)
		}
		return false, err
	}
	if !ledger.Active {
		return ledger.OwnerID == userID, nil
	}
	if ledger.OwnerID == userID {
		return true, nil
	}
	return s.isMember(ledger.ID, userID)
}

func (s *LedgerService) isMember(ledgerID, userID uint) (bool, error) {
	var n int64
	err := s.db.Model(&models.LedgerMember{}).
		Where("shared_ledger_id = ? AND user_id = ?", ledgerID, userID).
		Count(&n).Error
	return n > 0, err
}

// VisibleLedgerIDs lists active ledgers the user belongs to, as owner or
// collaborator. This drives the ledger listing.
func (s *LedgerService) VisibleLedgerIDs(userID uint) ([]uint, error) {
	var ids []uint
	sub := s.db.Model(&models.LedgerMember{}).Select("shared_ledger_id").Where("user_id = ?", userID)
	err := s.db.Model(&models.SharedLedger{}).
		Where("active = ? AND (owner_id = ? OR id IN (?))", true, userID, sub).
		Pluck("id", &ids).Error
	return ids, err
}

// ExpenseLedgerIDs lists every ledger whose expenses the user may read:
// active ledgers they belong to, plus their own deactivated ones. This
// drives the "my expenses" union; deactivation cuts collaborators off but
// the owner keeps the ledger's history.
func (s *LedgerService) ExpenseLedgerIDs(userID uint) ([]uint, error) {
	var ids []uint
	sub := s.db.Model(&models.LedgerMember{}).Select("shared_ledger_id").Where("user_id = ?", userID)
	err := s.db.Model(&models.SharedLedger{}).
		Where("owner_id = ? OR (active = ? AND id IN (?))", userID, true, sub).
		Pluck("id", &ids).Error
	return ids, err
}

// ListForUser returns the active ledgers the user can see, with their role.
func (s *LedgerService) ListForUser(userID uint) ([]LedgerView, error) {
	ids, err := s.VisibleLedgerIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []LedgerView{}, nil
	}

	var ledgers []models.SharedLedger
	if err := s.db.Preload("Members").Where("id IN ?", ids).Order("id asc").Find(&ledgers).Error; err != nil {
		return nil, err
	}

	out := make([]LedgerView, 0, len(ledgers))
	for _, l := range ledgers {
		role := "collaborator"
		if l.OwnerID == userID {
			role = "owner"
		}
		out = append(out, LedgerView{
			ID:      l.ID,
			Name:    l.Name,
			OwnerID: l.OwnerID,
			Role:    role,
			Members: len(l.Members) + 1, // owner is implicit
		})
	}
	return out, nil
}

// Token hands out the join token. Owner only: whoever holds the token can
// write to the ledger, and only the owner can revoke it.
func (s *LedgerService) Token(ledgerID, userID uint) (string, error) {
	ledger, err := s.byID(ledgerID)
	if err != nil {
		return "", err
	}
	if ledger.OwnerID != userID {
		return "", fmt.Errorf("%w: only the owner may share the join token", ErrForbidden)
	}
	if !ledger.Active {
		// deactivation revokes the token; it is gone, not merely hidden
		return "", fmt.Errorf("%w: ledger is deactivated", ErrNotFound)
	}
	return ledger.JoinToken, nil
}

// Deactivate soft-deletes a ledger. Collaborators lose access from here on;
// expense rows keep their ledger id and stay reachable to the owner.
func (s *LedgerService) Deactivate(ledgerID, userID uint) error {
	ledger, err := s.byID(ledgerID)
	if err != nil {
		return err
	}
	if ledger.OwnerID != userID {
		return fmt.Errorf("%w: only the owner may deactivate a ledger", ErrForbidden)
	}
	return s.db.Model(ledger).Update("active", false).Error
}
