package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rkant062/fitback/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseService struct {
	db      *gorm.DB
	ledgers *LedgerService
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db, ledgers: NewLedgerService(db)}
}

type ExpenseInput struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
}

// Add stores a batch of expenses, personal or ledger-scoped. Ledger writes
// need membership of an active ledger.
func (s *ExpenseService) Add(userID uint, ledgerID *uint, entries []ExpenseInput) ([]models.Expense, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no expenses given", ErrInvalidInput)
	}
	if ledgerID != nil {
		ok, err := s.ledgers.CanWriteLedger(userID, *ledgerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: not a member of ledger %d", ErrForbidden, *ledgerID)
		}
	}

	now := time.Now()
	rows := make([]models.Expense, 0, len(entries))
	for _, e := range entries {
		if !e.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
		}
		category := strings.TrimSpace(e.Category)
		if category == "" {
			return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
		}
		date := now
		if e.Date != nil {
			date = *e.Date
		}
		rows = append(rows, models.Expense{
			UserID:      userID,
			Amount:      e.Amount,
			Category:    category,
			Description: e.Description,
			Date:        date,
			LedgerID:    ledgerID,
		})
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns the caller's personal expenses plus every expense of the
// ledgers they can still read (active memberships and their own
// deactivated ledgers), oldest first.
func (s *ExpenseService) List(userID uint) ([]models.Expense, error) {
	ids, err := s.ledgers.ExpenseLedgerIDs(userID)
	if err != nil {
		return nil, err
	}

	q := s.db.Order("date asc, id asc")
	if len(ids) == 0 {
		q = q.Where("user_id = ? AND ledger_id IS NULL", userID)
	} else {
		q = q.Where("(user_id = ? AND ledger_id IS NULL) OR ledger_id IN ?", userID, ids)
	}

	out := []models.Expense{}
	return out, q.Find(&out).Error
}

// Delete removes one expense if the caller owns it, or is a member of its
// active ledger.
func (s *ExpenseService) Delete(userID, expenseID uint) error {
	var expense models.Expense
	if err := s.db.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: expense %d", ErrNotFound, expenseID)
		}
		return err
	}

	ok, err := s.ledgers.CanAccess(userID, &expense)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: expense %d", ErrForbidden, expenseID)
	}
	return s.db.Delete(&expense).Error
}

// ---------- Categories ----------

// UpsertCategory creates or updates a category by name and returns the full
// list, as the UI rerenders it wholesale.
func (s *ExpenseService) UpsertCategory(userID uint, name string, budget decimal.Decimal) ([]models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	if budget.IsNegative() {
		return nil, fmt.Errorf("%w: budget must not be negative", ErrInvalidInput)
	}

	var cat models.Category
	err := s.db.Where("user_id = ? AND name = ?", userID, name).First(&cat).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cat = models.Category{UserID: userID, Name: name, Budget: budget}
		if err := s.db.Create(&cat).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := s.db.Model(&cat).Update("budget", budget).Error; err != nil {
			return nil, err
		}
	}
	return s.Categories(userID)
}

func (s *ExpenseService) DeleteCategory(userID uint, name string) ([]models.Category, error) {
	// hard delete so the unique (user, name) slot frees up for re-creation
	res := s.db.Unscoped().Where("user_id = ? AND name = ?", userID, name).Delete(&models.Category{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	return s.Categories(userID)
}

func (s *ExpenseService) Categories(userID uint) ([]models.Category, error) {
	out := []models.Category{}
	err := s.db.Where("user_id = ?", userID).Order("name asc").Find(&out).Error
	return out, err
}

// ---------- Super categories ----------

type SuperCategory struct {
	Name  string          `json:"name"`
	Start time.Time       `json:"start_date"`
	End   time.Time       `json:"end_date"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// ApplyLabel stamps every expense the user owns inside the day-aligned
// range with the label and the exact bounds used for selection, then
// returns the recomputed total. Stamps from an earlier range stay in place
// until RemoveLabel; re-applying only restamps what the new range selects.
func (s *ExpenseService) ApplyLabel(userID uint, label string, start, end time.Time) (*SuperCategory, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrInvalidInput)
	}
	from, to := DayStart(start), DayEnd(end)
	if from.After(to) {
		return nil, fmt.Errorf("%w: start date after end date", ErrInvalidInput)
	}

	err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Updates(map[string]any{
			"super_category": label,
			"super_start":    from,
			"super_end":      to,
		}).Error
	if err != nil {
		return nil, err
	}
	return s.labelSummary(userID, label)
}

// RemoveLabel unsets the label on every expense currently carrying it,
// regardless of the date range any stamp was applied over.
func (s *ExpenseService) RemoveLabel(userID uint, label string) error {
	res := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND super_category = ?", userID, label).
		Updates(map[string]any{
			"super_category": "",
			"super_start":    nil,
			"super_end":      nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: label %q", ErrNotFound, label)
	}
	return nil
}

// ListLabels groups the user's expenses by current label. Totals are
// recomputed at read time, never cached.
func (s *ExpenseService) ListLabels(userID uint) ([]SuperCategory, error) {
	var labels []string
	err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND super_category <> ''", userID).
		Distinct("super_category").
		Order("super_category asc").
		Pluck("super_category", &labels).Error
	if err != nil {
		return nil, err
	}

	out := make([]SuperCategory, 0, len(labels))
	for _, label := range labels {
		summary, err := s.labelSummary(userID, label)
		if err != nil {
			return nil, err
		}
		out = append(out, *summary)
	}
	return out, nil
}

// labelSummary reports the stored range and the freshly computed sum for
// one label. Rows stamped by different applications may carry different
// bounds; the reported range spans all of them.
func (s *ExpenseService) labelSummary(userID uint, label string) (*SuperCategory, error) {
	var rows []models.Expense
	err := s.db.Where("user_id = ? AND super_category = ?", userID, label).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := SuperCategory{Name: label, Total: decimal.Zero}
	for _, e := range rows {
		summary.Count++
		summary.Total = summary.Total.Add(e.Amount)
		if e.SuperStart != nil && (summary.Start.IsZero() || e.SuperStart.Before(summary.Start)) {
			summary.Start = *e.SuperStart
		}
		if e.SuperEnd != nil && e.SuperEnd.After(summary.End) {
			summary.End = *e.SuperEnd
		}
	}
	return &summary, nil
}
