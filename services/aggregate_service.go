package services

import (
	"math"
	"time"

	"github.com/rkant062/fitback/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AggregateService folds timestamped records into chronologically ordered
// day/week/month buckets. Everything here is a pure projection over a
// snapshot; it never writes.
type AggregateService struct {
	db      *gorm.DB
	ledgers *LedgerService
}

func NewAggregateService(db *gorm.DB) *AggregateService {
	return &AggregateService{db: db, ledgers: NewLedgerService(db)}
}

// ActivityBucket summarizes one bucket of activity records.
type ActivityBucket struct {
	Label          string  `json:"label"`
	Records        int     `json:"records"`
	CaloriesBurned int     `json:"caloriesBurned"`
	TasksTotal     int     `json:"tasks_total"`
	TasksCompleted int     `json:"tasks_completed"`
	CompletionPct  float64 `json:"completion_pct"`
}

func (s *AggregateService) ActivitySeries(userID uint, granularity string) ([]ActivityBucket, error) {
	var records []models.ActivityRecord
	if err := s.db.Preload("Checklist").Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	return foldActivity(records, granularity)
}

// foldActivity groups first, then orders the labels; input order is
// irrelevant. Empty input yields an empty slice so charts render "no data".
func foldActivity(records []models.ActivityRecord, granularity string) ([]ActivityBucket, error) {
	buckets := map[string]*ActivityBucket{}
	for _, r := range records {
		key, err := BucketKey(r.Date, granularity)
		if err != nil {
			return nil, err
		}
		b := buckets[key]
		if b == nil {
			b = &ActivityBucket{Label: key}
			buckets[key] = b
		}
		b.Records++
		b.CaloriesBurned += r.CaloriesBurned
		for _, task := range r.Checklist {
			b.TasksTotal++
			if task.Completed {
				b.TasksCompleted++
			}
		}
	}

	out := make([]ActivityBucket, 0, len(buckets))
	for _, key := range sortedKeys(buckets, granularity) {
		b := buckets[key]
		if b.TasksTotal > 0 {
			b.CompletionPct = round2(float64(b.TasksCompleted) / float64(b.TasksTotal) * 100)
		}
		out = append(out, *b)
	}
	return out, nil
}

// ExpenseBucket summarizes one bucket of expenses with a per-category
// breakdown, mirroring the spend chart.
type ExpenseBucket struct {
	Label      string                     `json:"label"`
	Count      int                        `json:"count"`
	Total      decimal.Decimal            `json:"total"`
	Categories map[string]decimal.Decimal `json:"categories"`
}

// ExpenseSeries aggregates over the same visibility union as the expense
// list: personal rows plus rows of every ledger the user can still read.
func (s *AggregateService) ExpenseSeries(userID uint, granularity string) ([]ExpenseBucket, error) {
	ids, err := s.ledgers.ExpenseLedgerIDs(userID)
	if err != nil {
		return nil, err
	}
	q := s.db
	if len(ids) == 0 {
		q = q.Where("user_id = ? AND ledger_id IS NULL", userID)
	} else {
		q = q.Where("(user_id = ? AND ledger_id IS NULL) OR ledger_id IN ?", userID, ids)
	}
	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return foldExpenses(expenses, granularity)
}

func foldExpenses(expenses []models.Expense, granularity string) ([]ExpenseBucket, error) {
	buckets := map[string]*ExpenseBucket{}
	for _, e := range expenses {
		key, err := BucketKey(e.Date, granularity)
		if err != nil {
			return nil, err
		}
		b := buckets[key]
		if b == nil {
			b = &ExpenseBucket{Label: key, Total: decimal.Zero, Categories: map[string]decimal.Decimal{}}
			buckets[key] = b
		}
		b.Count++
		b.Total = b.Total.Add(e.Amount)
		b.Categories[e.Category] = b.Categories[e.Category].Add(e.Amount)
	}

	out := make([]ExpenseBucket, 0, len(buckets))
	for _, key := range sortedKeys(buckets, granularity) {
		out = append(out, *buckets[key])
	}
	return out, nil
}

// BudgetProgress compares a category's spend in the current week bucket to
// its budget.
type BudgetProgress struct {
	Category   string          `json:"category"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	OverBudget bool            `json:"over_budget"`
}

func (s *AggregateService) WeeklyBudgetProgress(userID uint, now time.Time) ([]BudgetProgress, error) {
	var cats []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name asc").Find(&cats).Error; err != nil {
		return nil, err
	}

	start, end := WeekBounds(now)
	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).Find(&expenses).Error; err != nil {
		return nil, err
	}

	spent := map[string]decimal.Decimal{}
	for _, e := range expenses {
		spent[e.Category] = spent[e.Category].Add(e.Amount)
	}

	out := make([]BudgetProgress, 0, len(cats))
	for _, c := range cats {
		sp := spent[c.Name]
		out = append(out, BudgetProgress{
			Category:   c.Name,
			Budget:     c.Budget,
			Spent:      sp,
			Remaining:  c.Budget.Sub(sp),
			OverBudget: sp.GreaterThan(c.Budget),
		})
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V, granularity string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	SortBucketKeys(keys, granularity)
	return keys
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
