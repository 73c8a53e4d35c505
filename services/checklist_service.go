package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rkant062/fitback/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const reconcileRetries = 3

type ChecklistService struct{ db *gorm.DB }

func NewChecklistService(db *gorm.DB) *ChecklistService { return &ChecklistService{db: db} }

// TaskUpdate is a partial update for one task of today's checklist. Nil
// fields leave the stored value untouched.
type TaskUpdate struct {
	Task      string `json:"task" binding:"required"`
	Completed *bool  `json:"completed"`
	Priority  *int   `json:"priority"`
}

type TaskSeed struct {
	Task      string `json:"task" binding:"required"`
	Completed bool   `json:"completed"`
	Priority  int    `json:"priority"`
}

// Today returns the canonical record for the current day, creating it from
// the user's default checklist when the day has no record yet.
func (s *ChecklistService) Today(userID uint) (*models.ActivityRecord, error) {
	day := DayKey(time.Now())

	record, err := s.recordByDay(userID, day)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var defaults []models.DefaultTask
	if err := s.db.Where("user_id = ?", userID).Order("priority asc, id asc").Find(&defaults).Error; err != nil {
		return nil, err
	}

	fresh := models.ActivityRecord{
		UserID: userID,
		Day:    day,
		Date:   DayStart(time.Now()),
	}
	for _, d := range defaults {
		fresh.Checklist = append(fresh.Checklist, models.ChecklistTask{
			Task:     d.Task,
			Priority: d.Priority,
		})
	}
	if err := s.db.Create(&fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent first access created today's record; use theirs
			return s.recordByDay(userID, day)
		}
		return nil, err
	}
	return s.recordByDay(userID, day)
}

func (s *ChecklistService) recordByDay(userID uint, day string) (*models.ActivityRecord, error) {
	var record models.ActivityRecord
	err := s.db.Preload("Checklist", checklistOrder).
		Where("user_id = ? AND day = ?", userID, day).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func checklistOrder(tx *gorm.DB) *gorm.DB { return tx.Order("priority asc, id asc") }

// Reconcile merges a partial update into today's record: the calorie delta
// is added to the running total, never replacing it, and each update
// patches its matching task by trimmed, case-sensitive name. Updates naming
// a task today does not have are dropped on purpose; tasks enter the day
// only through AddTask.
func (s *ChecklistService) Reconcile(userID uint, calorieDelta int, updates []TaskUpdate) (*models.ActivityRecord, error) {
	if calorieDelta < 0 {
		return nil, fmt.Errorf("%w: calorie delta must not be negative", ErrInvalidInput)
	}
	for _, u := range updates {
		if u.Priority != nil && *u.Priority < 1 {
			return nil, fmt.Errorf("%w: priority must be positive", ErrInvalidInput)
		}
	}
	if _, err := s.Today(userID); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < reconcileRetries; attempt++ {
		record, err := s.reconcileOnce(userID, calorieDelta, updates)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *ChecklistService) reconcileOnce(userID uint, calorieDelta int, updates []TaskUpdate) (*models.ActivityRecord, error) {
	day := DayKey(time.Now())

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record models.ActivityRecord
		if err := lockForUpdate(tx).Where("user_id = ? AND day = ?", userID, day).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: today's record vanished mid-update", ErrConflict)
			}
			return err
		}

		if calorieDelta != 0 {
			if err := tx.Model(&record).
				UpdateColumn("calories_burned", gorm.Expr("calories_burned + ?", calorieDelta)).Error; err != nil {
				return err
			}
		}

		var tasks []models.ChecklistTask
		if err := tx.Where("activity_record_id = ?", record.ID).Find(&tasks).Error; err != nil {
			return err
		}
		byName := make(map[string]*models.ChecklistTask, len(tasks))
		for i := range tasks {
			byName[strings.TrimSpace(tasks[i].Task)] = &tasks[i]
		}

		for _, u := range updates {
			name := strings.TrimSpace(u.Task)
			if name == "" {
				continue
			}
			task, ok := byName[name]
			if !ok {
				continue // not part of today's checklist; documented no-op
			}
			fields := map[string]any{}
			if u.Completed != nil {
				fields["completed"] = *u.Completed
			}
			if u.Priority != nil {
				fields["priority"] = *u.Priority
			}
			if len(fields) == 0 {
				continue
			}
			if err := tx.Model(task).Updates(fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.recordByDay(userID, day)
}

// lockForUpdate takes a row lock where the dialect has one. SQLite (tests)
// rejects FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// AddTask appends a new incomplete task to today's checklist. Names are
// unique per day; re-adding an existing one reports ErrAlreadyExists.
func (s *ChecklistService) AddTask(userID uint, name string, priority int) ([]models.ChecklistTask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}
	if priority < 1 {
		priority = 1
	}

	record, err := s.Today(userID)
	if err != nil {
		return nil, err
	}
	task := models.ChecklistTask{ActivityRecordID: record.ID, Task: name, Priority: priority}
	if err := s.db.Create(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: task %q", ErrAlreadyExists, name)
		}
		return nil, err
	}
	return s.todayTasks(userID)
}

// DeleteTask removes a task from today's record only; the standing default
// checklist is untouched.
func (s *ChecklistService) DeleteTask(userID uint, name string) ([]models.ChecklistTask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}

	record, err := s.Today(userID)
	if err != nil {
		return nil, err
	}
	// hard delete: a soft-deleted row would still occupy the unique
	// (record, task) slot and block re-adding the task later today
	res := s.db.Unscoped().Where("activity_record_id = ? AND task = ?", record.ID, name).Delete(&models.ChecklistTask{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: task %q", ErrNotFound, name)
	}
	return s.todayTasks(userID)
}

func (s *ChecklistService) todayTasks(userID uint) ([]models.ChecklistTask, error) {
	record, err := s.Today(userID)
	if err != nil {
		return nil, err
	}
	return record.Checklist, nil
}

// SetDefaultChecklist replaces the user's standing checklist wholesale. It
// does not rewrite any day's record; new defaults show up on the next
// day's first access.
func (s *ChecklistService) SetDefaultChecklist(userID uint, tasks []TaskSeed) ([]models.DefaultTask, error) {
	cleaned := make([]models.DefaultTask, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		name := strings.TrimSpace(t.Task)
		if name == "" {
			return nil, fmt.Errorf("%w: task name is required", ErrInvalidInput)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: task %q listed twice", ErrAlreadyExists, name)
		}
		seen[name] = true
		priority := t.Priority
		if priority < 1 {
			priority = 1
		}
		cleaned = append(cleaned, models.DefaultTask{UserID: userID, Task: name, Priority: priority})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.DefaultTask{}).Error; err != nil {
			return err
		}
		if len(cleaned) == 0 {
			return nil
		}
		return tx.Create(&cleaned).Error
	})
	if err != nil {
		return nil, err
	}

	var out []models.DefaultTask
	if err := s.db.Where("user_id = ?", userID).Order("priority asc, id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// History returns every record for the user in date order, for charting.
func (s *ChecklistService) History(userID uint) ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	err := s.db.Preload("Checklist", checklistOrder).
		Where("user_id = ?", userID).
		Order("date asc").
		Find(&records).Error
	return records, err
}

// BulkRecordInput is one historical row for bulk import.
type BulkRecordInput struct {
	Day            string     `json:"day"`
	Date           time.Time  `json:"date" binding:"required"`
	CaloriesBurned int        `json:"caloriesBurned"`
	Checklist      []TaskSeed `json:"checklist"`
}

// BulkAdd inserts historical records atomically. Each date gets at most one
// record; a batch naming a day that already exists reports ErrAlreadyExists
// and leaves nothing behind.
func (s *ChecklistService) BulkAdd(userID uint, rows []BulkRecordInput) ([]models.ActivityRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows given", ErrInvalidInput)
	}

	saved := make([]models.ActivityRecord, 0, len(rows))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if row.CaloriesBurned < 0 {
				return fmt.Errorf("%w: calories must not be negative", ErrInvalidInput)
			}
			record := models.ActivityRecord{
				UserID:         userID,
				Day:            DayKey(row.Date),
				Date:           DayStart(row.Date),
				CaloriesBurned: row.CaloriesBurned,
			}
			seen := make(map[string]bool, len(row.Checklist))
			for _, t := range row.Checklist {
				name := strings.TrimSpace(t.Task)
				if name == "" || seen[name] {
					continue
				}
				seen[name] = true
				priority := t.Priority
				if priority < 1 {
					priority = 1
				}
				record.Checklist = append(record.Checklist, models.ChecklistTask{
					Task:      name,
					Completed: t.Completed,
					Priority:  priority,
				})
			}
			if err := tx.Create(&record).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: record for %s", ErrAlreadyExists, record.Day)
				}
				return err
			}
			saved = append(saved, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
