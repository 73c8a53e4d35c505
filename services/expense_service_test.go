package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func amount(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func datePtr(t time.Time) *time.Time { return &t }

func TestAddExpenseValidation(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	_, err := svc.Add(1, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(1, nil, []ExpenseInput{{Amount: amount(0), Category: "Food"}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(1, nil, []ExpenseInput{{Amount: amount(-5), Category: "Food"}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(1, nil, []ExpenseInput{{Amount: amount(10), Category: "  "}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddExpenseToLedgerRequiresMembership(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerService(db)
	svc := NewExpenseService(db)

	ledger, err := ledgers.Create(1, "Trip Fund")
	require.NoError(t, err)

	_, err = svc.Add(3, &ledger.ID, []ExpenseInput{{Amount: amount(10), Category: "Food"}})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = ledgers.Join(ledger.JoinToken, 3)
	require.NoError(t, err)
	rows, err := svc.Add(3, &ledger.ID, []ExpenseInput{{Amount: amount(10), Category: "Food"}})
	require.NoError(t, err)
	require.Equal(t, &ledger.ID, rows[0].LedgerID)
}

func TestListExpensesOrdersByDate(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	_, err := svc.Add(1, nil, []ExpenseInput{
		{Amount: amount(20), Category: "Food", Date: datePtr(appDate(2025, 3, 10))},
		{Amount: amount(10), Category: "Travel", Date: datePtr(appDate(2025, 3, 1))},
		{Amount: amount(30), Category: "Food", Date: datePtr(appDate(2025, 3, 20))},
	})
	require.NoError(t, err)

	rows, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Travel", rows[0].Category)
	require.True(t, rows[2].Amount.Equal(amount(30)))
}

func TestListExpensesDoesNotLeakAcrossUsers(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	_, err := svc.Add(1, nil, []ExpenseInput{{Amount: amount(20), Category: "Food"}})
	require.NoError(t, err)

	rows, err := svc.List(2)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestDeleteExpenseAuthorization(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	rows, err := svc.Add(1, nil, []ExpenseInput{{Amount: amount(20), Category: "Food"}})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(2, rows[0].ID), ErrForbidden)
	require.NoError(t, svc.Delete(1, rows[0].ID))
	require.ErrorIs(t, svc.Delete(1, rows[0].ID), ErrNotFound)
}

func TestUpsertCategory(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	cats, err := svc.UpsertCategory(1, "Food", amount(2000))
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.True(t, cats[0].Budget.Equal(amount(2000)))

	// same name updates the budget instead of duplicating the row
	cats, err = svc.UpsertCategory(1, "Food", amount(2500))
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.True(t, cats[0].Budget.Equal(amount(2500)))

	_, err = svc.UpsertCategory(1, "", amount(100))
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpsertCategory(1, "Fun", amount(-1))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteCategoryThenRecreate(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	_, err := svc.UpsertCategory(1, "Food", amount(2000))
	require.NoError(t, err)

	cats, err := svc.DeleteCategory(1, "Food")
	require.NoError(t, err)
	require.Empty(t, cats)

	_, err = svc.DeleteCategory(1, "Food")
	require.ErrorIs(t, err, ErrNotFound)

	cats, err = svc.UpsertCategory(1, "Food", amount(1500))
	require.NoError(t, err)
	require.Len(t, cats, 1)
}

func TestApplyLabelStampsRange(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	_, err := svc.Add(1, nil, []ExpenseInput{
		{Amount: amount(100), Category: "Food", Date: datePtr(appDate(2025, 3, 1))},
		{Amount: amount(200), Category: "Travel", Date: datePtr(appDate(2025, 3, 5))},
		{Amount: amount(50), Category: "Food", Date: datePtr(appDate(2025, 4, 1))}, // outside
	})
	require.NoError(t, err)

	summary, err := svc.ApplyLabel(1, "Trip", appDate(2025, 3, 1), appDate(2025, 3, 7))
	require.NoError(t, err)
	require.Equal(t, 2, summary.Count)
	require.True(t, summary.Total.Equal(amount(300)))
	require.Equal(t, "2025-03-01", DayKey(summary.Start))
	require.Equal(t, "2025-03-07", DayKey(summary.End))
}

func TestApplyLabelValidation(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	_, err := svc.ApplyLabel(1, "  ", appDate(2025, 3, 1), appDate(2025, 3, 7))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ApplyLabel(1, "Trip", appDate(2025, 3, 7), appDate(2025, 3, 1))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestReapplyLabelKeepsEarlierStamps(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	_, err := svc.Add(1, nil, []ExpenseInput{
		{Amount: amount(100), Category: "Food", Date: datePtr(appDate(2025, 3, 1))},
		{Amount: amount(200), Category: "Travel", Date: datePtr(appDate(2025, 3, 20))},
	})
	require.NoError(t, err)

	_, err = svc.ApplyLabel(1, "Trip", appDate(2025, 3, 1), appDate(2025, 3, 7))
	require.NoError(t, err)

	// the second application over a disjoint range restamps only what it
	// selects; the March 1 stamp survives
	summary, err := svc.ApplyLabel(1, "Trip", appDate(2025, 3, 18), appDate(2025, 3, 22))
	require.NoError(t, err)
	require.Equal(t, 2, summary.Count)
	require.True(t, summary.Total.Equal(amount(300)))
	require.Equal(t, "2025-03-01", DayKey(summary.Start))
	require.Equal(t, "2025-03-22", DayKey(summary.End))
}

func TestRemoveLabelUnsetsEverything(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	_, err := svc.Add(1, nil, []ExpenseInput{
		{Amount: amount(100), Category: "Food", Date: datePtr(appDate(2025, 3, 1))},
	})
	require.NoError(t, err)

	_, err = svc.ApplyLabel(1, "Trip", appDate(2025, 3, 1), appDate(2025, 3, 7))
	require.NoError(t, err)

	require.NoError(t, svc.RemoveLabel(1, "Trip"))
	require.ErrorIs(t, svc.RemoveLabel(1, "Trip"), ErrNotFound)

	labels, err := svc.ListLabels(1)
	require.NoError(t, err)
	require.Empty(t, labels)
}

func TestListLabels(t *testing.T) {
	svc := NewExpenseService(testDB(t))

	_, err := svc.Add(1, nil, []ExpenseInput{
		{Amount: amount(100), Category: "Food", Date: datePtr(appDate(2025, 3, 1))},
		{Amount: amount(40), Category: "Food", Date: datePtr(appDate(2025, 5, 2))},
	})
	require.NoError(t, err)

	_, err = svc.ApplyLabel(1, "Trip", appDate(2025, 3, 1), appDate(2025, 3, 7))
	require.NoError(t, err)
	_, err = svc.ApplyLabel(1, "Move", appDate(2025, 5, 1), appDate(2025, 5, 7))
	require.NoError(t, err)

	labels, err := svc.ListLabels(1)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	require.Equal(t, "Move", labels[0].Name)
	require.Equal(t, "Trip", labels[1].Name)
	require.True(t, labels[1].Total.Equal(amount(100)))
}
