package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCreateLedgerGeneratesToken(t *testing.T) {
	svc := NewLedgerService(testDB(t))

	ledger, err := svc.Create(1, "Trip Fund")
	require.NoError(t, err)
	require.True(t, ledger.Active)
	require.Len(t, ledger.JoinToken, joinTokenLength)

	other, err := svc.Create(1, "House")
	require.NoError(t, err)
	require.NotEqual(t, ledger.JoinToken, other.JoinToken)
}

func TestCreateLedgerRejectsEmptyName(t *testing.T) {
	svc := NewLedgerService(testDB(t))

	_, err := svc.Create(1, "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestJoinLedger(t *testing.T) {
	svc := NewLedgerService(testDB(t))

	ledger, err := svc.Create(1, "Trip Fund")
	require.NoError(t, err)

	joined, err := svc.Join(ledger.JoinToken, 2)
	require.NoError(t, err)
	require.Len(t, joined.Members, 1)

	// joining twice is rejected, as is the owner joining their own ledger
	_, err = svc.Join(ledger.JoinToken, 2)
	require.ErrorIs(t, err, ErrAlreadyExists)
	_, err = svc.Join(ledger.JoinToken, 1)
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = svc.Join("no-such-token", 3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestJoinDeactivatedLedger(t *testing.T) {
	svc := NewLedgerService(testDB(t))

	ledger, err := svc.Create(1, "Trip Fund")
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ledger.ID, 1))

	_, err = svc.Join(ledger.JoinToken, 2)
	require.ErrorIs(t, err, ErrNotFound, "a revoked token must stop working")
}

func TestLedgerTokenIsOwnerOnly(t *testing.T) {
	svc := NewLedgerService(testDB(t))

	ledger, err := svc.Create(1, "Trip Fund")
	require.NoError(t, err)
	_, err = svc.Join(ledger.JoinToken, 2)
	require.NoError(t, err)

	token, err := svc.Token(ledger.ID, 1)
	require.NoError(t, err)
	require.Equal(t, ledger.JoinToken, token)

	_, err = svc.Token(ledger.ID, 2)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestDeactivateIsOwnerOnly(t *testing.T) {
	svc := NewLedgerService(testDB(t))

	ledger, err := svc.Create(1, "Trip Fund")
	require.NoError(t, err)
	_, err = svc.Join(ledger.JoinToken, 2)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Deactivate(ledger.ID, 2), ErrForbidden)
	require.NoError(t, svc.Deactivate(ledger.ID, 1))
}

func TestVisibleLedgerIDs(t *testing.T) {
	svc := NewLedgerService(testDB(t))

	ledger, err := svc.Create(1, "Trip Fund")
	require.NoError(t, err)
	_, err = svc.Join(ledger.JoinToken, 2)
	require.NoError(t, err)

	for _, uid := range []uint{1, 2} {
		ids, err := svc.VisibleLedgerIDs(uid)
		require.NoError(t, err)
		require.Equal(t, []uint{ledger.ID}, ids)
	}

	ids, err := svc.VisibleLedgerIDs(3)
	require.NoError(t, err)
	require.Empty(t, ids)

	// deactivation drops the ledger from everyone's listing, but the
	// owner keeps reading its expenses
	require.NoError(t, svc.Deactivate(ledger.ID, 1))
	ids, err = svc.VisibleLedgerIDs(1)
	require.NoError(t, err)
	require.Empty(t, ids)

	ids, err = svc.ExpenseLedgerIDs(1)
	require.NoError(t, err)
	require.Equal(t, []uint{ledger.ID}, ids)

	ids, err = svc.ExpenseLedgerIDs(2)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestListForUserReportsRoles(t *testing.T) {
	svc := NewLedgerService(testDB(t))

	ledger, err := svc.Create(1, "Trip Fund")
	require.NoError(t, err)
	_, err = svc.Join(ledger.JoinToken, 2)
	require.NoError(t, err)

	owner, err := svc.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, owner, 1)
	require.Equal(t, "owner", owner[0].Role)
	require.Equal(t, 2, owner[0].Members)

	member, err := svc.ListForUser(2)
	require.NoError(t, err)
	require.Len(t, member, 1)
	require.Equal(t, "collaborator", member[0].Role)
}

func TestLedgerExpenseVisibilityLifecycle(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerService(db)
	expenses := NewExpenseService(db)

	ledger, err := ledgers.Create(1, "Trip Fund")
	require.NoError(t, err)
	_, err = ledgers.Join(ledger.JoinToken, 2)
	require.NoError(t, err)

	// the collaborator logs the expense; both sides see it
	rows, err := expenses.Add(2, &ledger.ID, []ExpenseInput{
		{Amount: decimal.NewFromInt(40), Category: "Food"},
	})
	require.NoError(t, err)
	shared := rows[0]

	for _, uid := range []uint{1, 2} {
		visible, err := expenses.List(uid)
		require.NoError(t, err)
		require.Len(t, visible, 1)
	}

	ok, err := ledgers.CanAccess(2, &shared)
	require.NoError(t, err)
	require.True(t, ok)

	// an outsider sees nothing and may not touch it
	ok, err = ledgers.CanAccess(3, &shared)
	require.NoError(t, err)
	require.False(t, ok)

	// after deactivation the collaborator loses the expense, the owner
	// keeps it
	require.NoError(t, ledgers.Deactivate(ledger.ID, 1))

	visible, err := expenses.List(2)
	require.NoError(t, err)
	require.Empty(t, visible)

	visible, err = expenses.List(1)
	require.NoError(t, err)
	require.Len(t, visible, 1, "owner must keep the deactivated ledger's history")

	ok, err = ledgers.CanAccess(2, &shared)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = ledgers.CanAccess(1, &shared)
	require.NoError(t, err)
	require.True(t, ok)
}
