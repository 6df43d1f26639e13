package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryService_CreatePlainEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acc := f.account(t, "Checking", 0)
	food := f.category(t, "Food", nil)

	id, err := f.entries.Create(ctx, &entry.Entry{
		AccountID:   acc.ID,
		CategoryID:  &food,
		Date:        day(1),
		Amount:      100,
		Description: "Refund",
		Status:      entry.StatusReconciling,
	})
	require.NoError(t, err)

	got, err := f.entries.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entry.StatusCleared, got.Status)
	assert.Equal(t, food, *got.CategoryID)
	assert.Nil(t, got.OtherID)
	assert.Empty(t, got.SubEntries)

	list, err := f.entries.List(ctx, acc.ID, nil, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(100), list[0].Balance)
	assert.Equal(t, "Food", list[0].CategoryName)
}

func TestEntryService_CreateIgnoresOwnershipState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acc := f.account(t, "Checking", 0)

	first, err := f.entries.Create(ctx, &entry.Entry{AccountID: acc.ID, Amount: 1})
	require.NoError(t, err)

	id, err := f.entries.Create(ctx, &entry.Entry{
		ID:           first,
		AccountID:    acc.ID,
		Amount:       2,
		OtherID:      &first,
		SplitEntryID: &first,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, id)

	got, err := f.entries.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.OtherID)
	assert.Nil(t, got.SplitEntryID)

	original, err := f.entries.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), original.Amount)
}

func TestEntryService_Transfer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.account(t, "Checking", 0)
	b := f.account(t, "Savings", 0)

	id, err := f.entries.Create(ctx, &entry.Entry{
		AccountID:   a.ID,
		CategoryID:  &b.ID,
		Date:        day(2),
		Amount:      50,
		Description: "Monthly saving",
		Memo:        "auto",
		Status:      entry.StatusReconciling,
	})
	require.NoError(t, err)

	original, err := f.entries.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, original.OtherID)

	mirror, err := f.entries.Get(ctx, *original.OtherID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, mirror.AccountID)
	assert.Equal(t, a.ID, *mirror.CategoryID)
	assert.Equal(t, id, *mirror.OtherID)
	assert.Equal(t, int64(50), mirror.Amount)
	assert.Equal(t, "Monthly saving", mirror.Description)
	assert.Equal(t, "auto", mirror.Memo)
	assert.Equal(t, *day(2), *mirror.Date)
	assert.Equal(t, entry.StatusCleared, original.Status)
	assert.Equal(t, entry.StatusCleared, mirror.Status)

	listB, err := f.entries.List(ctx, b.ID, nil, "")
	require.NoError(t, err)
	require.Len(t, listB, 1)
	assert.Equal(t, "Checking", listB[0].CategoryName)

	require.NoError(t, f.entries.Delete(ctx, id))

	_, err = f.entries.Get(ctx, mirror.ID)
	assert.ErrorIs(t, err, entry.ErrEntryNotFound{EntryID: mirror.ID})
	count, err := f.entries.Count(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEntryService_TransferUpdates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.account(t, "Checking", 0)
	b := f.account(t, "Savings", 0)
	c := f.account(t, "Cash", 0)
	food := f.category(t, "Food", nil)

	id, err := f.entries.Create(ctx, &entry.Entry{AccountID: a.ID, CategoryID: &b.ID, Amount: 20})
	require.NoError(t, err)
	created, err := f.entries.Get(ctx, id)
	require.NoError(t, err)
	mirrorID := *created.OtherID

	t.Run("retarget reuses mirror", func(t *testing.T) {
		e, err := f.entries.Get(ctx, id)
		require.NoError(t, err)
		e.CategoryID = &c.ID
		e.Amount = 25
		e.OtherID = nil // ignored in favour of the stored link
		require.NoError(t, f.entries.Update(ctx, e))

		got, err := f.entries.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, mirrorID, *got.OtherID)

		mirror, err := f.entries.Get(ctx, mirrorID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, mirror.AccountID)
		assert.Equal(t, int64(25), mirror.Amount)

		countB, err := f.entries.Count(ctx, b.ID)
		require.NoError(t, err)
		assert.Zero(t, countB)
	})

	t.Run("editing the mirror updates the original", func(t *testing.T) {
		mirror, err := f.entries.Get(ctx, mirrorID)
		require.NoError(t, err)
		mirror.Description = "from cash side"
		require.NoError(t, f.entries.Update(ctx, mirror))

		got, err := f.entries.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "from cash side", got.Description)
		assert.Equal(t, mirrorID, *got.OtherID)
	})

	t.Run("leaving transfer deletes mirror", func(t *testing.T) {
		e, err := f.entries.Get(ctx, id)
		require.NoError(t, err)
		e.CategoryID = &food
		require.NoError(t, f.entries.Update(ctx, e))

		got, err := f.entries.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got.OtherID)
		_, err = f.entries.Get(ctx, mirrorID)
		assert.ErrorIs(t, err, entry.ErrEntryNotFound{})
	})

	t.Run("new transfer creates fresh mirror", func(t *testing.T) {
		e, err := f.entries.Get(ctx, id)
		require.NoError(t, err)
		e.CategoryID = &b.ID
		require.NoError(t, f.entries.Update(ctx, e))

		got, err := f.entries.Get(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got.OtherID)
		assert.NotEqual(t, mirrorID, *got.OtherID)
	})
}

func TestEntryService_Split(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acc := f.account(t, "Checking", 0)
	food := f.category(t, "Food", nil)
	fuel := f.category(t, "Fuel", nil)
	split := f.sess.SplitCategoryID

	id, err := f.entries.Create(ctx, &entry.Entry{
		AccountID:  acc.ID,
		CategoryID: &split,
		Amount:     30,
		SubEntries: []*entry.Entry{
			{CategoryID: &food, Amount: 10},
			{CategoryID: &fuel, Amount: 20},
		},
	})
	require.NoError(t, err)

	got, err := f.entries.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.SubEntries, 2)
	oldIDs := []int64{got.SubEntries[0].ID, got.SubEntries[1].ID}
	var sum int64
	for _, sub := range got.SubEntries {
		assert.Equal(t, acc.ID, sub.AccountID)
		assert.Equal(t, id, *sub.SplitEntryID)
		sum += sub.Amount
	}
	assert.Equal(t, int64(30), sum)

	count, err := f.entries.Count(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got.SubEntries = []*entry.Entry{{CategoryID: &food, Amount: 30}}
	require.NoError(t, f.entries.Update(ctx, got))

	replaced, err := f.entries.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, replaced.SubEntries, 1)
	assert.Equal(t, int64(30), replaced.SubEntries[0].Amount)
	assert.NotContains(t, oldIDs, replaced.SubEntries[0].ID)

	replaced.CategoryID = &food
	require.NoError(t, f.entries.Update(ctx, replaced))
	plain, err := f.entries.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, plain.SubEntries)

	list, err := f.entries.List(ctx, acc.ID, nil, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(30), list[0].Balance)
}

func TestEntryService_SubEntriesIgnoredOutsideSplit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acc := f.account(t, "Checking", 0)
	food := f.category(t, "Food", nil)

	id, err := f.entries.Create(ctx, &entry.Entry{
		AccountID:  acc.ID,
		CategoryID: &food,
		Amount:     5,
		SubEntries: []*entry.Entry{{CategoryID: &food, Amount: 5}},
	})
	require.NoError(t, err)

	got, err := f.entries.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.SubEntries)
}

func TestEntryService_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acc := f.account(t, "Checking", 0)
	split := f.sess.SplitCategoryID

	t.Run("unknown account", func(t *testing.T) {
		_, err := f.entries.Create(ctx, &entry.Entry{AccountID: 999, Amount: 1})
		assert.ErrorIs(t, err, account.ErrAccountNotFound{AccountID: 999})
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := f.entries.Create(ctx, &entry.Entry{AccountID: acc.ID, CategoryID: ptr(int64(999))})
		assert.ErrorIs(t, err, category.ErrCategoryNotFound{CategoryID: 999})
	})

	t.Run("unknown sub-entry category rolls back", func(t *testing.T) {
		_, err := f.entries.Create(ctx, &entry.Entry{
			AccountID:  acc.ID,
			CategoryID: &split,
			SubEntries: []*entry.Entry{{CategoryID: ptr(int64(998)), Amount: 1}},
		})
		assert.ErrorIs(t, err, category.ErrCategoryNotFound{})

		count, err := f.entries.Count(ctx, acc.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("update unknown entry", func(t *testing.T) {
		err := f.entries.Update(ctx, &entry.Entry{ID: 12345, AccountID: acc.ID})
		assert.ErrorIs(t, err, entry.ErrEntryNotFound{EntryID: 12345})
	})

	t.Run("delete unknown entry", func(t *testing.T) {
		assert.ErrorIs(t, f.entries.Delete(ctx, 12345), entry.ErrEntryNotFound{})
	})

	t.Run("list unknown account", func(t *testing.T) {
		_, err := f.entries.List(ctx, 999, nil, "")
		assert.ErrorIs(t, err, account.ErrAccountNotFound{})
	})
}

func TestEntryService_Import(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acc := f.account(t, "Checking", 0)
	importID := uuid.New()

	id, existed, err := f.entries.Import(ctx, importID, &entry.Entry{AccountID: acc.ID, Amount: 42})
	require.NoError(t, err)
	assert.False(t, existed)

	again, existed, err := f.entries.Import(ctx, importID, &entry.Entry{AccountID: acc.ID, Amount: 42})
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, id, again)

	count, err := f.entries.Count(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, _, err = f.entries.Import(ctx, uuid.New(), &entry.Entry{AccountID: 999})
	assert.ErrorIs(t, err, account.ErrAccountNotFound{})
}
