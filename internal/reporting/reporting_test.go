package reporting

import (
	"context"
	"testing"

	"food_ordering/internal/db/dbtest"
	"food_ordering/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionsJoinAndFilter(t *testing.T) {
	gdb := dbtest.New(t)
	alice := dbtest.SeedUser(t, gdb, "alice", "0")
	bob := dbtest.SeedUser(t, gdb, "bob", "0")
	adobo := dbtest.SeedItem(t, gdb, "Adobo", "100", 5)
	gone := dbtest.SeedItem(t, gdb, "Sinigang", "80", 5)

	paid := dbtest.SeedOrder(t, gdb, alice.ID, adobo.ID, "100", domain.StatusPaid)
	dbtest.SeedOrder(t, gdb, alice.ID, adobo.ID, "100", domain.StatusPending)
	done := dbtest.SeedOrder(t, gdb, bob.ID, adobo.ID, "95", domain.StatusCompleted)
	dbtest.SeedOrder(t, gdb, bob.ID, gone.ID, "80", domain.StatusPaid)
	dbtest.SeedOrder(t, gdb, 999, adobo.ID, "100", domain.StatusPaid)
	require.NoError(t, gdb.Delete(&domain.MenuItem{}, gone.ID).Error)

	r := NewReporter(gdb)
	list, err := r.Transactions(context.Background(), Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Transactions, 2)
	assert.Equal(t, done.ID, list.Transactions[0].ID)
	assert.Equal(t, "bob", list.Transactions[0].UserName)
	assert.Equal(t, "Adobo", list.Transactions[0].FoodName)
	assert.Equal(t, domain.StatusCompleted, list.Transactions[0].Status)
	assert.Equal(t, "95", list.Transactions[0].TotalPrice.String())
	assert.Equal(t, paid.ID, list.Transactions[1].ID)
	assert.Zero(t, list.Page)
}

func TestTransactionsPagination(t *testing.T) {
	gdb := dbtest.New(t)
	u := dbtest.SeedUser(t, gdb, "alice", "0")
	item := dbtest.SeedItem(t, gdb, "Adobo", "100", 5)
	for i := 0; i < 5; i++ {
		dbtest.SeedOrder(t, gdb, u.ID, item.ID, "100", domain.StatusPaid)
	}
	r := NewReporter(gdb)

	list, err := r.Transactions(context.Background(), Page{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), list.Total)
	assert.Equal(t, 3, list.TotalPages)
	assert.Equal(t, 2, list.Page)
	assert.Len(t, list.Transactions, 2)

	list, err = r.Transactions(context.Background(), Page{Page: 3, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, list.PageSize)
	assert.Empty(t, list.Transactions)
}

func TestClearTransactions(t *testing.T) {
	gdb := dbtest.New(t)
	u := dbtest.SeedUser(t, gdb, "alice", "0")
	item := dbtest.SeedItem(t, gdb, "Adobo", "100", 5)
	dbtest.SeedOrder(t, gdb, u.ID, item.ID, "100", domain.StatusPaid)
	dbtest.SeedOrder(t, gdb, u.ID, item.ID, "100", domain.StatusCompleted)
	dbtest.SeedOrder(t, gdb, u.ID, item.ID, "100", domain.StatusPreparing)
	r := NewReporter(gdb)

	n, err := r.ClearTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var remaining []domain.Order
	require.NoError(t, gdb.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, domain.StatusPreparing, remaining[0].Status)

	n, err = r.ClearTransactions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
