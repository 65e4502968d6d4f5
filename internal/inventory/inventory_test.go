package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"food_ordering/internal/db/dbtest"
	"food_ordering/internal/domain"
	"food_ordering/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gorm.io/gorm"
)

func stockOf(t *testing.T, gdb *gorm.DB, id uint) int {
	t.Helper()
	var item domain.MenuItem
	require.NoError(t, gdb.First(&item, id).Error)
	return item.Quantity
}

func orderCount(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&domain.Order{}).Count(&n).Error)
	return n
}

func TestPlaceOrderSnapshotsPrice(t *testing.T) {
	gdb := dbtest.New(t)
	u := dbtest.SeedUser(t, gdb, "alice", "0")
	item := dbtest.SeedItem(t, gdb, "Adobo", "120.50", 3)
	c := NewController(gdb, nil)
	ctx := context.Background()

	order, err := c.PlaceOrder(ctx, u.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, 1, order.Quantity)
	assert.Equal(t, "120.5", order.TotalPrice.String())
	assert.Equal(t, 2, stockOf(t, gdb, item.ID))

	// Later price edits do not touch the placed order
	require.NoError(t, c.UpdateItem(ctx, item.ID, ItemInput{Name: "Adobo", Category: "Meals", Price: dbtest.Money(t, "200"), Quantity: 2}))
	var stored domain.Order
	require.NoError(t, gdb.First(&stored, order.ID).Error)
	assert.Equal(t, "120.5", stored.TotalPrice.String())
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	gdb := dbtest.New(t)
	u := dbtest.SeedUser(t, gdb, "alice", "0")
	item := dbtest.SeedItem(t, gdb, "Sinigang", "90", 0)
	c := NewController(gdb, nil)

	_, err := c.PlaceOrder(context.Background(), u.ID, item.ID)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, "Out of stock", domain.MessageOf(err))
	assert.Equal(t, 0, stockOf(t, gdb, item.ID))
	assert.Zero(t, orderCount(t, gdb))
}

func TestPlaceOrderUnknownItem(t *testing.T) {
	gdb := dbtest.New(t)
	u := dbtest.SeedUser(t, gdb, "alice", "0")
	c := NewController(gdb, nil)

	_, err := c.PlaceOrder(context.Background(), u.ID, 77)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Zero(t, orderCount(t, gdb))
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	gdb := dbtest.New(t)
	item := dbtest.SeedItem(t, gdb, "Halo-halo", "60", 4)
	c := NewController(gdb, nil)

	_, err := c.PlaceOrder(context.Background(), 12, item.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, 4, stockOf(t, gdb, item.ID))
}

func TestPlaceOrderRollsBackStockWhenInsertFails(t *testing.T) {
	gdb := dbtest.New(t)
	u := dbtest.SeedUser(t, gdb, "alice", "0")
	item := dbtest.SeedItem(t, gdb, "Lumpia", "45", 2)
	c := NewController(gdb, nil)

	require.NoError(t, gdb.Callback().Create().Before("gorm:create").Register("test:fail_orders", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "orders" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := c.PlaceOrder(context.Background(), u.ID, item.ID)
	assert.ErrorIs(t, err, domain.ErrOrderCreationFailed)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
	assert.Equal(t, 2, stockOf(t, gdb, item.ID))
	assert.Zero(t, orderCount(t, gdb))
}

func TestConcurrentPlaceOrderNeverOversells(t *testing.T) {
	gdb := dbtest.New(t)
	u := dbtest.SeedUser(t, gdb, "alice", "0")
	const stock = 5
	item := dbtest.SeedItem(t, gdb, "Pancit", "75", stock)
	c := NewController(gdb, nil)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent()) // Every worker must have exited

	const callers = 20
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		outOfStock int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.PlaceOrder(context.Background(), u.ID, item.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrOutOfStock):
				outOfStock++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, stock, succeeded)
	assert.Equal(t, callers-stock, outOfStock)
	assert.Equal(t, 0, stockOf(t, gdb, item.ID))
	assert.Equal(t, int64(stock), orderCount(t, gdb))
}

func TestLastUnitGoesToExactlyOneCaller(t *testing.T) {
	gdb := dbtest.New(t)
	u1 := dbtest.SeedUser(t, gdb, "alice", "0")
	u2 := dbtest.SeedUser(t, gdb, "bob", "0")
	item := dbtest.SeedItem(t, gdb, "Leche flan", "55", 1)
	c := NewController(gdb, nil)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, uid := range []uint{u1.ID, u2.ID} {
		wg.Add(1)
		go func(i int, uid uint) {
			defer wg.Done()
			_, errs[i] = c.PlaceOrder(context.Background(), uid, item.ID)
		}(i, uid)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		if err == nil {
			ok++
		} else if errors.Is(err, domain.ErrOutOfStock) {
			rejected++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0, stockOf(t, gdb, item.ID))
	assert.Equal(t, int64(1), orderCount(t, gdb))
}

func TestMenuCRUD(t *testing.T) {
	gdb := dbtest.New(t)
	c := NewController(gdb, nil)
	ctx := context.Background()

	_, err := c.CreateItem(ctx, ItemInput{Name: " ", Category: "Meals", Price: dbtest.Money(t, "1")})
	assert.ErrorIs(t, err, domain.ErrMissingFields)
	_, err = c.CreateItem(ctx, ItemInput{Name: "Tapsilog", Category: "Meals", Price: dbtest.Money(t, "-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	_, err = c.CreateItem(ctx, ItemInput{Name: "Tapsilog", Category: "Meals", Price: dbtest.Money(t, "1"), Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	first, err := c.CreateItem(ctx, ItemInput{Name: "Tapsilog", Category: "Meals", Price: dbtest.Money(t, "99.90"), Quantity: 10})
	require.NoError(t, err)
	assert.Nil(t, first.ImageURL)
	second, err := c.CreateItem(ctx, ItemInput{Name: "Iced tea", Category: "Drinks", Price: dbtest.Money(t, "25"), ImageURL: "/images/tea.png"})
	require.NoError(t, err)

	menu, err := c.ListMenu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, second.ID, menu[0].ID)
	require.NotNil(t, menu[0].ImageURL)
	assert.Equal(t, "/images/tea.png", *menu[0].ImageURL)

	require.NoError(t, c.UpdateItem(ctx, first.ID, ItemInput{Name: "Tapsilog", Category: "Meals", Price: dbtest.Money(t, "99.90"), Quantity: 0}))
	got, err := c.GetItem(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	assert.ErrorIs(t, c.UpdateItem(ctx, 999, ItemInput{Name: "x", Category: "y"}), domain.ErrItemNotFound)
	require.NoError(t, c.DeleteItem(ctx, first.ID))
	err = c.DeleteItem(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Equal(t, "Item not found", domain.MessageOf(err))
	_, err = c.GetItem(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestMenuCacheDroppedByOrders(t *testing.T) {
	gdb := dbtest.New(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	u := dbtest.SeedUser(t, gdb, "alice", "0")
	item := dbtest.SeedItem(t, gdb, "Pancit", "75", 2)
	c := NewController(gdb, rdb)
	ctx := context.Background()

	menu, err := c.ListMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, menu[0].Quantity)
	assert.True(t, mr.Exists(utils.MenuCacheKey))

	_, err = c.PlaceOrder(ctx, u.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(utils.MenuCacheKey))

	menu, err = c.ListMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, menu[0].Quantity)
}

func TestMenuFillDiscardedWhenOrderRacesRead(t *testing.T) {
	gdb := dbtest.New(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	u := dbtest.SeedUser(t, gdb, "alice", "0")
	item := dbtest.SeedItem(t, gdb, "Pancit", "75", 2)
	c := NewController(gdb, rdb)
	ctx := context.Background()

	// Place an order after ListMenu has read the rows but before it fills the cache
	fired := false
	require.NoError(t, gdb.Callback().Query().After("gorm:query").Register("test:order_after_read", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "menu_items" {
			return
		}
		fired = true
		_, err := c.PlaceOrder(ctx, u.ID, item.ID)
		require.NoError(t, err)
	}))

	menu, err := c.ListMenu(ctx)
	require.NoError(t, err)
	require.True(t, fired)
	assert.Equal(t, 2, menu[0].Quantity)
	assert.False(t, mr.Exists(utils.MenuCacheKey))

	menu, err = c.ListMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, menu[0].Quantity)
	assert.True(t, mr.Exists(utils.MenuCacheKey))
}
