package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"cinemax/internal/models"
	"cinemax/internal/orders/db"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	require.NoError(t, bunDB.ResetModel(context.Background(), (*db.UserRow)(nil)))
	require.NoError(t, bunDB.ResetModel(context.Background(), (*db.OrderRow)(nil)))

	t.Cleanup(func() { sqldb.Close() })
	return &db.DB{Bun: bunDB}
}

func sampleUser() models.User {
	now := time.Now().Round(time.Second)
	return models.User{
		ID:        "user-1",
		Name:      "Ana",
		Email:     "ana@example.com",
		CreatedAt: now,
		LastLogin: now,
	}
}

func sampleOrder(id, userID string, total float64, createdAt time.Time) models.Order {
	return models.Order{
		ID: id,
		Items: []models.CartItem{
			{ID: "item-1", MovieID: 1, Title: "Dune", Price: 25.00, Quantity: 2, Showtime: "18:30", Date: "2026-09-05", Theater: "Sala 1"},
		},
		Subtotal:       50.00,
		Discount:       0,
		ConvenienceFee: 5.00,
		Total:          total,
		User:           models.User{ID: userID},
		CreatedAt:      createdAt,
		Status:         models.OrderConfirmed,
	}
}

func TestSaveAndGetUser(t *testing.T) {
	store := setupTestDB(t)
	user := sampleUser()

	require.NoError(t, store.SaveUser(user))

	got, err := store.GetUserByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Name, got.Name)
	assert.Empty(t, got.Purchases)
}

func TestSaveUserUpsertsExisting(t *testing.T) {
	store := setupTestDB(t)
	user := sampleUser()
	require.NoError(t, store.SaveUser(user))

	user.LastLogin = user.LastLogin.Add(time.Hour)
	require.NoError(t, store.SaveUser(user))

	got, err := store.GetUserByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.LastLogin.Unix(), got.LastLogin.Unix())
}

func TestGetUserByEmailNotFound(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.GetUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, db.ErrUserNotFound)
}

func TestSaveAndGetOrders(t *testing.T) {
	store := setupTestDB(t)
	user := sampleUser()
	require.NoError(t, store.SaveUser(user))

	base := time.Now().Round(time.Second)
	require.NoError(t, store.SaveOrder(sampleOrder("order-1", user.ID, 55.00, base.Add(-time.Hour))))
	require.NoError(t, store.SaveOrder(sampleOrder("order-2", user.ID, 105.00, base)))

	orders, err := store.GetOrdersByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Most-recent first.
	assert.Equal(t, "order-2", orders[0].ID)
	assert.Equal(t, "order-1", orders[1].ID)
	assert.Equal(t, 105.00, orders[0].Total)
	assert.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Dune", orders[0].Items[0].Title)
}

func TestGetOrderByID(t *testing.T) {
	store := setupTestDB(t)
	order := sampleOrder("order-9", "user-1", 55.00, time.Now().Round(time.Second))
	require.NoError(t, store.SaveOrder(order))

	got, err := store.GetOrderByID("order-9")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, models.OrderConfirmed, got.Status)
	assert.Equal(t, order.Subtotal, got.Subtotal)
}

func TestUserWithPurchaseHistory(t *testing.T) {
	store := setupTestDB(t)
	user := sampleUser()
	require.NoError(t, store.SaveUser(user))
	require.NoError(t, store.SaveOrder(sampleOrder("order-1", user.ID, 55.00, time.Now().Round(time.Second))))

	got, err := store.GetUserByEmail(user.Email)
	require.NoError(t, err)
	require.Len(t, got.Purchases, 1)
	assert.Equal(t, "order-1", got.Purchases[0].ID)
}
