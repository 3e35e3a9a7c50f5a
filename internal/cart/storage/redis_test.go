package storage_test

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"cinemax/internal/cart/storage"
	"cinemax/internal/models"
)

// TestRedisIntegration exercises the cart side channel against a real Redis
// container.
func TestRedisIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:latest",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	defer redisContainer.Terminate(ctx)

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	store := storage.NewRedis(client, "session-1", nil)

	// Fresh session loads empty.
	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Coupons)

	// Save and reload the snapshot.
	want := models.CartSnapshot{
		Items: []models.CartItem{
			{ID: "item-1", MovieID: 1, Title: "Dune", Price: 25.00, Quantity: 2, Showtime: "18:30", Date: "2026-09-05", Theater: "Sala 1"},
		},
		Coupons: []models.Coupon{
			{Code: "VIP30", Type: models.CouponFixed, Value: 30.00},
		},
	}
	require.NoError(t, store.Save(ctx, want))

	snap, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Dune", snap.Items[0].Title)
	require.Len(t, snap.Coupons, 1)
	assert.Equal(t, "VIP30", snap.Coupons[0].Code)

	// Sessions are isolated.
	other := storage.NewRedis(client, "session-2", nil)
	snap, err = other.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	// A corrupt blob is discarded, not surfaced as an error.
	require.NoError(t, client.Set(ctx, "cinemax_cart:session-1", "{not json", 0).Err())
	snap, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Coupons)
}

func TestMemoryStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	want := models.CartSnapshot{
		Items: []models.CartItem{{ID: "item-1", MovieID: 1, Quantity: 1}},
	}
	require.NoError(t, store.Save(ctx, want))

	snap, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "item-1", snap.Items[0].ID)
}
