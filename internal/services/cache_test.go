package services

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestListingCacheWithRedis checks that listing queries are served from Redis and
// that creating a listing invalidates them.
func TestListingCacheWithRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	port, err := nat.NewPort("tcp", "6379")
	require.NoError(t, err)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{string(port)},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Redis container: %v", err)
		}
	}()

	addr, err := container.PortEndpoint(ctx, port, "")
	require.NoError(t, err)

	cache, err := NewCache(ctx, addr, "", 0, time.Minute)
	require.NoError(t, err)
	defer cache.Close()
	require.NoError(t, cache.Ping(ctx))

	store := newTestStore(t)
	l := NewListings(store, storage.NewMemoryStore("http://localhost:3000"), cache)

	_, err = store.Insert(ctx, TableProperties, propertyRow("p1", "owner-1", baseTime, nil))
	require.NoError(t, err)

	views, err := l.ListProperties(ctx, PropertyFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)

	// Written behind the cache's back, so a cached query does not see it
	_, err = store.Insert(ctx, TableProperties, propertyRow("p2", "owner-1", baseTime.Add(time.Hour), nil))
	require.NoError(t, err)
	views, err = l.ListProperties(ctx, PropertyFilter{})
	require.NoError(t, err)
	assert.Len(t, views, 1)

	cache.Invalidate(ctx, cachePrefixProperties)
	views, err = l.ListProperties(ctx, PropertyFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "p2", views[0].ID)

	var miss []models.Row
	assert.False(t, cache.Get(ctx, "properties:none", &miss))
}
