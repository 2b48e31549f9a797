package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/availability"
	"storefront/pkg/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*StatusCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStatusCache(client, ttl), mr
}

func sampleStatus(at time.Time) *models.ShopStatus {
	return &models.ShopStatus{
		ShopID:      uuid.New(),
		Status:      availability.Status{IsOpen: true, IsClosingSoon: true, MinutesUntilClose: 12},
		Timezone:    "UTC",
		EvaluatedAt: at,
	}
}

func TestStatusCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	at := time.Date(2024, 6, 10, 12, 0, 5, 0, time.UTC)
	status := sampleStatus(at)

	require.NoError(t, c.Set(ctx, status))

	got, ok, err := c.Get(ctx, status.ShopID, at.Add(30*time.Second))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, status.Status, got.Status)
	assert.True(t, got.EvaluatedAt.Equal(at))
}

func TestStatusCache_StaleMinuteMisses(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()
	at := time.Date(2024, 6, 10, 12, 0, 5, 0, time.UTC)
	status := sampleStatus(at)
	require.NoError(t, c.Set(ctx, status))

	_, ok, err := c.Get(ctx, status.ShopID, at.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatusCache_ValidUntilBoundsFreshness(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()
	at := time.Date(2024, 6, 10, 12, 0, 5, 0, time.UTC)
	until := at.Add(20 * time.Second)

	status := sampleStatus(at)
	status.Status = availability.Status{ClosureReason: availability.ReasonTemporarilyClosed}
	status.ValidUntil = &until
	require.NoError(t, c.Set(ctx, status))

	_, ok, err := c.Get(ctx, status.ShopID, at.Add(10*time.Second))
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = c.Get(ctx, status.ShopID, at.Add(40*time.Second))
	require.NoError(t, err)
	assert.False(t, ok, "a status past its closed-until must not be served")
}

func TestStatusCache_ExpiryAndInvalidate(t *testing.T) {
	c, mr := newTestCache(t, 10*time.Second)
	ctx := context.Background()
	at := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	status := sampleStatus(at)
	require.NoError(t, c.Set(ctx, status))
	mr.FastForward(11 * time.Second)
	_, ok, err := c.Get(ctx, status.ShopID, at)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, status))
	require.NoError(t, c.Invalidate(ctx, status.ShopID))
	_, ok, err = c.Get(ctx, status.ShopID, at)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatusCache_ZeroTTLDisablesStorage(t *testing.T) {
	c, mr := newTestCache(t, 0)
	status := sampleStatus(time.Now())

	require.NoError(t, c.Set(context.Background(), status))
	assert.False(t, mr.Exists(statusKey(status.ShopID)))
}

func TestStatusCache_PublishSubscribe(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var received []models.ShopStatus
	require.NoError(t, c.Subscribe(ctx, func(s models.ShopStatus) {
		mu.Lock()
		received = append(received, s)
		mu.Unlock()
	}))

	status := sampleStatus(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, c.Publish(ctx, status))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1 && received[0].ShopID == status.ShopID
	}, time.Second, 5*time.Millisecond)

	_, ok, err := c.Get(ctx, status.ShopID, status.EvaluatedAt)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not-a-url")
	assert.Error(t, err)
}
