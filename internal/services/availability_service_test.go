package services

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"storefront/internal/availability"
	"storefront/internal/repo"
	"storefront/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAvailability(shops ShopStore, cache StatusStore) *AvailabilityService {
	svc := NewAvailabilityService(shops, cache, time.UTC)
	svc.now = fixedClock
	return svc
}

func TestAvailabilityService_GetStatusOpen(t *testing.T) {
	shop := ninetoFiveShop()
	shops := new(MockShopStore)
	shops.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	status, err := newTestAvailability(shops, nil).GetStatus(context.Background(), shop.ID)
	require.NoError(t, err)

	assert.Equal(t, shop.ID, status.ShopID)
	assert.True(t, status.IsOpen)
	assert.False(t, status.IsClosingSoon)
	assert.Equal(t, 300, status.MinutesUntilClose)
	assert.Nil(t, status.NextOpening)
	assert.Equal(t, "UTC", status.Timezone)
	assert.Equal(t, testNow, status.EvaluatedAt)
	shops.AssertExpectations(t)
}

func TestAvailabilityService_ClosedIncludesNextOpening(t *testing.T) {
	shop := ninetoFiveShop()
	shop.TemporaryClosure = models.ClosureState{IsClosed: true}
	shop.Settings.AutoAccept = true

	shops := new(MockShopStore)
	shops.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	status, err := newTestAvailability(shops, nil).GetStatus(context.Background(), shop.ID)
	require.NoError(t, err)

	assert.False(t, status.IsOpen)
	assert.Equal(t, availability.ReasonClosed, status.ClosureReason)
	assert.False(t, status.AutoAcceptOrders)
	require.NotNil(t, status.NextOpening)
	assert.Equal(t, time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC), *status.NextOpening)
}

func TestAvailabilityService_ClosedUntilBoundsValidity(t *testing.T) {
	shop := ninetoFiveShop()
	until := testNow.Add(90 * time.Second)
	shop.TemporaryClosure = models.ClosureState{IsClosed: true, ClosedUntil: &until}

	status := newTestAvailability(nil, nil).Evaluate(shop, testNow)
	assert.Equal(t, availability.ReasonTemporarilyClosed, status.ClosureReason)
	require.NotNil(t, status.ValidUntil)
	assert.True(t, status.ValidUntil.Equal(until))

	shop.TemporaryClosure = models.ClosureState{IsClosed: true}
	assert.Nil(t, newTestAvailability(nil, nil).Evaluate(shop, testNow).ValidUntil)
}

func TestAvailabilityService_UsesShopTimezone(t *testing.T) {
	shop := ninetoFiveShop()
	shop.Timezone = "America/Sao_Paulo"

	shops := new(MockShopStore)
	shops.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	svc := newTestAvailability(shops, nil)

	// 11:59 UTC is 08:59 in Sao Paulo.
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 11, 59, 0, 0, time.UTC) }
	status, err := svc.GetStatus(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.False(t, status.IsOpen)
	assert.Equal(t, "America/Sao_Paulo", status.Timezone)

	svc.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }
	status, err = svc.GetStatus(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.True(t, status.IsOpen)
}

func TestAvailabilityService_CacheHit(t *testing.T) {
	shopID := uuid.New()
	cached := &models.ShopStatus{ShopID: shopID, Status: availability.Status{IsOpen: true}}

	shops := new(MockShopStore)
	cache := new(MockStatusStore)
	cache.On("Get", mock.Anything, shopID, testNow).Return(cached, true, nil)

	status, err := newTestAvailability(shops, cache).GetStatus(context.Background(), shopID)
	require.NoError(t, err)
	assert.Same(t, cached, status)
	shops.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAvailabilityService_CacheMissStores(t *testing.T) {
	shop := ninetoFiveShop()
	shops := new(MockShopStore)
	shops.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	cache := new(MockStatusStore)
	cache.On("Get", mock.Anything, shop.ID, testNow).Return(nil, false, errors.New("redis down"))
	cache.On("Set", mock.Anything, mock.MatchedBy(func(s *models.ShopStatus) bool {
		return s.ShopID == shop.ID && s.IsOpen
	})).Return(nil)

	_, err := newTestAvailability(shops, cache).GetStatus(context.Background(), shop.ID)
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestAvailabilityService_NotFound(t *testing.T) {
	shops := new(MockShopStore)
	shops.On("GetByID", mock.Anything, mock.Anything).Return(nil, repo.ErrShopNotFound)

	_, err := newTestAvailability(shops, nil).GetStatus(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repo.ErrShopNotFound)
}

func TestAvailabilityService_RefreshNotifiesWithoutCache(t *testing.T) {
	shop := ninetoFiveShop()
	shops := new(MockShopStore)
	shops.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	notifier := &recordingNotifier{}
	svc := newTestAvailability(shops, nil)
	svc.SetNotifier(notifier)

	status, err := svc.Refresh(context.Background(), shop.ID)
	require.NoError(t, err)
	require.Len(t, notifier.Received(), 1)
	assert.Equal(t, *status, notifier.Received()[0])
}

func TestAvailabilityService_RefreshPublishesThroughCache(t *testing.T) {
	shop := ninetoFiveShop()
	shops := new(MockShopStore)
	shops.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	cache := new(MockStatusStore)
	cache.On("Invalidate", mock.Anything, shop.ID).Return(nil)
	cache.On("Publish", mock.Anything, mock.AnythingOfType("*models.ShopStatus")).Return(nil)

	notifier := &recordingNotifier{}
	svc := newTestAvailability(shops, cache)
	svc.SetNotifier(notifier)

	_, err := svc.Refresh(context.Background(), shop.ID)
	require.NoError(t, err)
	cache.AssertExpectations(t)
	assert.Empty(t, notifier.Received())
}
