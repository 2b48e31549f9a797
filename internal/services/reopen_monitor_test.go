package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/availability"
	"storefront/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func watchedShops(rms *ReopenMonitorService) int {
	return rms.GetStatus()["watched_shops"].(int)
}

// countResyncs makes ListWithActiveClosures return each result once, then the last one forever.
func countResyncs(shops *MockShopStore, results ...[]models.Shop) *atomic.Int32 {
	var calls atomic.Int32
	shops.On("ListWithActiveClosures", mock.Anything).
		Return(func(context.Context) []models.Shop {
			n := int(calls.Add(1))
			if n > len(results) {
				n = len(results)
			}
			return results[n-1]
		}, nil)
	return &calls
}

func TestReopenMonitor_LapsedClosureIsClearedAndPublished(t *testing.T) {
	shop := ninetoFiveShop()
	until := testNow.Add(-time.Minute)
	lapsed := models.ClosureState{IsClosed: true, ClosedUntil: &until}
	shop.TemporaryClosure = lapsed

	shops := new(MockShopStore)
	shops.On("ListWithActiveClosures", mock.Anything).Return([]models.Shop{*shop}, nil)
	shops.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)
	shops.On("ClearLapsedClosure", mock.Anything, shop.ID, lapsed).Return(true, nil)

	notifier := &recordingNotifier{}
	svc := newTestAvailability(shops, nil)
	svc.SetNotifier(notifier)

	rms := NewReopenMonitorService(shops, svc, 5*time.Millisecond)
	rms.Start(context.Background())
	defer rms.Stop()

	require.Eventually(t, func() bool { return len(notifier.Received()) > 0 }, time.Second, 5*time.Millisecond)

	status := notifier.Received()[0]
	assert.Equal(t, shop.ID, status.ShopID)
	assert.True(t, status.IsOpen)
	shops.AssertCalled(t, "ClearLapsedClosure", mock.Anything, shop.ID, lapsed)
	shops.AssertNotCalled(t, "UpdateTemporaryClosure", mock.Anything, mock.Anything, mock.Anything)

	// The transition is reported once.
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, notifier.Received(), 1)
}

func TestReopenMonitor_OwnerWriteDuringLapseIsKept(t *testing.T) {
	shop := ninetoFiveShop()
	lapsedUntil := testNow.Add(-time.Minute)
	shop.TemporaryClosure = models.ClosureState{IsClosed: true, ClosedUntil: &lapsedUntil}

	// The owner extends the closure between the monitor's read and its clear.
	extended := *shop
	extendedUntil := testNow.Add(2 * time.Hour)
	extended.TemporaryClosure = models.ClosureState{IsClosed: true, ClosedUntil: &extendedUntil}

	shops := new(MockShopStore)
	shops.On("ListWithActiveClosures", mock.Anything).Return([]models.Shop{*shop}, nil)
	shops.On("GetByID", mock.Anything, shop.ID).Return(shop, nil).Once()
	shops.On("GetByID", mock.Anything, shop.ID).Return(&extended, nil)
	shops.On("ClearLapsedClosure", mock.Anything, shop.ID, shop.TemporaryClosure).Return(false, nil)

	notifier := &recordingNotifier{}
	svc := newTestAvailability(shops, nil)
	svc.SetNotifier(notifier)

	rms := NewReopenMonitorService(shops, svc, 5*time.Millisecond)
	rms.Start(context.Background())
	defer rms.Stop()

	require.Eventually(t, func() bool { return len(notifier.Received()) > 0 }, time.Second, 5*time.Millisecond)

	status := notifier.Received()[0]
	assert.False(t, status.IsOpen)
	assert.Equal(t, availability.ReasonTemporarilyClosed, status.ClosureReason)
	shops.AssertNotCalled(t, "UpdateTemporaryClosure", mock.Anything, mock.Anything, mock.Anything)

	require.Eventually(t, func() bool {
		rms.mutex.Lock()
		scheduler := rms.schedulers[shop.ID]
		rms.mutex.Unlock()
		if scheduler == nil {
			return false
		}
		until := scheduler.Closure().ClosedUntil
		return until != nil && until.Equal(extendedUntil)
	}, time.Second, 5*time.Millisecond)
}

func TestReopenMonitor_WatchAndUnwatch(t *testing.T) {
	shop := ninetoFiveShop()
	until := testNow.Add(time.Hour)
	shop.TemporaryClosure = models.ClosureState{IsClosed: true, ClosedUntil: &until}

	shops := new(MockShopStore)
	resyncs := countResyncs(shops, []models.Shop{})

	rms := NewReopenMonitorService(shops, newTestAvailability(shops, nil), 5*time.Millisecond)

	// Not running yet.
	rms.Watch(shop)
	assert.Equal(t, 0, watchedShops(rms))

	rms.Start(context.Background())
	defer rms.Stop()
	require.Eventually(t, func() bool { return resyncs.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	rms.Watch(shop)
	rms.Watch(shop)
	assert.Equal(t, 1, watchedShops(rms))

	rms.Unwatch(shop.ID)
	assert.Equal(t, 0, watchedShops(rms))
	shops.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReopenMonitor_ResyncDropsLiftedClosures(t *testing.T) {
	shop := ninetoFiveShop()
	until := testNow.Add(time.Hour)
	shop.TemporaryClosure = models.ClosureState{IsClosed: true, ClosedUntil: &until}

	shops := new(MockShopStore)
	resyncs := countResyncs(shops, []models.Shop{*shop}, []models.Shop{})

	rms := NewReopenMonitorService(shops, newTestAvailability(shops, nil), 5*time.Millisecond)
	rms.resyncInterval = 10 * time.Millisecond
	rms.Start(context.Background())
	defer rms.Stop()

	require.Eventually(t, func() bool {
		return resyncs.Load() >= 2 && watchedShops(rms) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestReopenMonitor_StopIsIdempotent(t *testing.T) {
	shops := new(MockShopStore)
	shops.On("ListWithActiveClosures", mock.Anything).Return([]models.Shop{}, nil)

	rms := NewReopenMonitorService(shops, newTestAvailability(shops, nil), time.Second)
	rms.Stop()

	rms.Start(context.Background())
	assert.Equal(t, true, rms.GetStatus()["is_running"])

	rms.Stop()
	rms.Stop()
	assert.Equal(t, false, rms.GetStatus()["is_running"])
	assert.Equal(t, 0, watchedShops(rms))
}

func TestReopenMonitor_StopsWithContext(t *testing.T) {
	shop := ninetoFiveShop()
	until := testNow.Add(time.Hour)
	shop.TemporaryClosure = models.ClosureState{IsClosed: true, ClosedUntil: &until}

	shops := new(MockShopStore)
	shops.On("ListWithActiveClosures", mock.Anything).Return([]models.Shop{*shop}, nil)

	rms := NewReopenMonitorService(shops, newTestAvailability(shops, nil), 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	rms.Start(ctx)

	require.Eventually(t, func() bool { return watchedShops(rms) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	require.Eventually(t, func() bool { return watchedShops(rms) == 0 }, time.Second, 5*time.Millisecond)
	rms.Stop()
}
