package services

import (
	"context"
	"sync"
	"time"

	"storefront/internal/availability"
	"storefront/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReopenMonitorService keeps one ReopenScheduler per temporarily closed shop and republishes
// the shop status when its closure lapses
type ReopenMonitorService struct {
	shops          ShopStore
	availability   *AvailabilityService
	checkInterval  time.Duration
	resyncInterval time.Duration

	mutex      sync.Mutex
	isRunning  bool
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	schedulers map[uuid.UUID]*availability.ReopenScheduler
}

// NewReopenMonitorService creates a new reopen monitor service
func NewReopenMonitorService(shops ShopStore, availabilityService *AvailabilityService, checkInterval time.Duration) *ReopenMonitorService {
	if checkInterval <= 0 {
		checkInterval = availability.DefaultReopenInterval
	}
	return &ReopenMonitorService{
		shops:          shops,
		availability:   availabilityService,
		checkInterval:  checkInterval,
		resyncInterval: 1 * time.Minute,
		schedulers:     make(map[uuid.UUID]*availability.ReopenScheduler),
	}
}

// Start loads every shop with an active closure and keeps the watch list in sync with the
// store until ctx ends or Stop is called
func (rms *ReopenMonitorService) Start(ctx context.Context) {
	rms.mutex.Lock()
	if rms.isRunning {
		rms.mutex.Unlock()
		return
	}
	rms.isRunning = true
	rms.ctx, rms.cancel = context.WithCancel(ctx)
	rms.done = make(chan struct{})
	runCtx, done := rms.ctx, rms.done
	rms.mutex.Unlock()

	log.Info().Dur("check_interval", rms.checkInterval).Msg("Starting reopen monitor")

	go func() {
		defer close(done)

		ticker := time.NewTicker(rms.resyncInterval)
		defer ticker.Stop()

		rms.resync(runCtx)

		for {
			select {
			case <-ticker.C:
				rms.resync(runCtx)
			case <-runCtx.Done():
				rms.stopAll()
				log.Info().Msg("Reopen monitor stopped")
				return
			}
		}
	}()
}

// Stop cancels every scheduler and waits for them to exit
func (rms *ReopenMonitorService) Stop() {
	rms.mutex.Lock()
	if !rms.isRunning {
		rms.mutex.Unlock()
		return
	}
	rms.isRunning = false
	cancel, done := rms.cancel, rms.done
	rms.mutex.Unlock()

	cancel()
	<-done
}

// Watch starts tracking the shop's closure, or hands the new closure to an existing scheduler.
func (rms *ReopenMonitorService) Watch(shop *models.Shop) {
	rms.mutex.Lock()
	if !rms.isRunning {
		rms.mutex.Unlock()
		return
	}
	if existing, ok := rms.schedulers[shop.ID]; ok {
		rms.mutex.Unlock()
		existing.Update(shop.Closure())
		return
	}

	scheduler := availability.NewReopenScheduler(
		shop.Closure(),
		rms.refreshFunc(shop.ID),
		availability.WithInterval(rms.checkInterval),
		availability.WithClock(rms.availability.Now),
		availability.WithLocation(rms.availability.Location(shop)),
		availability.WithErrorHandler(func(err error) {
			log.Error().Err(err).Str("shop_id", shop.ID.String()).Msg("Failed to refresh reopened shop")
		}),
	)
	rms.schedulers[shop.ID] = scheduler
	scheduler.Start(rms.ctx)
	rms.mutex.Unlock()

	log.Debug().Str("shop_id", shop.ID.String()).Msg("Watching temporary closure")
}

// Unwatch stops tracking a shop. It must not be called from a refresh callback.
func (rms *ReopenMonitorService) Unwatch(shopID uuid.UUID) {
	rms.mutex.Lock()
	scheduler, ok := rms.schedulers[shopID]
	delete(rms.schedulers, shopID)
	rms.mutex.Unlock()

	if ok {
		scheduler.Stop()
	}
}

// GetStatus returns monitor information for the admin API
func (rms *ReopenMonitorService) GetStatus() map[string]interface{} {
	rms.mutex.Lock()
	defer rms.mutex.Unlock()

	return map[string]interface{}{
		"is_running":      rms.isRunning,
		"watched_shops":   len(rms.schedulers),
		"check_interval":  rms.checkInterval.String(),
		"resync_interval": rms.resyncInterval.String(),
	}
}

// resync watches newly closed shops and drops schedulers whose closure was lifted.
func (rms *ReopenMonitorService) resync(ctx context.Context) {
	shops, err := rms.shops.ListWithActiveClosures(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Msg("Failed to list shops with active closures")
		}
		return
	}

	active := make(map[uuid.UUID]bool, len(shops))
	for i := range shops {
		shop := &shops[i]
		active[shop.ID] = true

		rms.mutex.Lock()
		_, watched := rms.schedulers[shop.ID]
		rms.mutex.Unlock()
		if !watched {
			rms.Watch(shop)
		}
	}

	var stale []*availability.ReopenScheduler
	rms.mutex.Lock()
	for id, scheduler := range rms.schedulers {
		if !active[id] {
			stale = append(stale, scheduler)
			delete(rms.schedulers, id)
		}
	}
	rms.mutex.Unlock()

	for _, scheduler := range stale {
		scheduler.Stop()
	}
}

func (rms *ReopenMonitorService) stopAll() {
	rms.mutex.Lock()
	schedulers := rms.schedulers
	rms.schedulers = make(map[uuid.UUID]*availability.ReopenScheduler)
	rms.mutex.Unlock()

	for _, scheduler := range schedulers {
		scheduler.Stop()
	}
}

// refreshFunc reloads the shop once its closure lapsed and publishes the new status. The lapsed
// closure is cleared in the store so a same-day reopen time does not re-close the shop tomorrow,
// but only if it is still the stored one; a closure the owner wrote meanwhile is kept.
func (rms *ReopenMonitorService) refreshFunc(shopID uuid.UUID) availability.RefreshFunc {
	return func(ctx context.Context) (availability.TemporaryClosure, error) {
		shop, err := rms.shops.GetByID(ctx, shopID)
		if err != nil {
			return availability.TemporaryClosure{}, err
		}

		closure := shop.Closure()
		now := rms.availability.Now().In(rms.availability.Location(shop))
		if closure.IsClosed && availability.ClosureExpired(closure, now) {
			cleared, err := rms.shops.ClearLapsedClosure(ctx, shopID, shop.TemporaryClosure)
			switch {
			case err != nil:
				log.Error().Err(err).Str("shop_id", shopID.String()).Msg("Failed to clear lapsed closure")
			case cleared:
				shop.TemporaryClosure = models.ClosureState{}
				closure = availability.TemporaryClosure{}
			default:
				log.Info().Str("shop_id", shopID.String()).Msg("Closure changed while lapsing, keeping stored value")
				if shop, err = rms.shops.GetByID(ctx, shopID); err != nil {
					return availability.TemporaryClosure{}, err
				}
				closure = shop.Closure()
			}
		}

		status := rms.availability.RefreshShop(ctx, shop)
		log.Info().
			Str("shop_id", shopID.String()).
			Bool("is_open", status.IsOpen).
			Msg("Temporary closure lapsed")

		return closure, nil
	}
}
