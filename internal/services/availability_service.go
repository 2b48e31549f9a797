package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/availability"
	"storefront/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AvailabilityService evaluates whether shops can take orders
type AvailabilityService struct {
	shops      ShopStore
	cache      StatusStore
	defaultLoc *time.Location
	now        func() time.Time

	mu       sync.RWMutex
	notifier StatusNotifier
}

// NewAvailabilityService creates a new availability service. cache may be nil.
func NewAvailabilityService(shops ShopStore, cache StatusStore, defaultLoc *time.Location) *AvailabilityService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &AvailabilityService{
		shops:      shops,
		cache:      cache,
		defaultLoc: defaultLoc,
		now:        time.Now,
	}
}

// SetNotifier registers the local push channel used when no cache fans out changes.
func (s *AvailabilityService) SetNotifier(n StatusNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// GetStatus returns the current status of a shop, served from cache when fresh.
func (s *AvailabilityService) GetStatus(ctx context.Context, shopID uuid.UUID) (*models.ShopStatus, error) {
	now := s.now()

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, shopID, now)
		if err != nil {
			log.Warn().Err(err).Str("shop_id", shopID.String()).Msg("Status cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	status := s.Evaluate(shop, now)

	if s.cache != nil {
		if err := s.cache.Set(ctx, status); err != nil {
			log.Warn().Err(err).Str("shop_id", shopID.String()).Msg("Status cache write failed")
		}
	}

	return status, nil
}

// Evaluate computes the status of a loaded shop at now, read in the shop's timezone.
func (s *AvailabilityService) Evaluate(shop *models.Shop, now time.Time) *models.ShopStatus {
	loc := shop.Location(s.defaultLoc)
	local := now.In(loc)
	state := shop.ToState()

	verdict := availability.Resolve(state, local)
	status := &models.ShopStatus{
		ShopID:           shop.ID,
		Status:           verdict,
		AutoAcceptOrders: availability.AutoAcceptOrders(verdict, shop.Settings.OwnerSettings()),
		Timezone:         loc.String(),
		EvaluatedAt:      now,
	}

	if c := state.Closure; verdict.ClosureReason == availability.ReasonTemporarilyClosed && c.ClosedUntil != nil {
		until := *c.ClosedUntil
		status.ValidUntil = &until
	}

	if !verdict.IsOpen {
		if next, ok := availability.NextOpening(state.Weekly, local); ok {
			status.NextOpening = &next
		}
	}

	return status
}

// Refresh reloads the shop, re-evaluates it and publishes the result.
func (s *AvailabilityService) Refresh(ctx context.Context, shopID uuid.UUID) (*models.ShopStatus, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("reload shop %s: %w", shopID, err)
	}
	return s.RefreshShop(ctx, shop), nil
}

// RefreshShop drops any cached status for an already loaded shop and publishes a fresh one.
func (s *AvailabilityService) RefreshShop(ctx context.Context, shop *models.Shop) *models.ShopStatus {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, shop.ID); err != nil {
			log.Warn().Err(err).Str("shop_id", shop.ID.String()).Msg("Status cache invalidate failed")
		}
	}

	status := s.Evaluate(shop, s.now())
	s.publish(ctx, status)
	return status
}

// Location returns the timezone used to evaluate shop.
func (s *AvailabilityService) Location(shop *models.Shop) *time.Location {
	return shop.Location(s.defaultLoc)
}

// Now returns the service clock.
func (s *AvailabilityService) Now() time.Time {
	return s.now()
}

func (s *AvailabilityService) publish(ctx context.Context, status *models.ShopStatus) {
	if s.cache != nil {
		if err := s.cache.Publish(ctx, status); err != nil {
			log.Error().Err(err).Str("shop_id", status.ShopID.String()).Msg("Failed to publish status change")
		}
		return
	}

	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()
	if n != nil {
		n.BroadcastShopStatus(status)
	}
}
