package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/availability"
	"storefront/internal/repo"
	"storefront/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Reasons attached to infeasible quotes
const (
	ReasonOutsideDeliveryZone   = "outside_delivery_zone"
	ReasonOutsideDeliveryRadius = "outside_delivery_radius"
	ReasonLocationUnknown       = "location_unknown"
)

// DeliveryService prices deliveries from a shop to a customer coordinate
type DeliveryService struct {
	shops      ShopStore
	zones      ZoneStore
	defaultLoc *time.Location
	now        func() time.Time
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(shops ShopStore, zones ZoneStore, defaultLoc *time.Location) *DeliveryService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &DeliveryService{
		shops:      shops,
		zones:      zones,
		defaultLoc: defaultLoc,
		now:        time.Now,
	}
}

// Quote checks the shop's delivery zone, if any, and then prices the delivery.
func (s *DeliveryService) Quote(ctx context.Context, shopID uuid.UUID, customer availability.Coordinate, subtotal float64) (*models.DeliveryQuote, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	quote := &models.DeliveryQuote{ShopID: shop.ID}

	shape, hasZone, err := s.shopZone(ctx, shop)
	if err != nil {
		return nil, err
	}
	if hasZone && !shape.Contains(customer) {
		quote.FeeQuote = availability.FeeQuote{Outcome: availability.FeeInfeasible}
		quote.Reason = ReasonOutsideDeliveryZone
		return quote, nil
	}

	var distance *float64
	if d, ok := availability.DistanceKm(shop.Coordinate(), &customer); ok {
		distance = &d
	}

	quote.DistanceKm = distance
	quote.FeeQuote = availability.ComputeFee(availability.FeeRequest{
		DistanceKm: distance,
		Subtotal:   subtotal,
		At:         s.now().In(shop.Location(s.defaultLoc)),
	}, shop.Settings.PricingConfig())

	if !quote.Feasible() {
		if distance == nil {
			quote.Reason = ReasonLocationUnknown
		} else {
			quote.Reason = ReasonOutsideDeliveryRadius
		}
	}

	return quote, nil
}

// shopZone loads the zone configured for the shop. A missing or inactive zone is skipped
// so the radius rules still apply; any other failure is returned.
func (s *DeliveryService) shopZone(ctx context.Context, shop *models.Shop) (models.ZoneShape, bool, error) {
	zoneID := shop.Settings.DeliveryZoneID
	if zoneID == nil || s.zones == nil {
		return models.ZoneShape{}, false, nil
	}

	zone, err := s.zones.GetByID(ctx, *zoneID)
	if err != nil {
		if errors.Is(err, repo.ErrZoneNotFound) {
			log.Warn().Str("shop_id", shop.ID.String()).Str("zone_id", zoneID.String()).Msg("Configured delivery zone not found")
			return models.ZoneShape{}, false, nil
		}
		return models.ZoneShape{}, false, fmt.Errorf("load delivery zone: %w", err)
	}
	if !zone.IsActive {
		return models.ZoneShape{}, false, nil
	}

	shape, err := zone.Shape()
	if err != nil {
		return models.ZoneShape{}, false, fmt.Errorf("decode delivery zone %s: %w", zoneID, err)
	}
	return shape, true, nil
}
