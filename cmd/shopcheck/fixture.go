package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"storefront/internal/availability"
	"storefront/pkg/models"

	"gopkg.in/yaml.v3"
)

// Fixture describes one shop the way an owner would fill it in.
type Fixture struct {
	Name          string                             `yaml:"name"`
	Timezone      string                             `yaml:"timezone"`
	Location      *availability.Coordinate           `yaml:"location"`
	BusinessHours []availability.BusinessHoursRecord `yaml:"business_hours"`
	Closure       availability.TemporaryClosure      `yaml:"closure"`
	Holidays      []availability.SpecialHoliday      `yaml:"holidays"`
	Pricing       availability.PricingConfig         `yaml:"pricing"`
	Owner         availability.OwnerSettings         `yaml:"owner"`
	Zone          *ZoneFixture                       `yaml:"zone"`
}

// ZoneFixture is either a polygon or a center with a radius.
type ZoneFixture struct {
	Name     string                    `yaml:"name"`
	Polygon  []availability.Coordinate `yaml:"polygon"`
	Center   *availability.Coordinate  `yaml:"center"`
	RadiusKm float64                   `yaml:"radius_km"`
}

// LoadFixture reads and decodes a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if fx.Location != nil && !fx.Location.Valid() {
		return nil, errors.New("fixture location is out of range")
	}
	if fx.Zone != nil && len(fx.Zone.Polygon) == 0 && fx.Zone.Center == nil {
		return nil, errors.New("zone needs a polygon or a center")
	}
	return &fx, nil
}

// Shop converts the fixture into the stored model so it is evaluated like a real shop.
func (fx *Fixture) Shop() *models.Shop {
	shop := &models.Shop{
		Name:             fx.Name,
		Timezone:         fx.Timezone,
		BusinessHours:    models.BusinessHoursList(fx.BusinessHours),
		TemporaryClosure: models.ClosureState(fx.Closure),
		Settings: models.ShopSettings{
			BaseDeliveryFee:       fx.Pricing.BaseFee,
			PricePerKm:            fx.Pricing.OverrideRatePerKm,
			RatePerKmPeak:         fx.Pricing.RatePerKmPeak,
			RatePerKmNormal:       fx.Pricing.RatePerKmNormal,
			FreeDeliveryThreshold: fx.Pricing.FreeDeliveryThreshold,
			MaxDeliveryDistanceKm: fx.Pricing.MaxDeliveryDistanceKm,
			AutoAccept:            fx.Owner.AutoAccept,
			AutoAcceptUntilClose:  fx.Owner.AutoAcceptUntilClose,
		},
	}
	if fx.Location != nil {
		lat, lon := fx.Location.Lat, fx.Location.Lon
		shop.Latitude, shop.Longitude = &lat, &lon
	}
	for _, h := range fx.Holidays {
		shop.Holidays = append(shop.Holidays, models.SpecialHoliday{
			StartDate: h.StartDate,
			EndDate:   h.EndDate,
		})
	}
	return shop
}

// DeliveryZone encodes the zone as GeoJSON, or returns nil when the fixture has none.
func (fx *Fixture) DeliveryZone() (*models.DeliveryZone, error) {
	if fx.Zone == nil {
		return nil, nil
	}

	zone := &models.DeliveryZone{Name: fx.Zone.Name, IsActive: true}
	var err error
	if len(fx.Zone.Polygon) > 0 {
		zone.Geometry, err = models.EncodePolygon(fx.Zone.Polygon)
	} else {
		zone.Geometry, err = models.EncodePoint(*fx.Zone.Center)
		zone.RadiusKm = fx.Zone.RadiusKm
	}
	if err != nil {
		return nil, err
	}
	return zone, nil
}

// Report is what shopcheck prints.
type Report struct {
	Shop              string     `yaml:"shop"`
	EvaluatedAt       time.Time  `yaml:"evaluated_at"`
	Timezone          string     `yaml:"timezone"`
	IsOpen            bool       `yaml:"is_open"`
	IsClosingSoon     bool       `yaml:"is_closing_soon"`
	ClosureReason     string     `yaml:"closure_reason,omitempty"`
	MinutesUntilClose int        `yaml:"minutes_until_close,omitempty"`
	NextOpening       *time.Time `yaml:"next_opening,omitempty"`
	AutoAcceptOrders  bool       `yaml:"auto_accept_orders"`
	Delivery          *Delivery  `yaml:"delivery,omitempty"`
}

// Delivery is the quote part of the report, present when a customer point was given.
type Delivery struct {
	InZone     *bool    `yaml:"in_zone,omitempty"`
	DistanceKm *float64 `yaml:"distance_km,omitempty"`
	Outcome    string   `yaml:"outcome"`
	Amount     int64    `yaml:"amount"`
	RatePerKm  float64  `yaml:"rate_per_km,omitempty"`
	Peak       bool     `yaml:"peak,omitempty"`
}

// Evaluate runs the availability and pricing rules for the fixture at the given instant.
// customer may be nil to skip the delivery quote.
func Evaluate(fx *Fixture, at time.Time, customer *availability.Coordinate, subtotal float64) (*Report, error) {
	shop := fx.Shop()
	loc := shop.Location(time.UTC)
	local := at.In(loc)
	state := shop.ToState()

	verdict := availability.Resolve(state, local)
	report := &Report{
		Shop:              shop.Name,
		EvaluatedAt:       local,
		Timezone:          loc.String(),
		IsOpen:            verdict.IsOpen,
		IsClosingSoon:     verdict.IsClosingSoon,
		ClosureReason:     string(verdict.ClosureReason),
		MinutesUntilClose: verdict.MinutesUntilClose,
		AutoAcceptOrders:  availability.AutoAcceptOrders(verdict, shop.Settings.OwnerSettings()),
	}
	if !verdict.IsOpen {
		if next, ok := availability.NextOpening(state.Weekly, local); ok {
			report.NextOpening = &next
		}
	}

	if customer == nil {
		return report, nil
	}

	delivery := &Delivery{}
	report.Delivery = delivery

	zone, err := fx.DeliveryZone()
	if err != nil {
		return nil, err
	}
	if zone != nil {
		shape, err := zone.Shape()
		if err != nil {
			return nil, err
		}
		inside := shape.Contains(*customer)
		delivery.InZone = &inside
		if !inside {
			delivery.Outcome = string(availability.FeeInfeasible)
			return report, nil
		}
	}

	if d, ok := availability.DistanceKm(shop.Coordinate(), customer); ok {
		delivery.DistanceKm = &d
	}
	quote := availability.ComputeFee(availability.FeeRequest{
		DistanceKm: delivery.DistanceKm,
		Subtotal:   subtotal,
		At:         local,
	}, shop.Settings.PricingConfig())

	delivery.Outcome = string(quote.Outcome)
	delivery.Amount = quote.Amount
	delivery.RatePerKm = quote.RatePerKm
	delivery.Peak = quote.Peak
	return report, nil
}
