package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"storefront/internal/availability"

	"github.com/google/uuid"
)

// Shop is a storefront whose availability and delivery pricing are evaluated
type Shop struct {
	BaseModel
	Name      string   `gorm:"not null" json:"name" validate:"required"`
	Timezone  string   `json:"timezone"` // IANA name, empty uses the server default
	Latitude  *float64 `gorm:"column:latitude;type:decimal(10,8)" json:"latitude"`
	Longitude *float64 `gorm:"column:longitude;type:decimal(11,8)" json:"longitude"`

	BusinessHours    BusinessHoursList `gorm:"type:jsonb;default:'[]'" json:"business_hours"`
	TemporaryClosure ClosureState      `gorm:"type:jsonb;default:'{}'" json:"temporary_closure"`
	Settings         ShopSettings      `gorm:"type:jsonb;default:'{}'" json:"settings"`

	// Relationships
	Holidays []SpecialHoliday `gorm:"foreignKey:ShopID" json:"holidays,omitempty"`
}

// SpecialHoliday closes a shop for a range of whole days, both ends inclusive
type SpecialHoliday struct {
	BaseModel
	ShopID    uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"shop_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date" validate:"required"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date" validate:"required"`
	Reason    string    `json:"reason"`
}

// ShopSettings holds the owner-editable delivery and order preferences
type ShopSettings struct {
	BaseDeliveryFee       float64    `json:"base_delivery_fee"`
	PricePerKm            *float64   `json:"price_per_km,omitempty"` // overrides the peak/normal rates
	RatePerKmPeak         float64    `json:"rate_per_km_peak"`
	RatePerKmNormal       float64    `json:"rate_per_km_normal"`
	FreeDeliveryThreshold float64    `json:"free_delivery_threshold"`
	MaxDeliveryDistanceKm float64    `json:"max_delivery_distance_km"`
	DeliveryZoneID        *uuid.UUID `json:"delivery_zone_id,omitempty"`
	AutoAccept            bool       `json:"auto_accept"`
	AutoAcceptUntilClose  bool       `json:"auto_accept_until_close"`
}

// JSONB custom types for PostgreSQL
type BusinessHoursList []availability.BusinessHoursRecord
type ClosureState availability.TemporaryClosure

func (b BusinessHoursList) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *BusinessHoursList) Scan(value interface{}) error {
	if value == nil {
		*b = BusinessHoursList{}
		return nil
	}
	return json.Unmarshal(jsonBytes(value), b)
}

func (c ClosureState) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *ClosureState) Scan(value interface{}) error {
	if value == nil {
		*c = ClosureState{}
		return nil
	}
	return json.Unmarshal(jsonBytes(value), c)
}

func (s ShopSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ShopSettings) Scan(value interface{}) error {
	if value == nil {
		*s = ShopSettings{}
		return nil
	}
	return json.Unmarshal(jsonBytes(value), s)
}

// jsonBytes accepts both []byte and string column values.
func jsonBytes(value interface{}) []byte {
	switch v := value.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return []byte("null")
	}
}

// Location resolves the shop timezone, falling back when it is empty or unknown.
func (s *Shop) Location(fallback *time.Location) *time.Location {
	if s.Timezone != "" {
		if loc, err := time.LoadLocation(s.Timezone); err == nil {
			return loc
		}
	}
	if fallback == nil {
		return time.UTC
	}
	return fallback
}

// Coordinate returns the shop position, or nil when it has not been geocoded.
func (s *Shop) Coordinate() *availability.Coordinate {
	if s.Latitude == nil || s.Longitude == nil {
		return nil
	}
	return &availability.Coordinate{Lat: *s.Latitude, Lon: *s.Longitude}
}

// Closure returns the stored temporary closure as an engine value.
func (s *Shop) Closure() availability.TemporaryClosure {
	return availability.TemporaryClosure(s.TemporaryClosure)
}

// Weekly normalizes the stored business hours.
func (s *Shop) Weekly() availability.WeeklySchedule {
	return availability.NormalizeBusinessHours(s.BusinessHours)
}

// ToState assembles the evaluator input. Holidays must be preloaded.
func (s *Shop) ToState() availability.ShopState {
	holidays := make([]availability.SpecialHoliday, 0, len(s.Holidays))
	for _, h := range s.Holidays {
		holidays = append(holidays, h.ToHoliday())
	}

	return availability.ShopState{
		Weekly:   s.Weekly(),
		Closure:  s.Closure(),
		Holidays: holidays,
	}
}

// ToHoliday converts the stored row into an engine value.
func (h SpecialHoliday) ToHoliday() availability.SpecialHoliday {
	return availability.SpecialHoliday{StartDate: h.StartDate, EndDate: h.EndDate}
}

// PricingConfig maps the settings onto the fee calculator input.
func (s ShopSettings) PricingConfig() availability.PricingConfig {
	return availability.PricingConfig{
		BaseFee:               s.BaseDeliveryFee,
		RatePerKmPeak:         s.RatePerKmPeak,
		RatePerKmNormal:       s.RatePerKmNormal,
		FreeDeliveryThreshold: s.FreeDeliveryThreshold,
		MaxDeliveryDistanceKm: s.MaxDeliveryDistanceKm,
		OverrideRatePerKm:     s.PricePerKm,
	}
}

func (s ShopSettings) OwnerSettings() availability.OwnerSettings {
	return availability.OwnerSettings{
		AutoAccept:           s.AutoAccept,
		AutoAcceptUntilClose: s.AutoAcceptUntilClose,
	}
}
