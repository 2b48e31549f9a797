package models

import (
	"time"

	"storefront/internal/availability"

	"github.com/google/uuid"
)

// ShopStatus is the availability verdict served to clients and pushed on change
type ShopStatus struct {
	ShopID uuid.UUID `json:"shopId"`
	availability.Status
	NextOpening      *time.Time `json:"nextOpening,omitempty"`
	AutoAcceptOrders bool       `json:"autoAcceptOrders"`
	Timezone         string     `json:"timezone"`
	EvaluatedAt      time.Time  `json:"evaluatedAt"`
	// ValidUntil is set when the verdict flips at a known instant inside the minute,
	// such as a closed-until timestamp.
	ValidUntil *time.Time `json:"validUntil,omitempty"`
}

// DeliveryQuote is the priced answer for one customer coordinate
type DeliveryQuote struct {
	ShopID     uuid.UUID `json:"shopId"`
	DistanceKm *float64  `json:"distanceKm"`
	availability.FeeQuote
	Reason string `json:"reason,omitempty"`
}
