package availability

import (
	"math"
	"time"
)

// Peak delivery window, local hours [PeakStartHour, PeakEndHour).
const (
	PeakStartHour = 11
	PeakEndHour   = 13
)

// FeeOutcome classifies a delivery quote.
type FeeOutcome string

const (
	FeeCharged    FeeOutcome = "charged"
	FeeFree       FeeOutcome = "free"
	FeeInfeasible FeeOutcome = "infeasible"
)

// PricingConfig holds a shop's delivery pricing. FreeDeliveryThreshold <= 0 disables free
// delivery and MaxDeliveryDistanceKm <= 0 means there is no radius limit.
type PricingConfig struct {
	BaseFee               float64  `json:"baseFee" yaml:"base_fee"`
	RatePerKmPeak         float64  `json:"ratePerKmPeak" yaml:"rate_per_km_peak"`
	RatePerKmNormal       float64  `json:"ratePerKmNormal" yaml:"rate_per_km_normal"`
	FreeDeliveryThreshold float64  `json:"freeDeliveryThreshold" yaml:"free_delivery_threshold"`
	MaxDeliveryDistanceKm float64  `json:"maxDeliveryDistanceKm" yaml:"max_delivery_distance_km"`
	OverrideRatePerKm     *float64 `json:"overrideRatePerKm,omitempty" yaml:"override_rate_per_km,omitempty"`
}

// FeeRequest describes one delivery to price. A nil DistanceKm means the distance is unknown.
type FeeRequest struct {
	DistanceKm *float64
	Subtotal   float64
	At         time.Time
}

// FeeQuote is the priced result. Amount is only meaningful for FeeCharged.
type FeeQuote struct {
	Outcome   FeeOutcome `json:"outcome"`
	Amount    int64      `json:"amount"`
	RatePerKm float64    `json:"ratePerKm,omitempty"`
	Peak      bool       `json:"peak,omitempty"`
}

// Feasible reports whether checkout may proceed with this quote.
func (q FeeQuote) Feasible() bool {
	return q.Outcome != FeeInfeasible
}

// IsPeakHour reports whether t falls in the local peak delivery window.
func IsPeakHour(t time.Time) bool {
	h := t.Hour()
	return h >= PeakStartHour && h < PeakEndHour
}

// ComputeFee prices a delivery. Free delivery is checked before the distance limit, and
// the fee is floored so billing is reproducible.
func ComputeFee(req FeeRequest, cfg PricingConfig) FeeQuote {
	// Zero is the unset value for shop settings, so a threshold <= 0 turns free delivery off.
	if cfg.FreeDeliveryThreshold > 0 && req.Subtotal > cfg.FreeDeliveryThreshold {
		return FeeQuote{Outcome: FeeFree}
	}

	if req.DistanceKm == nil {
		return FeeQuote{Outcome: FeeInfeasible}
	}
	distance := *req.DistanceKm
	if math.IsNaN(distance) || distance < 0 {
		return FeeQuote{Outcome: FeeInfeasible}
	}
	if cfg.MaxDeliveryDistanceKm > 0 && distance > cfg.MaxDeliveryDistanceKm {
		return FeeQuote{Outcome: FeeInfeasible}
	}

	peak := IsPeakHour(req.At)
	rate := cfg.RatePerKmNormal
	if peak {
		rate = cfg.RatePerKmPeak
	}
	if cfg.OverrideRatePerKm != nil {
		rate = *cfg.OverrideRatePerKm
		peak = false
	}

	return FeeQuote{
		Outcome:   FeeCharged,
		Amount:    int64(math.Floor(cfg.BaseFee + distance*rate)),
		RatePerKm: rate,
		Peak:      peak,
	}
}
