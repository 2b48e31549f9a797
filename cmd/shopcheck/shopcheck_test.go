package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weekdayFixture = `
name: Corner Bakery
timezone: UTC
location: {lat: 0, lon: 1}
business_hours:
  - {day: monday, time_slots: [{open_time: "09:00", close_time: "17:00"}]}
  - {day: tuesday, time_slots: [{open_time: "09:00", close_time: "17:00"}]}
  - {day: wednesday, time_slots: [{open_time: "09:00", close_time: "17:00"}]}
  - {day: thursday, time_slots: [{open_time: "09:00", close_time: "17:00"}]}
  - {day: friday, open_time: "09:00", close_time: "17:00"}
  - {day: saturday, is_closed: true}
  - {day: sunday, is_closed: true}
pricing:
  base_fee: 10
  rate_per_km_normal: 1
  rate_per_km_peak: 2
  free_delivery_threshold: 200
  max_delivery_distance_km: 150
owner:
  auto_accept: true
`

// 2026-10-19 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2026, time.October, 19, hour, minute, 0, 0, time.UTC)
}

func loadFixture(t *testing.T, extra string) *Fixture {
	t.Helper()
	fx, err := ParseFixture([]byte(weekdayFixture + extra))
	require.NoError(t, err)
	return fx
}

func TestEvaluateSchedule(t *testing.T) {
	fx := loadFixture(t, "")

	t.Run("open mid morning", func(t *testing.T) {
		report, err := Evaluate(fx, monday(10, 0), nil, 0)
		require.NoError(t, err)
		assert.True(t, report.IsOpen)
		assert.False(t, report.IsClosingSoon)
		assert.True(t, report.AutoAcceptOrders)
		assert.Nil(t, report.NextOpening)
		assert.Nil(t, report.Delivery)
		assert.Equal(t, "UTC", report.Timezone)
	})

	t.Run("closing soon", func(t *testing.T) {
		report, err := Evaluate(fx, monday(16, 45), nil, 0)
		require.NoError(t, err)
		assert.True(t, report.IsOpen)
		assert.True(t, report.IsClosingSoon)
	})

	t.Run("closed after hours", func(t *testing.T) {
		report, err := Evaluate(fx, monday(18, 0), nil, 0)
		require.NoError(t, err)
		assert.False(t, report.IsOpen)
		assert.False(t, report.AutoAcceptOrders)
		require.NotNil(t, report.NextOpening)
		assert.Equal(t, time.Date(2026, time.October, 20, 9, 0, 0, 0, time.UTC), *report.NextOpening)
	})

	t.Run("legacy flat hours", func(t *testing.T) {
		friday := time.Date(2026, time.October, 23, 12, 0, 0, 0, time.UTC)
		report, err := Evaluate(fx, friday, nil, 0)
		require.NoError(t, err)
		assert.True(t, report.IsOpen)
	})
}

func TestEvaluateHolidayAndClosure(t *testing.T) {
	holiday := loadFixture(t, `
holidays:
  - {start_date: 2026-10-19, end_date: 2026-10-20}
`)
	report, err := Evaluate(holiday, monday(10, 0), nil, 0)
	require.NoError(t, err)
	assert.False(t, report.IsOpen)
	assert.Equal(t, string(availability.ReasonSpecialHoliday), report.ClosureReason)

	closed := loadFixture(t, `
closure:
  is_closed: true
  closed_until: 2026-10-19T12:00:00Z
`)
	report, err = Evaluate(closed, monday(10, 0), nil, 0)
	require.NoError(t, err)
	assert.False(t, report.IsOpen)
	assert.Equal(t, string(availability.ReasonTemporarilyClosed), report.ClosureReason)

	report, err = Evaluate(closed, monday(13, 0), nil, 0)
	require.NoError(t, err)
	assert.True(t, report.IsOpen)
}

func TestEvaluateDelivery(t *testing.T) {
	fx := loadFixture(t, "")
	customer := &availability.Coordinate{Lat: 0.5, Lon: 1}

	t.Run("normal rate", func(t *testing.T) {
		report, err := Evaluate(fx, monday(10, 0), customer, 50)
		require.NoError(t, err)
		require.NotNil(t, report.Delivery)
		require.NotNil(t, report.Delivery.DistanceKm)
		assert.InDelta(t, 55.6, *report.Delivery.DistanceKm, 0.1)
		assert.Equal(t, string(availability.FeeCharged), report.Delivery.Outcome)
		assert.Equal(t, int64(65), report.Delivery.Amount)
		assert.False(t, report.Delivery.Peak)
		assert.Nil(t, report.Delivery.InZone)
	})

	t.Run("peak rate", func(t *testing.T) {
		report, err := Evaluate(fx, monday(12, 0), customer, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(121), report.Delivery.Amount)
		assert.True(t, report.Delivery.Peak)
	})

	t.Run("free over threshold", func(t *testing.T) {
		report, err := Evaluate(fx, monday(10, 0), customer, 250)
		require.NoError(t, err)
		assert.Equal(t, string(availability.FeeFree), report.Delivery.Outcome)
		assert.Zero(t, report.Delivery.Amount)
	})

	t.Run("beyond max distance", func(t *testing.T) {
		far := &availability.Coordinate{Lat: 3, Lon: 1}
		report, err := Evaluate(fx, monday(10, 0), far, 50)
		require.NoError(t, err)
		assert.Equal(t, string(availability.FeeInfeasible), report.Delivery.Outcome)
	})
}

func TestEvaluateZones(t *testing.T) {
	polygon := loadFixture(t, `
zone:
  name: downtown
  polygon:
    - {lat: -1, lon: 0}
    - {lat: -1, lon: 2}
    - {lat: 1, lon: 2}
    - {lat: 1, lon: 0}
`)

	report, err := Evaluate(polygon, monday(10, 0), &availability.Coordinate{Lat: 0.5, Lon: 1}, 50)
	require.NoError(t, err)
	require.NotNil(t, report.Delivery.InZone)
	assert.True(t, *report.Delivery.InZone)
	assert.Equal(t, string(availability.FeeCharged), report.Delivery.Outcome)

	report, err = Evaluate(polygon, monday(10, 0), &availability.Coordinate{Lat: 1.5, Lon: 1}, 50)
	require.NoError(t, err)
	assert.False(t, *report.Delivery.InZone)
	assert.Equal(t, string(availability.FeeInfeasible), report.Delivery.Outcome)
	assert.Nil(t, report.Delivery.DistanceKm)

	radius := loadFixture(t, `
zone:
  center: {lat: 0, lon: 1}
  radius_km: 10
`)
	report, err = Evaluate(radius, monday(10, 0), &availability.Coordinate{Lat: 0.5, Lon: 1}, 50)
	require.NoError(t, err)
	assert.False(t, *report.Delivery.InZone)
}

func TestParseFixtureErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "name: [unterminated"},
		{"location out of range", "location: {lat: 95, lon: 0}"},
		{"empty zone", "zone: {name: nowhere}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(weekdayFixture), 0o600))

	var out bytes.Buffer
	err := run([]string{"--at", "2026-10-19T10:00:00Z", "--lat", "0.5", "--lon", "1", "--subtotal", "50", path}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "shop: Corner Bakery")
	assert.Contains(t, out.String(), "is_open: true")
	assert.Contains(t, out.String(), "outcome: charged")
	assert.Contains(t, out.String(), "amount: 65")

	out.Reset()
	require.NoError(t, run([]string{"--at", "2026-10-19T18:00:00Z", path}, &out))
	assert.Contains(t, out.String(), "is_open: false")
	assert.NotContains(t, out.String(), "delivery:")
}

func TestRunArguments(t *testing.T) {
	var out bytes.Buffer

	err := run(nil, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)

	err = run([]string{"--at", "tomorrow", "shop.yaml"}, &out)
	assert.ErrorContains(t, err, "invalid --at")

	err = run([]string{"--lat", "120", "--lon", "0", "shop.yaml"}, &out)
	assert.ErrorContains(t, err, "out of range")

	err = run([]string{filepath.Join(t.TempDir(), "missing.yaml")}, &out)
	assert.ErrorContains(t, err, "read fixture")
}
