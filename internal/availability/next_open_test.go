package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdaysOnly() WeeklySchedule {
	weekly := WeeklySchedule{
		time.Saturday: {IsClosed: true},
		time.Sunday:   {IsClosed: true},
	}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		weekly[wd] = DaySchedule{TimeSlots: []TimeSlot{
			{OpenTime: "09:00", CloseTime: "12:00"},
			{OpenTime: "14:00", CloseTime: "18:00"},
		}}
	}
	return weekly
}

func TestNextOpening(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before first slot", monday(8, 0), monday(9, 0)},
		{"lunch break", monday(12, 30), monday(14, 0)},
		{"slot start is strictly after now", monday(14, 0), time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)},
		{"friday evening skips weekend", time.Date(2024, 6, 14, 19, 0, 0, 0, time.UTC), time.Date(2024, 6, 17, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextOpening(weekdaysOnly(), tt.now)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextOpening_SameWeekdayNextWeek(t *testing.T) {
	weekly := WeeklySchedule{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		weekly[wd] = DaySchedule{IsClosed: true}
	}
	weekly[time.Monday] = DaySchedule{TimeSlots: []TimeSlot{{OpenTime: "09:00", CloseTime: "17:00"}}}

	got, ok := NextOpening(weekly, monday(18, 0))
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 17, 9, 0, 0, 0, time.UTC), got)
}

func TestNextOpening_MissingDayOpensAtMidnight(t *testing.T) {
	weekly := WeeklySchedule{time.Monday: {IsClosed: true}}

	got, ok := NextOpening(weekly, monday(10, 0))
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestNextOpening_AllDaySlot(t *testing.T) {
	weekly := WeeklySchedule{
		time.Monday:  {IsClosed: true},
		time.Tuesday: {TimeSlots: []TimeSlot{{Is24Hours: true}}},
	}

	got, ok := NextOpening(weekly, monday(10, 0))
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestNextOpening_NeverOpens(t *testing.T) {
	weekly := WeeklySchedule{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		weekly[wd] = DaySchedule{IsClosed: true}
	}

	_, ok := NextOpening(weekly, monday(10, 0))
	assert.False(t, ok)
}

func TestNextOpening_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, loc)

	got, ok := NextOpening(weekdaysOnly(), now)
	require.True(t, ok)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 9, got.Hour())
}

func TestAutoAcceptOrders(t *testing.T) {
	open := Status{IsOpen: true}
	closingSoon := Status{IsOpen: true, IsClosingSoon: true}
	closed := Status{ClosureReason: ReasonTemporarilyClosed}

	assert.False(t, AutoAcceptOrders(open, OwnerSettings{}))
	assert.True(t, AutoAcceptOrders(open, OwnerSettings{AutoAccept: true}))
	assert.True(t, AutoAcceptOrders(closingSoon, OwnerSettings{AutoAccept: true}))
	assert.True(t, AutoAcceptOrders(open, OwnerSettings{AutoAcceptUntilClose: true}))
	assert.False(t, AutoAcceptOrders(closingSoon, OwnerSettings{AutoAcceptUntilClose: true}))
	assert.False(t, AutoAcceptOrders(closed, OwnerSettings{AutoAccept: true}))
}
