// Package availability decides whether a shop can take orders right now and what a
// delivery to a coordinate costs. Everything here is pure except ReopenScheduler.
package availability

import (
	"strconv"
	"strings"
)

const (
	minutesPerDay = 24 * 60

	// ClosingSoonMinutes is the window before close in which a shop reports closing soon.
	ClosingSoonMinutes = 30
)

// TimeSlot is one contiguous open window within a day. CloseTime earlier than OpenTime
// means the window runs past midnight.
type TimeSlot struct {
	OpenTime  string `json:"openTime" yaml:"open_time"`
	CloseTime string `json:"closeTime" yaml:"close_time"`
	Is24Hours bool   `json:"is24Hours" yaml:"is_24_hours"`
}

// DaySchedule holds the opening rules of a single weekday.
type DaySchedule struct {
	IsClosed  bool       `json:"isClosed" yaml:"is_closed"`
	TimeSlots []TimeSlot `json:"timeSlots" yaml:"time_slots"`
}

// WindowResult is the verdict for one day at one clock time.
type WindowResult struct {
	IsOpen            bool
	IsClosingSoon     bool
	MinutesUntilClose int
	AllDay            bool
}

// ParseClock converts "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, false
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}

	return h*60 + m, true
}

// ResolveDay evaluates a day's slots against nowMinutes (minutes after midnight).
// A nil day is treated as open.
func ResolveDay(day *DaySchedule, nowMinutes int) WindowResult {
	if day == nil {
		return WindowResult{IsOpen: true}
	}
	if day.IsClosed {
		return WindowResult{}
	}

	for _, slot := range day.TimeSlots {
		if slot.Is24Hours {
			return WindowResult{IsOpen: true, AllDay: true}
		}

		left, ok := minutesLeftInSlot(slot, nowMinutes)
		if !ok {
			continue
		}

		return WindowResult{
			IsOpen:            true,
			IsClosingSoon:     left > 0 && left <= ClosingSoonMinutes,
			MinutesUntilClose: left,
		}
	}

	return WindowResult{}
}

// minutesLeftInSlot reports whether now falls inside slot and how long until it closes.
func minutesLeftInSlot(slot TimeSlot, now int) (int, bool) {
	open, ok := ParseClock(slot.OpenTime)
	if !ok {
		return 0, false
	}
	closeAt, ok := ParseClock(slot.CloseTime)
	if !ok {
		return 0, false
	}

	if closeAt < open {
		switch {
		case now >= open:
			return minutesPerDay - now + closeAt, true
		case now < closeAt:
			return closeAt - now, true
		default:
			return 0, false
		}
	}

	if now >= open && now < closeAt {
		return closeAt - now, true
	}
	return 0, false
}
