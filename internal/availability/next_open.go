package availability

import "time"

// NextOpening finds the earliest slot start strictly after now within the coming week.
// Holidays and closures are not consulted; the result is informational.
func NextOpening(weekly WeeklySchedule, now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	loc := now.Location()

	for offset := 0; offset <= 7; offset++ {
		midnight := time.Date(y, m, d+offset, 0, 0, 0, 0, loc)
		day := weekly.Day(midnight.Weekday())
		if day == nil {
			if midnight.After(now) {
				return midnight, true
			}
			continue
		}
		if day.IsClosed {
			continue
		}

		var best time.Time
		for _, slot := range day.TimeSlots {
			start := midnight
			if !slot.Is24Hours {
				open, ok := ParseClock(slot.OpenTime)
				if !ok {
					continue
				}
				start = time.Date(y, m, d+offset, open/60, open%60, 0, 0, loc)
			}
			if start.After(now) && (best.IsZero() || start.Before(best)) {
				best = start
			}
		}
		if !best.IsZero() {
			return best, true
		}
	}

	return time.Time{}, false
}

// OwnerSettings are per-shop preferences that depend on the schedule.
type OwnerSettings struct {
	AutoAccept           bool `json:"autoAccept" yaml:"auto_accept"`
	AutoAcceptUntilClose bool `json:"autoAcceptUntilClose" yaml:"auto_accept_until_close"`
}

// AutoAcceptOrders reports whether incoming orders may be accepted without the owner.
// AutoAcceptUntilClose stops accepting once the shop is closing soon.
func AutoAcceptOrders(status Status, s OwnerSettings) bool {
	if !status.IsOpen {
		return false
	}
	if s.AutoAccept {
		return true
	}
	return s.AutoAcceptUntilClose && !status.IsClosingSoon
}
