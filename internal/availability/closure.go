package availability

import "time"

// ClosureReason explains why a shop is closed outside its weekly schedule.
type ClosureReason string

const (
	ReasonNone              ClosureReason = ""
	ReasonSpecialHoliday    ClosureReason = "special_holiday"
	ReasonTemporarilyClosed ClosureReason = "temporarily_closed"
	ReasonClosed            ClosureReason = "closed"
)

// closedUntilGrace absorbs clock skew between the writer of ClosedUntil and this process.
const closedUntilGrace = time.Second

// WeeklySchedule maps weekdays to their opening rules. Missing days are legal.
type WeeklySchedule map[time.Weekday]DaySchedule

// Day returns the schedule for wd, or nil when none is stored.
func (w WeeklySchedule) Day(wd time.Weekday) *DaySchedule {
	day, ok := w[wd]
	if !ok {
		return nil
	}
	return &day
}

// TemporaryClosure is an ad-hoc override. With IsClosed set and neither ClosedUntil nor
// ReopenTime present, the shop stays closed until someone lifts it.
type TemporaryClosure struct {
	IsClosed    bool       `json:"isClosed" yaml:"is_closed"`
	ClosedUntil *time.Time `json:"closedUntil,omitempty" yaml:"closed_until,omitempty"`
	ReopenTime  string     `json:"reopenTime,omitempty" yaml:"reopen_time,omitempty"`
}

// SpecialHoliday closes the shop for whole calendar days, both ends inclusive.
type SpecialHoliday struct {
	StartDate time.Time `json:"startDate" yaml:"start_date"`
	EndDate   time.Time `json:"endDate" yaml:"end_date"`
}

// Covers reports whether the calendar date of t lies within the holiday.
func (h SpecialHoliday) Covers(t time.Time) bool {
	day := civilDate(t)
	return day >= civilDate(h.StartDate) && day <= civilDate(h.EndDate)
}

// ShopState is everything the evaluator needs to know about a shop.
type ShopState struct {
	Weekly   WeeklySchedule
	Closure  TemporaryClosure
	Holidays []SpecialHoliday
}

// Status is the consolidated open/closed verdict exposed to consumers.
type Status struct {
	IsOpen            bool          `json:"isOpen"`
	IsClosingSoon     bool          `json:"isClosingSoon"`
	ClosureReason     ClosureReason `json:"closureReason,omitempty"`
	MinutesUntilClose int           `json:"minutesUntilClose,omitempty"`
}

// Resolve applies holidays, then the temporary closure, then the weekly schedule.
// now is read in its own location; convert it to the shop's timezone first.
func Resolve(state ShopState, now time.Time) Status {
	for _, h := range state.Holidays {
		if h.Covers(now) {
			return Status{ClosureReason: ReasonSpecialHoliday}
		}
	}

	if c := state.Closure; c.IsClosed {
		switch {
		case c.ClosedUntil != nil || hasReopenTime(c):
			if !ClosureExpired(c, now) {
				return Status{ClosureReason: ReasonTemporarilyClosed}
			}
		default:
			return Status{ClosureReason: ReasonClosed}
		}
	}

	w := ResolveDay(state.Weekly.Day(now.Weekday()), ClockMinutes(now))
	return Status{
		IsOpen:            w.IsOpen,
		IsClosingSoon:     w.IsClosingSoon,
		MinutesUntilClose: w.MinutesUntilClose,
	}
}

// ClosureExpired reports whether a timed closure no longer applies at now.
// ClosedUntil wins over ReopenTime; ReopenTime is read as today's clock time, so once it
// passes the closure is over for the rest of the day. An indefinite closure never expires,
// and a closure that is not closed is trivially expired.
func ClosureExpired(c TemporaryClosure, now time.Time) bool {
	if !c.IsClosed {
		return true
	}
	if c.ClosedUntil != nil {
		return now.After(c.ClosedUntil.Add(closedUntilGrace))
	}
	if reopen, ok := ParseClock(c.ReopenTime); ok {
		return ClockMinutes(now) >= reopen
	}
	return false
}

// hasReopenTime treats an unparsable reopen time as absent, which leaves the closure indefinite.
func hasReopenTime(c TemporaryClosure) bool {
	_, ok := ParseClock(c.ReopenTime)
	return ok
}

// ClockMinutes returns the minutes elapsed since midnight in t's location.
func ClockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func civilDate(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
