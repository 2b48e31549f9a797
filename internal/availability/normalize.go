package availability

import (
	"strings"
	"time"
)

// BusinessHoursRecord is one stored day entry. Older records carry flat OpenTime/CloseTime
// instead of TimeSlots.
type BusinessHoursRecord struct {
	Day       string     `json:"day" yaml:"day"`
	TimeSlots []TimeSlot `json:"timeSlots,omitempty" yaml:"time_slots,omitempty"`
	IsClosed  bool       `json:"isClosed" yaml:"is_closed"`
	OpenTime  string     `json:"openTime,omitempty" yaml:"open_time,omitempty"`
	CloseTime string     `json:"closeTime,omitempty" yaml:"close_time,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps an English weekday name, in any case, to time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// NormalizeBusinessHours turns stored records into a WeeklySchedule. Unknown day names are
// dropped and the first record for a day wins.
func NormalizeBusinessHours(records []BusinessHoursRecord) WeeklySchedule {
	weekly := make(WeeklySchedule, len(records))
	for _, r := range records {
		wd, ok := ParseWeekday(r.Day)
		if !ok {
			continue
		}
		if _, seen := weekly[wd]; seen {
			continue
		}

		day := DaySchedule{IsClosed: r.IsClosed}
		switch {
		case len(r.TimeSlots) > 0:
			day.TimeSlots = append([]TimeSlot(nil), r.TimeSlots...)
		case r.OpenTime != "" || r.CloseTime != "":
			day.TimeSlots = []TimeSlot{{OpenTime: r.OpenTime, CloseTime: r.CloseTime}}
		}
		weekly[wd] = day
	}
	return weekly
}
