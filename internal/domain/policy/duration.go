package policy

import (
	"strings"
	"time"
)

type Session string

const (
	SessionFullDay    Session = "full_day"
	SessionFirstHalf  Session = "first_half"
	SessionSecondHalf Session = "second_half"
)

func ParseSession(s string) (Session, bool) {
	switch Session(strings.ToLower(strings.TrimSpace(s))) {
	case "", SessionFullDay:
		return SessionFullDay, true
	case SessionFirstHalf:
		return SessionFirstHalf, true
	case SessionSecondHalf:
		return SessionSecondHalf, true
	}
	return "", false
}

func (s Session) IsHalf() bool {
	return s == SessionFirstHalf || s == SessionSecondHalf
}

// WorkingDays counts the working days in [from, to], skipping holidays.
// A half session covers a single day and counts 0.5.
func WorkingDays(from, to time.Time, session Session, cal *Calendar) float64 {
	if to.Before(from) {
		return 0
	}
	var days float64
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if cal.IsHoliday(d) {
			continue
		}
		days++
	}
	if session.IsHalf() && days > 0 {
		return 0.5
	}
	return days
}
