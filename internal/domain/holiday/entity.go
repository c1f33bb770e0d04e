package holiday

import (
	"strings"
	"time"
)

type Holiday struct {
	ID        string
	Name      string
	Date      time.Time // calendar date, UTC midnight
	Type      HolidayType
	Note      *string
	CreatedAt time.Time
}

type HolidayType string

const (
	// HolidayTypeFixed is a declared company holiday: nobody works.
	HolidayTypeFixed HolidayType = "fixed"
	// HolidayTypeRestricted is a floating holiday an employee may opt into.
	HolidayTypeRestricted HolidayType = "restricted"
)

// ParseHolidayType is lenient: sheets use many spellings for restricted holidays.
// Anything unrecognised is a fixed holiday.
func ParseHolidayType(s string) HolidayType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "restricted", "restricted holiday", "rh", "optional", "floating":
		return HolidayTypeRestricted
	default:
		return HolidayTypeFixed
	}
}
