package policy

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
)

type monthDay struct {
	month time.Month
	day   int
}

// DefaultFixedHolidays recur every year on the same month and day.
var DefaultFixedHolidays = map[monthDay]string{
	{time.January, 26}:  "Republic Day",
	{time.May, 1}:       "May Day",
	{time.August, 15}:   "Independence Day",
	{time.October, 2}:   "Gandhi Jayanti",
	{time.December, 25}: "Christmas",
}

// WeeklyRestDay is the weekly off.
const WeeklyRestDay = time.Sunday

// Calendar answers holiday membership for calendar dates. Build one per request
// from the holidays of the years involved; it is immutable afterwards.
type Calendar struct {
	recurring  map[monthDay]string
	fixed      map[string]string
	restricted map[string]string
}

// NewCalendar combines the default recurring holidays with stored ones.
func NewCalendar(holidays []holiday.Holiday) *Calendar {
	c := &Calendar{
		recurring:  make(map[monthDay]string, len(DefaultFixedHolidays)),
		fixed:      make(map[string]string),
		restricted: make(map[string]string),
	}
	for md, name := range DefaultFixedHolidays {
		c.recurring[md] = name
	}
	for _, h := range holidays {
		key := dateKey(h.Date)
		switch h.Type {
		case holiday.HolidayTypeRestricted:
			c.restricted[key] = h.Name
		default:
			c.fixed[key] = h.Name
		}
	}
	return c
}

// IsHoliday is true on a recurring or declared fixed holiday, or on the weekly rest day.
func (c *Calendar) IsHoliday(date time.Time) bool {
	if date.Weekday() == WeeklyRestDay {
		return true
	}
	_, ok := c.fixedName(date)
	return ok
}

// IsRestrictedHoliday is true only on an exact restricted-holiday date.
func (c *Calendar) IsRestrictedHoliday(date time.Time) bool {
	_, ok := c.restricted[dateKey(date)]
	return ok
}

// HolidayName returns the name of the holiday on date, if any.
func (c *Calendar) HolidayName(date time.Time) (string, bool) {
	if name, ok := c.fixedName(date); ok {
		return name, true
	}
	if name, ok := c.restricted[dateKey(date)]; ok {
		return name, true
	}
	if date.Weekday() == WeeklyRestDay {
		return date.Weekday().String(), true
	}
	return "", false
}

// RecurringHolidays lists the default fixed holidays falling in year, in date order.
func RecurringHolidays(year int) []holiday.Holiday {
	out := make([]holiday.Holiday, 0, len(DefaultFixedHolidays))
	for md, name := range DefaultFixedHolidays {
		out = append(out, holiday.Holiday{
			Name: name,
			Date: time.Date(year, md.month, md.day, 0, 0, 0, 0, time.UTC),
			Type: holiday.HolidayTypeFixed,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// HolidaySource is the read side of the holiday store.
type HolidaySource interface {
	ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error)
}

// LoadCalendar builds a calendar from the stored holidays of every year in [from, to].
func LoadCalendar(ctx context.Context, src HolidaySource, from, to time.Time) (*Calendar, error) {
	var all []holiday.Holiday
	for year := from.Year(); year <= to.Year(); year++ {
		hs, err := src.ListByYear(ctx, year)
		if err != nil {
			return nil, fmt.Errorf("load holidays for %d: %w", year, err)
		}
		all = append(all, hs...)
	}
	return NewCalendar(all), nil
}

func (c *Calendar) fixedName(date time.Time) (string, bool) {
	if name, ok := c.recurring[monthDay{date.Month(), date.Day()}]; ok {
		return name, true
	}
	name, ok := c.fixed[dateKey(date)]
	return name, ok
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
