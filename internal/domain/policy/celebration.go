package policy

import (
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
)

type CelebrationKind string

const (
	CelebrationBirthday        CelebrationKind = "birthday"
	CelebrationWorkAnniversary CelebrationKind = "work_anniversary"
)

type Celebration struct {
	Employee employee.Employee
	Kind     CelebrationKind
	Years    int
}

// Celebrations returns birthdays and work anniversaries on the date of asOf in loc.
// A 29 February date is celebrated on 28 February in common years.
func Celebrations(employees []employee.Employee, asOf time.Time, loc *time.Location) []Celebration {
	today := clock.DateOf(asOf, loc)

	var out []Celebration
	for _, e := range employees {
		if e.DateOfBirth != nil && sameDayOfYear(*e.DateOfBirth, today) {
			out = append(out, Celebration{
				Employee: e,
				Kind:     CelebrationBirthday,
				Years:    today.Year() - e.DateOfBirth.Year(),
			})
		}
		if years := today.Year() - e.DateOfJoining.Year(); years > 0 && sameDayOfYear(e.DateOfJoining, today) {
			out = append(out, Celebration{
				Employee: e,
				Kind:     CelebrationWorkAnniversary,
				Years:    years,
			})
		}
	}
	return out
}

func sameDayOfYear(date, today time.Time) bool {
	month, day := date.Month(), date.Day()
	if month == time.February && day == 29 && !isLeap(today.Year()) {
		day = 28
	}
	return month == today.Month() && day == today.Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
