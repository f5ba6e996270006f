// Package birthday computes which contacts to congratulate in the coming days.
package birthday

import (
	"cmp"
	"slices"
	"time"

	"github.com/smileynet/contactbook/internal/contact"
)

// DefaultWindow is the number of days ahead that Upcoming looks by default.
const DefaultWindow = 7

// DateLayout formats congratulation dates.
const DateLayout = "2006.01.02"

// Entry is a named birthday to consider.
type Entry struct {
	Name     string
	Birthday contact.Birthday
}

// Greeting is a contact to congratulate and the day to do it.
type Greeting struct {
	Name string
	Date time.Time
}

// DateString returns the congratulation date as YYYY.MM.DD.
func (g Greeting) DateString() string {
	return g.Date.Format(DateLayout)
}

// Upcoming returns the entries whose birthday falls 1 to window days after
// today, inclusive. Only the occurrence in today's calendar year counts.
// Weekend birthdays roll forward to Monday. Entries without a birthday, and
// 29 February birthdays in common years, are skipped. Results are ordered by
// date, then name.
func Upcoming(today time.Time, window int, entries []Entry) []Greeting {
	day := dateOf(today)
	var out []Greeting
	for _, e := range entries {
		if e.Birthday.IsZero() {
			continue
		}
		occ, ok := occurrence(day.Year(), e.Birthday.Month(), e.Birthday.Day())
		if !ok {
			continue
		}
		diff := daysBetween(day, occ)
		if diff < 1 || diff > window {
			continue
		}
		out = append(out, Greeting{Name: e.Name, Date: rollForward(occ)})
	}
	slices.SortFunc(out, func(a, b Greeting) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// rollForward moves Saturday and Sunday to the following Monday.
func rollForward(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// occurrence returns the birthday in the given year, or false when the date
// does not exist that year.
func occurrence(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// dateOf drops the clock and zone, keeping the calendar date as seen in t's location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
