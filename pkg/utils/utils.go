package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// DateLayout is the wire format for contract dates.
const DateLayout = "2006-01-02"

// AddYearsClamped adds whole calendar years, clamping to the last valid day
// of the month instead of normalizing forward. Feb 29 + 1 year gives Feb 28,
// not Mar 1.
func AddYearsClamped(t time.Time, years int) time.Time {
	y, m, d := t.Date()
	y += years

	last := daysInMonth(y, m)
	if d > last {
		d = last
	}

	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate parses a "2006-01-02" date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// GenerateContractNumber produces an HD-YYYYMM-XXXX business key. Uniqueness
// is enforced by the contracts table, not here.
func GenerateContractNumber(now time.Time) string {
	return fmt.Sprintf("HD-%s-%04d", now.Format("200601"), rand.Intn(10000))
}

// DaysSince returns the number of whole days between then and now.
func DaysSince(then, now time.Time) int {
	return int(now.Sub(then).Hours() / 24)
}
