package utils

import (
	"fmt"
	"sync"
	"time"
)

const (
	dbDateTimeLayout  = "2006-01-02 15:04:05"
	displayTimeLayout = "02 Jan 2006 15:04 MST"
)

var (
	jakartaOnce sync.Once
	jakartaLoc  *time.Location
)

// JakartaLocation returns the cached Asia/Jakarta location.
func JakartaLocation() *time.Location {
	jakartaOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Jakarta")
		if err != nil {
			// Fallback to a fixed zone if the location database is unavailable.
			loc = time.FixedZone("WIB", 7*60*60)
		}
		jakartaLoc = loc
	})
	return jakartaLoc
}

// NowJakarta returns the current time in the Asia/Jakarta timezone.
func NowJakarta() time.Time {
	return time.Now().In(JakartaLocation())
}

// FormatDateTimeForDB formats a time for DATETIME-like text columns.
func FormatDateTimeForDB(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(JakartaLocation()).Format(dbDateTimeLayout)
}

// FormatDisplayTime formats a time for user-facing messages.
func FormatDisplayTime(t time.Time) string {
	return t.In(JakartaLocation()).Format(displayTimeLayout)
}

// ParseDBDate parses date strings retrieved from the database.
func ParseDBDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	loc := JakartaLocation()
	if ts, err := time.ParseInLocation(dbDateTimeLayout, value, loc); err == nil {
		return ts, nil
	}

	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.In(loc), nil
	}

	return time.Time{}, fmt.Errorf("unsupported db time format: %s", value)
}
