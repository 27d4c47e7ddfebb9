// ABOUTME: Day identifiers for local persistence and backend addressing.
// ABOUTME: LocalDayKey is a calendar date string, DayStamp a rolling numeric day id.
package daykey

import (
	"fmt"
	"time"
)

// Layout is the format of a local day key.
const Layout = "2006-01-02"

const (
	microsPerDay = int64(24 * time.Hour / time.Microsecond)
	stampWindow  = int64(1_000_000)
)

// ParseError reports a malformed YYYY-MM-DD date string.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LocalDayKey formats the calendar date of now in now's location.
// Values from time.Now() carry the local zone, so this is the local day.
func LocalDayKey(now time.Time) string {
	return now.Format(Layout)
}

// DayStamp returns the backend day identifier for t: whole UTC days since
// the epoch, reduced modulo one million.
func DayStamp(t time.Time) int64 {
	micros := t.UnixMicro()
	days := micros / microsPerDay
	if micros%microsPerDay < 0 {
		days--
	}
	return ((days % stampWindow) + stampWindow) % stampWindow
}

// Parse parses a YYYY-MM-DD string as midnight in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Err: err}
	}
	return t, nil
}

// DateStringToDayStamp converts a YYYY-MM-DD string, read as local
// midnight, to a DayStamp.
func DateStringToDayStamp(s string) (int64, error) {
	return DateStringToDayStampIn(s, time.Local)
}

// DateStringToDayStampIn is DateStringToDayStamp with an explicit location.
func DateStringToDayStampIn(s string, loc *time.Location) (int64, error) {
	t, err := Parse(s, loc)
	if err != nil {
		return 0, err
	}
	return DayStamp(t), nil
}

// IsFuture reports whether the day key s is after the day containing now.
// Keys compare lexically because the layout is zero padded.
func IsFuture(s string, now time.Time) bool {
	return s > LocalDayKey(now)
}

// StampDate returns the UTC calendar date of a DayStamp within the current
// window. Stamps are only unique within one million days of the epoch.
func StampDate(stamp int64) string {
	return time.Unix(stamp*int64(24*time.Hour/time.Second), 0).UTC().Format(Layout)
}
