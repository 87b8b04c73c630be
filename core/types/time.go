package types

import (
	"fmt"
	"strings"
	"time"
)

const (
	millisPerSecond = 1000
	millisPerHour   = 3600 * millisPerSecond
)

// HoursDecimal is a duration that serializes as a decimal amount of hours,
// the OCPI wire representation for charging and parking time.
type HoursDecimal struct {
	d time.Duration
}

// HoursFromDuration wraps a duration.
func HoursFromDuration(d time.Duration) HoursDecimal {
	return HoursDecimal{d}
}

// HoursZero returns a zero duration.
func HoursZero() HoursDecimal {
	return HoursDecimal{}
}

// HoursFromNumber converts a decimal amount of hours. Sub-millisecond
// fractions are not representable in OCPI documents and are rejected.
func HoursFromNumber(hours Number) (HoursDecimal, error) {
	millis := hours.Mul(NumberFromInt(millisPerHour))
	if !millis.Sub(NumberFromInt(millis.IntPart())).IsZero() {
		return HoursDecimal{}, fmt.Errorf("duration %s h has sub-millisecond precision", hours)
	}
	return HoursDecimal{time.Duration(millis.IntPart()) * time.Millisecond}, nil
}

// HoursFromSecondsNumber converts a decimal amount of seconds.
func HoursFromSecondsNumber(seconds Number) (HoursDecimal, error) {
	millis := seconds.Mul(NumberFromInt(millisPerSecond))
	if !millis.Sub(NumberFromInt(millis.IntPart())).IsZero() {
		return HoursDecimal{}, fmt.Errorf("duration %s s has sub-millisecond precision", seconds)
	}
	return HoursDecimal{time.Duration(millis.IntPart()) * time.Millisecond}, nil
}

// Duration returns the wrapped duration.
func (h HoursDecimal) Duration() time.Duration {
	return h.d
}

// Hours returns the duration as a decimal amount of hours.
func (h HoursDecimal) Hours() Number {
	q, err := NumberFromInt(h.d.Milliseconds()).CheckedDiv(NumberFromInt(millisPerHour))
	if err != nil {
		// Divisor is a constant, unreachable.
		panic(err)
	}
	return q
}

// Seconds returns the duration as a decimal amount of seconds.
func (h HoursDecimal) Seconds() Number {
	q, err := NumberFromInt(h.d.Milliseconds()).CheckedDiv(NumberFromInt(millisPerSecond))
	if err != nil {
		panic(err)
	}
	return q
}

// Add returns h + other, clamping at the maximum duration.
func (h HoursDecimal) Add(other HoursDecimal) HoursDecimal {
	sum := h.d + other.d
	if sum < h.d {
		sum = time.Duration(1<<63 - 1)
	}
	return HoursDecimal{sum}
}

// Sub returns h - other, clamping at zero.
func (h HoursDecimal) Sub(other HoursDecimal) HoursDecimal {
	if other.d > h.d {
		return HoursDecimal{}
	}
	return HoursDecimal{h.d - other.d}
}

// Cmp compares two durations.
func (h HoursDecimal) Cmp(other HoursDecimal) int {
	switch {
	case h.d < other.d:
		return -1
	case h.d > other.d:
		return 1
	default:
		return 0
	}
}

// Equal reports equality.
func (h HoursDecimal) Equal(other HoursDecimal) bool {
	return h.d == other.d
}

// IsZero reports whether the duration is zero.
func (h HoursDecimal) IsZero() bool {
	return h.d == 0
}

// CostAt is the cost of this duration at a per-hour price.
func (h HoursDecimal) CostAt(price Money) Money {
	return price.TimeCost(h)
}

// String renders as HH:MM:SS.
func (h HoursDecimal) String() string {
	total := int64(h.d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// MarshalJSON emits the decimal amount of hours at OCPI scale.
func (h HoursDecimal) MarshalJSON() ([]byte, error) {
	return h.Hours().MarshalJSON()
}

// UnmarshalJSON accepts a decimal amount of hours.
func (h *HoursDecimal) UnmarshalJSON(data []byte) error {
	var n Number
	if err := n.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := HoursFromNumber(n)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// OcpiTime is a wall-clock time of day without a date, HH:MM on the wire.
type OcpiTime struct {
	hour   int
	minute int
}

// NewOcpiTime builds a time of day.
func NewOcpiTime(hour, minute int) OcpiTime {
	return OcpiTime{hour: hour, minute: minute}
}

// ParseOcpiTime parses HH:MM in 24h format.
func ParseOcpiTime(s string) (OcpiTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return OcpiTime{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return OcpiTime{}, fmt.Errorf("time of day %q out of range", s)
	}
	return OcpiTime{hour: hour, minute: minute}, nil
}

// Hour returns the hour component.
func (t OcpiTime) Hour() int { return t.hour }

// Minute returns the minute component.
func (t OcpiTime) Minute() int { return t.minute }

// MinutesFromMidnight returns the offset from midnight in minutes.
func (t OcpiTime) MinutesFromMidnight() int {
	return t.hour*60 + t.minute
}

// Before reports whether t precedes other within the same day.
func (t OcpiTime) Before(other OcpiTime) bool {
	return t.MinutesFromMidnight() < other.MinutesFromMidnight()
}

// String renders HH:MM.
func (t OcpiTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// MarshalJSON emits the quoted HH:MM form.
func (t OcpiTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalJSON parses the quoted HH:MM form.
func (t *OcpiTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseOcpiTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// OcpiDate is a local calendar date without a time, YYYY-MM-DD on the wire.
type OcpiDate struct {
	year  int
	month time.Month
	day   int
}

// NewOcpiDate builds a calendar date.
func NewOcpiDate(year int, month time.Month, day int) OcpiDate {
	return OcpiDate{year: year, month: month, day: day}
}

// ParseOcpiDate parses YYYY-MM-DD.
func ParseOcpiDate(s string) (OcpiDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return OcpiDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return OcpiDate{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// DateOf truncates an instant in the given location to its local date.
func DateOf(instant time.Time, loc *time.Location) OcpiDate {
	local := instant.In(loc)
	return OcpiDate{year: local.Year(), month: local.Month(), day: local.Day()}
}

// Year returns the year component.
func (d OcpiDate) Year() int { return d.year }

// Month returns the month component.
func (d OcpiDate) Month() time.Month { return d.month }

// Day returns the day component.
func (d OcpiDate) Day() int { return d.day }

// Before reports whether d precedes other.
func (d OcpiDate) Before(other OcpiDate) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// Equal reports whether two dates coincide.
func (d OcpiDate) Equal(other OcpiDate) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

// String renders YYYY-MM-DD.
func (d OcpiDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalJSON emits the quoted YYYY-MM-DD form.
func (d OcpiDate) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON parses the quoted YYYY-MM-DD form.
func (d *OcpiDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseOcpiDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DayOfWeek is an OCPI weekday name.
type DayOfWeek string

// Weekday names as they appear on the OCPI wire.
const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// Weekday converts to the stdlib weekday.
func (d DayOfWeek) Weekday() (time.Weekday, error) {
	switch d {
	case Monday:
		return time.Monday, nil
	case Tuesday:
		return time.Tuesday, nil
	case Wednesday:
		return time.Wednesday, nil
	case Thursday:
		return time.Thursday, nil
	case Friday:
		return time.Friday, nil
	case Saturday:
		return time.Saturday, nil
	case Sunday:
		return time.Sunday, nil
	default:
		return 0, fmt.Errorf("unknown day of week %q", string(d))
	}
}

// Seconds is a whole number of seconds, the OCPI wire representation for
// duration restrictions.
type Seconds int64

// Duration converts to a stdlib duration.
func (s Seconds) Duration() time.Duration {
	return time.Duration(s) * time.Second
}

// Hours returns the duration as a decimal amount of hours.
func (s Seconds) Hours() Number {
	q, err := NumberFromInt(int64(s)).CheckedDiv(NumberFromInt(3600))
	if err != nil {
		panic(err)
	}
	return q
}
