// README: Common calendar-date value object used across modules.
package types

import (
    "fmt"
    "time"
)

// Date is a civil date (no time of day, no location).
// The zero value is treated as "not set".
type Date struct {
    Year  int
    Month time.Month
    Day   int
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
    return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
    y, m, d := t.Date()
    return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO-8601 date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
    t, err := time.Parse(dateLayout, s)
    if err != nil {
        return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
    }
    return DateOf(t), nil
}

func (d Date) IsZero() bool {
    return d == Date{}
}

// Time returns midnight UTC on d. UTC keeps date arithmetic free of DST edges.
func (d Date) Time() time.Time {
    return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
    return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to other (negative if other is earlier).
func (d Date) DaysUntil(other Date) int {
    return int(other.Time().Sub(d.Time()) / (24 * time.Hour))
}

func (d Date) Before(other Date) bool {
    return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
    return d.Time().After(other.Time())
}

func (d Date) Weekday() time.Weekday {
    return d.Time().Weekday()
}

func (d Date) String() string {
    return d.Time().Format(dateLayout)
}

// MarshalJSON encodes d as an ISO-8601 string.
func (d Date) MarshalJSON() ([]byte, error) {
    return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts an ISO-8601 string, the empty string, or null.
func (d *Date) UnmarshalJSON(data []byte) error {
    s := string(data)
    if s == "null" || s == `""` {
        *d = Date{}
        return nil
    }
    if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
        return fmt.Errorf("invalid date literal %s", s)
    }
    parsed, err := ParseDate(s[1 : len(s)-1])
    if err != nil {
        return err
    }
    *d = parsed
    return nil
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (Date, Date) {
    first := Date{Year: year, Month: month, Day: 1}
    last := DateOf(first.Time().AddDate(0, 1, -1))
    return first, last
}
