// Package date provides a calendar Date that marshals as YYYY-MM-DD.
package date

import (
	"encoding/json"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

const format = "2006-01-02"

const daysPerWeek = 7

// Date represents a calendar date without time or timezone.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Of truncates t to its calendar date in t's own location.
func Of(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns today's date.
func Today() Date {
	return Of(time.Now())
}

// Parse accepts YYYY-MM-DD, or a full RFC 3339 timestamp (as written by
// browsers' toISOString) whose date part is kept.
func Parse(s string) (Date, error) {
	if t, err := time.Parse(format, s); err == nil {
		return Date{t}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return New(t.Year(), t.Month(), t.Day()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(format)
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// StartOfWeek returns the most recent weekStart on or before d.
func (d Date) StartOfWeek(weekStart time.Weekday) Date {
	offset := (int(d.Weekday()) - int(weekStart) + daysPerWeek) % daysPerWeek
	return d.AddDays(-offset)
}

// Same reports whether d and o are the same calendar day.
func (d Date) Same(o Date) bool {
	return d.Year() == o.Year() && d.YearDay() == o.YearDay()
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
