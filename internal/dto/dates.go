package dto

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Wire layouts shared with the backend contract. DateTime is local-naive:
// no zone designator is ever attached or accepted.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date carried as YYYY-MM-DD with no time-of-day or zone.
type Date time.Time

// ParseDate decodes a wire date, rejecting malformed input.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date(t), nil
}

// Time exposes the underlying value.
func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) String() string { return time.Time(d).Format(DateLayout) }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return time.Time(d).IsZero() }

// MarshalJSON encodes the date in the exact wire layout.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes the wire layout, rejecting anything else.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return fmt.Errorf("invalid date token %s", data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer for persistence.
func (d Date) Value() (driver.Value, error) { return time.Time(d), nil }

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

// DateTime is a wall-clock date-time carried as YYYY-MM-DDTHH:mm:ss,
// lossless at second precision.
type DateTime time.Time

// ParseDateTime decodes a wire date-time, rejecting malformed input.
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid datetime %q: expected YYYY-MM-DDTHH:mm:ss", s)
	}
	return DateTime(t), nil
}

// Time exposes the underlying value.
func (d DateTime) Time() time.Time { return time.Time(d) }

func (d DateTime) String() string { return time.Time(d).Format(DateTimeLayout) }

// IsZero reports whether the value is unset.
func (d DateTime) IsZero() bool { return time.Time(d).IsZero() }

// MarshalJSON encodes the value in the exact wire layout.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes the wire layout, rejecting anything else.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return fmt.Errorf("invalid datetime token %s", data)
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer for persistence.
func (d DateTime) Value() (driver.Value, error) { return time.Time(d), nil }

// Scan implements sql.Scanner.
func (d *DateTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateTime(v)
		return nil
	case []byte:
		parsed, err := ParseDateTime(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDateTime(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into DateTime", src)
}

func unquote(data []byte) (string, error) {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", fmt.Errorf("not a JSON string")
	}
	return string(data[1 : len(data)-1]), nil
}
