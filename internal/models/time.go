package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// FormatError is returned by the Time and Date codecs when raw text does not
// match the expected layout or holds out-of-range components.
type FormatError struct {
	Value   string
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

func formatErrorf(value, format string, args ...interface{}) *FormatError {
	return &FormatError{Value: value, Message: fmt.Sprintf(format, args...)}
}

// Time is a GTFS service time in H:MM:SS or HH:MM:SS form. Hours may
// exceed 23 for trips running past midnight of the service day.
type Time struct {
	raw          string
	provided     bool
	hours        uint16
	minutes      uint16
	seconds      uint16
	totalSeconds int
}

// ParseTime parses a GTFS time string. The empty string yields an absent
// Time and no error.
func ParseTime(raw string) (Time, error) {
	if raw == "" {
		return Time{}, nil
	}

	n := len(raw)
	if n < 7 || n > 8 || raw[n-3] != ':' || raw[n-6] != ':' {
		return Time{}, formatErrorf(raw, "Time is not in [H]H:MM:SS format: %s", raw)
	}

	h, err := strconv.ParseUint(raw[:n-6], 10, 16)
	if err != nil {
		return Time{}, formatErrorf(raw, "Time hours are not a number: %s", raw)
	}
	m, err := strconv.ParseUint(raw[n-5:n-3], 10, 16)
	if err != nil {
		return Time{}, formatErrorf(raw, "Time minutes are not a number: %s", raw)
	}
	s, err := strconv.ParseUint(raw[n-2:], 10, 16)
	if err != nil {
		return Time{}, formatErrorf(raw, "Time seconds are not a number: %s", raw)
	}

	if err := checkMinutesSeconds(raw, uint16(m), uint16(s)); err != nil {
		return Time{}, err
	}

	t := Time{
		raw:      raw,
		provided: true,
		hours:    uint16(h),
		minutes:  uint16(m),
		seconds:  uint16(s),
	}
	t.totalSeconds = t.computeTotal()
	return t, nil
}

// NewTime builds a provided Time from components. The raw text is derived
// as zero-padded HH:MM:SS.
func NewTime(hours, minutes, seconds uint16) (Time, error) {
	raw := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	if err := checkMinutesSeconds(raw, minutes, seconds); err != nil {
		return Time{}, err
	}

	t := Time{
		raw:      raw,
		provided: true,
		hours:    hours,
		minutes:  minutes,
		seconds:  seconds,
	}
	t.totalSeconds = t.computeTotal()
	return t, nil
}

// A value of exactly 60 is accepted for minutes and seconds.
func checkMinutesSeconds(raw string, minutes, seconds uint16) error {
	if minutes > 60 {
		return formatErrorf(raw, "Time minutes out of range: %s", raw)
	}
	if seconds > 60 {
		return formatErrorf(raw, "Time seconds out of range: %s", raw)
	}
	return nil
}

func (t Time) computeTotal() int {
	return int(t.hours)*3600 + int(t.minutes)*60 + int(t.seconds)
}

// IsProvided reports whether the time was present in the source.
func (t Time) IsProvided() bool {
	return t.provided
}

// TotalSeconds returns seconds since the start of the service day.
func (t Time) TotalSeconds() int {
	return t.totalSeconds
}

// HMS returns the hour, minute and second components.
func (t Time) HMS() (hours, minutes, seconds uint16) {
	return t.hours, t.minutes, t.seconds
}

// String returns the raw text the time was parsed from.
func (t Time) String() string {
	return t.raw
}

// LimitHoursTo24Max wraps hours of 24 or more into the 0..23 range and
// reports whether a change was made.
func (t *Time) LimitHoursTo24Max() bool {
	if t.hours < 24 {
		return false
	}

	t.hours = t.hours % 24
	t.totalSeconds = t.computeTotal()
	t.raw = fmt.Sprintf("%02d:%02d:%02d", t.hours, t.minutes, t.seconds)
	return true
}

// Equal compares components and the provided flag. Raw text is ignored, so
// "7:00:00" equals "07:00:00".
func (t Time) Equal(o Time) bool {
	return t.provided == o.provided &&
		t.hours == o.hours &&
		t.minutes == o.minutes &&
		t.seconds == o.seconds
}

// Value implements driver.Valuer.
func (t Time) Value() (driver.Value, error) {
	if !t.provided {
		return nil, nil
	}
	return t.raw, nil
}

// MarshalJSON encodes the raw text, or null when absent.
func (t Time) MarshalJSON() ([]byte, error) {
	if !t.provided {
		return []byte("null"), nil
	}
	return json.Marshal(t.raw)
}
