package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Date is a GTFS calendar date in YYYYMMDD form.
type Date struct {
	raw      string
	provided bool
	year     uint16
	month    uint16
	day      uint16
}

// ParseDate parses a GTFS date string. The empty string yields an absent
// Date and no error.
func ParseDate(raw string) (Date, error) {
	if raw == "" {
		return Date{}, nil
	}

	if len(raw) != 8 {
		return Date{}, formatErrorf(raw, "Date is not in YYYYMMDD format: %s", raw)
	}

	y, err := strconv.ParseUint(raw[:4], 10, 16)
	if err != nil {
		return Date{}, formatErrorf(raw, "Date year is not a number: %s", raw)
	}
	m, err := strconv.ParseUint(raw[4:6], 10, 16)
	if err != nil {
		return Date{}, formatErrorf(raw, "Date month is not a number: %s", raw)
	}
	d, err := strconv.ParseUint(raw[6:], 10, 16)
	if err != nil {
		return Date{}, formatErrorf(raw, "Date day is not a number: %s", raw)
	}

	if err := checkDate(raw, uint16(y), uint16(m), uint16(d)); err != nil {
		return Date{}, err
	}

	return Date{
		raw:      raw,
		provided: true,
		year:     uint16(y),
		month:    uint16(m),
		day:      uint16(d),
	}, nil
}

// NewDate builds a provided Date from components.
func NewDate(year, month, day uint16) (Date, error) {
	raw := fmt.Sprintf("%04d%02d%02d", year, month, day)
	if err := checkDate(raw, year, month, day); err != nil {
		return Date{}, err
	}

	return Date{
		raw:      raw,
		provided: true,
		year:     year,
		month:    month,
		day:      day,
	}, nil
}

func checkDate(raw string, year, month, day uint16) error {
	if year < 1000 || year > 9999 {
		return formatErrorf(raw, "Date check failed: out of range. %d year", year)
	}
	if month < 1 || month > 12 {
		return formatErrorf(raw, "Date check failed: out of range. %d month", month)
	}
	if day < 1 || day > 31 {
		return formatErrorf(raw, "Date check failed: out of range. %d day", day)
	}

	switch month {
	case 2:
		if day > 29 || (day == 29 && !isLeapYear(year)) {
			return formatErrorf(raw, "Invalid days count in February of %d: %d", year, day)
		}
	case 4, 6, 9, 11:
		if day == 31 {
			return formatErrorf(raw, "Invalid days count in month %d: %d", month, day)
		}
	}
	return nil
}

func isLeapYear(year uint16) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// IsProvided reports whether the date was present in the source.
func (d Date) IsProvided() bool {
	return d.provided
}

// YMD returns the year, month and day components.
func (d Date) YMD() (year, month, day uint16) {
	return d.year, d.month, d.day
}

// String returns the raw YYYYMMDD text.
func (d Date) String() string {
	return d.raw
}

// Equal compares components and the provided flag.
func (d Date) Equal(o Date) bool {
	return d.provided == o.provided &&
		d.year == o.year &&
		d.month == o.month &&
		d.day == o.day
}

// Compare returns -1, 0 or +1 ordering dates chronologically. Absent dates
// sort before provided ones.
func (d Date) Compare(o Date) int {
	a, b := d.ordinal(), o.ordinal()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Date) ordinal() int {
	if !d.provided {
		return -1
	}
	return int(d.year)*10000 + int(d.month)*100 + int(d.day)
}

// Weekday returns the day of the week the date falls on.
func (d Date) Weekday() time.Weekday {
	return time.Date(int(d.year), time.Month(d.month), int(d.day), 12, 0, 0, 0, time.UTC).Weekday()
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if !d.provided {
		return nil, nil
	}
	return d.raw, nil
}

// MarshalJSON encodes the raw text, or null when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.provided {
		return []byte("null"), nil
	}
	return json.Marshal(d.raw)
}
