package gtfs

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/joeshaw/gtfsfeed/internal/models"
)

// required returns the value for key, failing when the column is missing.
// A present but empty value is returned as is.
func required(row Row, key string) (string, error) {
	v, ok := row[key]
	if !ok {
		return "", requiredFieldAbsent(key)
	}
	return v, nil
}

// requiredNonEmpty is like required but also rejects an empty value.
func requiredNonEmpty(row Row, key string) (string, error) {
	v, ok := row[key]
	if !ok || v == "" {
		return "", requiredFieldAbsent(key)
	}
	return v, nil
}

func optional(row Row, key string) string {
	return row[key]
}

func parseInt(key, v string) (int, error) {
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalidField(key, "'%s' is not an integer: %q", key, v)
	}
	return i, nil
}

func parseUint(key, v string) (uint, error) {
	u, err := strconv.ParseUint(v, 10, 0)
	if err != nil {
		return 0, invalidField(key, "'%s' is not a non-negative integer: %q", key, v)
	}
	return uint(u), nil
}

func parseFloat(key, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidField(key, "'%s' is not a number: %q", key, v)
	}
	return f, nil
}

// requiredInt fails with RequiredFieldAbsent for a missing column and with
// InvalidFieldFormat for an empty or malformed value.
func requiredInt(row Row, key string) (int, error) {
	v, err := required(row, key)
	if err != nil {
		return 0, err
	}
	return parseInt(key, v)
}

// optionalInt returns def when the column is missing or empty.
func optionalInt(row Row, key string, def int) (int, error) {
	v := optional(row, key)
	if v == "" {
		return def, nil
	}
	return parseInt(key, v)
}

func requiredUint(row Row, key string) (uint, error) {
	v, err := required(row, key)
	if err != nil {
		return 0, err
	}
	return parseUint(key, v)
}

func optionalUint(row Row, key string) (uint, error) {
	v := optional(row, key)
	if v == "" {
		return 0, nil
	}
	return parseUint(key, v)
}

func requiredFloat(row Row, key string) (float64, error) {
	v, err := required(row, key)
	if err != nil {
		return 0, err
	}
	return parseFloat(key, v)
}

func optionalFloat(row Row, key string) (float64, error) {
	v := optional(row, key)
	if v == "" {
		return 0, nil
	}
	return parseFloat(key, v)
}

// enum is satisfied by the closed enumerations in models.
type enum interface {
	~int
	Valid() bool
}

func requiredEnum[E enum](row Row, key string) (E, error) {
	i, err := requiredInt(row, key)
	if err != nil {
		return 0, err
	}
	return checkEnum[E](key, i)
}

func optionalEnum[E enum](row Row, key string, def E) (E, error) {
	i, err := optionalInt(row, key, int(def))
	if err != nil {
		return 0, err
	}
	return checkEnum[E](key, i)
}

func checkEnum[E enum](key string, i int) (E, error) {
	e := E(i)
	if !e.Valid() {
		return 0, invalidField(key, "'%s' has unsupported value %d", key, i)
	}
	return e, nil
}

// codecError re-signals a Time or Date codec failure as InvalidFieldFormat.
func codecError(key string, err error) error {
	var fe *models.FormatError
	if errors.As(err, &fe) {
		return &Error{Kind: InvalidFieldFormat, Field: key, Message: fe.Message, Err: fe}
	}
	return &Error{Kind: InvalidFieldFormat, Field: key, Message: err.Error(), Err: err}
}

// timeField parses a Time from a column that must exist. The value may be
// empty, giving an absent Time.
func timeField(row Row, key string) (models.Time, error) {
	v, err := required(row, key)
	if err != nil {
		return models.Time{}, err
	}
	t, err := models.ParseTime(v)
	if err != nil {
		return models.Time{}, codecError(key, err)
	}
	return t, nil
}

func requiredTime(row Row, key string) (models.Time, error) {
	v, err := requiredNonEmpty(row, key)
	if err != nil {
		return models.Time{}, err
	}
	t, err := models.ParseTime(v)
	if err != nil {
		return models.Time{}, codecError(key, err)
	}
	return t, nil
}

func requiredDate(row Row, key string) (models.Date, error) {
	v, err := requiredNonEmpty(row, key)
	if err != nil {
		return models.Date{}, err
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return models.Date{}, codecError(key, err)
	}
	return d, nil
}

func optionalDate(row Row, key string) (models.Date, error) {
	d, err := models.ParseDate(optional(row, key))
	if err != nil {
		return models.Date{}, codecError(key, err)
	}
	return d, nil
}

func checkLatitude(key string, lat float64) error {
	if lat < -90 || lat > 90 {
		return &Error{
			Kind:    InvalidFieldFormat,
			Field:   key,
			Message: fmt.Sprintf("latitude %v outside [-90, 90]", lat),
			Err:     ErrCoordinateOutOfRange,
		}
	}
	return nil
}

func checkLongitude(key string, lon float64) error {
	if lon < -180 || lon > 180 {
		return &Error{
			Kind:    InvalidFieldFormat,
			Field:   key,
			Message: fmt.Sprintf("longitude %v outside [-180, 180]", lon),
			Err:     ErrCoordinateOutOfRange,
		}
	}
	return nil
}

func nonNegative(key string, v float64) error {
	if v < 0 {
		return invalidField(key, "'%s' must not be negative: %v", key, v)
	}
	return nil
}
