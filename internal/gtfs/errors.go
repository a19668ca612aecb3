package gtfs

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind classifies a failure while reading a feed.
type Kind int

const (
	OK Kind = iota
	EndOfInput
	InvalidDatasetPath
	FileAbsent
	RequiredFieldAbsent
	InvalidFieldFormat
)

var kindNames = [...]string{
	OK:                  "ok",
	EndOfInput:          "end of input",
	InvalidDatasetPath:  "invalid dataset path",
	FileAbsent:          "file absent",
	RequiredFieldAbsent: "required field absent",
	InvalidFieldFormat:  "invalid field format",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error lets a Kind be used as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

// ErrCoordinateOutOfRange is wrapped by errors for latitudes or longitudes
// outside the WGS84 range.
var ErrCoordinateOutOfRange = errors.New("coordinate out of range")

// Error describes a failure tied to a dataset, file, line or field.
type Error struct {
	Kind    Kind
	File    string
	Line    int
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s)", e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a bare Kind target against the error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf classifies err. Errors that did not originate in this package are
// reported as InvalidFieldFormat.
func KindOf(err error) Kind {
	if err == nil {
		return OK
	}
	if errors.Is(err, io.EOF) {
		return EndOfInput
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return InvalidFieldFormat
}

func requiredFieldAbsent(field string) *Error {
	return &Error{
		Kind:    RequiredFieldAbsent,
		Field:   field,
		Message: fmt.Sprintf("required field '%s' is absent", field),
	}
}

func invalidField(field, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    InvalidFieldFormat,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
