package gtfs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\xEF\xBB\xBF"

// DefaultMaxLineBytes bounds a single line of a feed file.
const DefaultMaxLineBytes = 1 << 20

// Row maps header names to the field values of one data line.
type Row map[string]string

// SplitRecord splits one line of a GTFS file into fields.
//
// A double quote toggles quoted mode and is never copied. Outside quotes a
// comma ends the field, leading spaces are skipped and trailing spaces are
// trimmed when the field ends. Carriage returns and tabs are dropped
// everywhere. A UTF-8 byte order mark is skipped when isHeader is set.
// The result always has one more element than there are delimiters.
func SplitRecord(line string, isHeader bool) []string {
	if isHeader {
		line = strings.TrimPrefix(line, utf8BOM)
	}

	fields := make([]string, 0, strings.Count(line, ",")+1)
	var (
		token  []byte
		quoted bool
	)

	closeField := func() {
		fields = append(fields, strings.TrimRight(string(token), " "))
		token = token[:0]
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch c {
		case '"':
			quoted = !quoted
		case ',':
			if quoted {
				token = append(token, c)
			} else {
				closeField()
			}
		case ' ':
			if quoted || len(token) > 0 {
				token = append(token, c)
			}
		case '\r', '\t':
		default:
			token = append(token, c)
		}
	}
	closeField()

	return fields
}

// RowReaderOptions control how RowReader treats malformed input.
type RowReaderOptions struct {
	// SkipMismatchedRows returns an empty Row instead of an error for data
	// lines whose field count differs from the header.
	SkipMismatchedRows bool

	// MaxLineBytes caps the length of a line. Zero means DefaultMaxLineBytes.
	MaxLineBytes int
}

// RowReader reads the header and data rows of a single GTFS file.
type RowReader struct {
	scanner *bufio.Scanner
	opts    RowReaderOptions
	header  []string
	line    int
}

// NewRowReader creates a reader over r.
func NewRowReader(r io.Reader, opts RowReaderOptions) *RowReader {
	if opts.MaxLineBytes <= 0 {
		opts.MaxLineBytes = DefaultMaxLineBytes
	}

	initial := 64 * 1024
	if opts.MaxLineBytes < initial {
		initial = opts.MaxLineBytes
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), opts.MaxLineBytes)

	return &RowReader{
		scanner: scanner,
		opts:    opts,
	}
}

// ReadHeader reads the first line and records the field names.
func (r *RowReader) ReadHeader() error {
	line, err := r.next()
	if err == io.EOF {
		return &Error{Kind: InvalidFieldFormat, Line: 1, Message: "empty file"}
	}
	if err != nil {
		return err
	}
	if strings.Trim(line, "\r"+utf8BOM) == "" {
		return &Error{Kind: InvalidFieldFormat, Line: r.line, Message: "empty header"}
	}

	r.header = SplitRecord(line, true)
	return nil
}

// Header returns the field names read by ReadHeader.
func (r *RowReader) Header() []string {
	return r.header
}

// Line returns the number of the line most recently read.
func (r *RowReader) Line() int {
	return r.line
}

// Read returns the next data row. It returns io.EOF when the input is
// exhausted. Blank lines produce an empty Row that callers should skip.
func (r *RowReader) Read() (Row, error) {
	line, err := r.next()
	if err != nil {
		return nil, err
	}

	if strings.TrimRight(line, "\r") == "" {
		return Row{}, nil
	}

	values := SplitRecord(line, false)
	if len(values) != len(r.header) {
		if r.opts.SkipMismatchedRows {
			return Row{}, nil
		}
		msg := fmt.Sprintf("row has %d fields, header has %d: %s", len(values), len(r.header), line)
		return nil, &Error{Kind: InvalidFieldFormat, Line: r.line, Message: msg}
	}

	row := make(Row, len(values))
	for i, name := range r.header {
		row[name] = values[i]
	}
	return row, nil
}

func (r *RowReader) next() (string, error) {
	if !r.scanner.Scan() {
		err := r.scanner.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			return "", &Error{
				Kind:    InvalidFieldFormat,
				Line:    r.line + 1,
				Message: fmt.Sprintf("line exceeds %d bytes", r.opts.MaxLineBytes),
				Err:     err,
			}
		}
		if err != nil {
			return "", err
		}
		return "", io.EOF
	}
	r.line++
	return r.scanner.Text(), nil
}
