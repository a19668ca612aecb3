package gtfs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"time"

	"github.com/joeshaw/gtfsfeed/internal/store"
)

// maxReportedErrors caps the row errors kept per file in best-effort mode.
const maxReportedErrors = 20

// ctxCheckInterval is how many lines are read between context checks.
const ctxCheckInterval = 4096

// LoadMetrics receives progress from a Loader.
type LoadMetrics interface {
	RowParsed(file string)
	RowFailed(file string, kind Kind)
	FileLoaded(file string, rows int, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) RowParsed(string)                      {}
func (nopMetrics) RowFailed(string, Kind)                {}
func (nopMetrics) FileLoaded(string, int, time.Duration) {}

// Options control how a Loader reacts to malformed content.
type Options struct {
	// BestEffort skips rows that fail to parse instead of aborting the file.
	BestEffort bool

	// SkipMismatchedRows ignores rows whose field count differs from the
	// header.
	SkipMismatchedRows bool

	MaxLineBytes int
	Metrics      LoadMetrics
}

// FileReport summarizes the reading of a single file.
type FileReport struct {
	Name    string        `json:"name"`
	Rows    int           `json:"rows"`
	Skipped int           `json:"skipped,omitzero"`
	Absent  bool          `json:"absent,omitzero"`
	Elapsed time.Duration `json:"elapsed"`
	Errors  []error       `json:"-"`
}

// Report summarizes a complete Load.
type Report struct {
	Files   []FileReport  `json:"files"`
	Elapsed time.Duration `json:"elapsed"`
}

// Rows returns the number of records loaded across all files.
func (r *Report) Rows() int {
	n := 0
	for _, f := range r.Files {
		n += f.Rows
	}
	return n
}

// Loader reads the files of a GTFS dataset into a store
type Loader struct {
	fsys  fs.FS
	store *store.Store
	opts  Options
}

// NewLoader creates a loader reading from fsys, which holds the dataset
// files at its root.
func NewLoader(fsys fs.FS, st *store.Store, opts Options) *Loader {
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	return &Loader{
		fsys:  fsys,
		store: st,
		opts:  opts,
	}
}

// Load reads every known file in order. Missing files that are not
// required are skipped; any other failure stops the load.
func (l *Loader) Load(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}

	for _, kind := range loadOrder {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fr, err := l.LoadFile(ctx, kind)
		if errors.Is(err, FileAbsent) && kind.Presence() != Required {
			fr.Absent = true
			report.Files = append(report.Files, fr)
			continue
		}
		report.Files = append(report.Files, fr)
		if err != nil {
			return report, err
		}

		switch kind {
		case AgencyFile:
			err = l.checkAgencyIDs()
		case RoutesFile:
			err = l.checkRouteAgencies()
		}
		if err != nil {
			return report, err
		}
	}

	l.store.BuildStopsByRoute()
	l.store.SetLastStaticUpdate(time.Now())

	report.Elapsed = time.Since(start)
	log.Printf("GTFS load completed: %d records in %v", report.Rows(), report.Elapsed)
	return report, nil
}

// LoadFile reads a single file into the store. It returns an error of kind
// FileAbsent when the dataset does not contain the file.
func (l *Loader) LoadFile(ctx context.Context, kind FileKind) (FileReport, error) {
	spec, ok := files[kind]
	if !ok {
		return FileReport{}, fmt.Errorf("unknown file kind %d", int(kind))
	}

	start := time.Now()
	report := FileReport{Name: spec.Name}

	f, err := l.fsys.Open(spec.Name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, &Error{Kind: FileAbsent, File: spec.Name, Message: "file not found in dataset", Err: err}
		}
		return report, &Error{Kind: InvalidDatasetPath, File: spec.Name, Message: err.Error(), Err: err}
	}
	defer f.Close()

	rr := NewRowReader(f, RowReaderOptions{
		SkipMismatchedRows: l.opts.SkipMismatchedRows,
		MaxLineBytes:       l.opts.MaxLineBytes,
	})
	if err := rr.ReadHeader(); err != nil {
		return report, annotate(err, spec.Name, rr.Line())
	}

	for {
		if rr.Line()%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return report, err
			}
		}

		row, err := rr.Read()
		if err == io.EOF {
			break
		}
		if err == nil {
			if len(row) == 0 {
				continue
			}
			err = spec.handle(l.store, row)
		}
		if err != nil {
			err = annotate(err, spec.Name, rr.Line())
			l.opts.Metrics.RowFailed(spec.Name, KindOf(err))
			if !l.opts.BestEffort || !skippable(err) {
				return report, err
			}
			report.Skipped++
			if len(report.Errors) < maxReportedErrors {
				report.Errors = append(report.Errors, err)
			}
			log.Printf("Skipping row: %v", err)
			continue
		}

		report.Rows++
		l.opts.Metrics.RowParsed(spec.Name)
	}

	report.Elapsed = time.Since(start)
	l.opts.Metrics.FileLoaded(spec.Name, report.Rows, report.Elapsed)
	log.Printf("Loaded %d rows from %s", report.Rows, spec.Name)
	return report, nil
}

// checkAgencyIDs enforces that agency_id is set when a feed has more than
// one agency.
func (l *Loader) checkAgencyIDs() error {
	agencies := l.store.GetAllAgencies()
	if len(agencies) < 2 {
		return nil
	}
	for _, a := range agencies {
		if a.ID == "" {
			return &Error{
				Kind:    RequiredFieldAbsent,
				File:    AgencyFile.FileName(),
				Field:   "agency_id",
				Message: fmt.Sprintf("'agency_id' is required when a feed has %d agencies (agency %q)", len(agencies), a.Name),
			}
		}
	}
	return nil
}

// checkRouteAgencies enforces that routes name their agency when a feed has
// more than one.
func (l *Loader) checkRouteAgencies() error {
	if len(l.store.GetAllAgencies()) < 2 {
		return nil
	}
	for _, r := range l.store.GetAllRoutes() {
		if r.AgencyID == "" {
			return &Error{
				Kind:    RequiredFieldAbsent,
				File:    RoutesFile.FileName(),
				Field:   "agency_id",
				Message: fmt.Sprintf("'agency_id' is required for route %q when a feed has multiple agencies", r.ID),
			}
		}
	}
	return nil
}

// skippable reports whether a best-effort load may continue past err.
func skippable(err error) bool {
	var e *Error
	return errors.As(err, &e) && !errors.Is(err, bufio.ErrTooLong)
}

// annotate fills in the file and line of a row error.
func annotate(err error, file string, line int) error {
	var e *Error
	if !errors.As(err, &e) {
		return fmt.Errorf("%s:%d: %w", file, line, err)
	}
	c := *e
	if c.File == "" {
		c.File = file
	}
	if c.Line == 0 {
		c.Line = line
	}
	return &c
}
