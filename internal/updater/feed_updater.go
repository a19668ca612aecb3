package updater

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joeshaw/gtfsfeed/internal/gtfs"
	"github.com/joeshaw/gtfsfeed/internal/publisher"
	"github.com/joeshaw/gtfsfeed/internal/store"
)

// Exporter writes a loaded feed somewhere else, returning a run id.
type Exporter interface {
	Export(ctx context.Context, st *store.Store, source string) (string, error)
}

// Notifier announces completed loads.
type Notifier interface {
	PublishFeedLoaded(msg publisher.FeedLoaded) error
}

// Metrics receives per-row progress and the outcome of every load.
type Metrics interface {
	gtfs.LoadMetrics
	LoadFinished(err error, counts map[string]int)
}

// FeedUpdater loads a GTFS dataset into a store and keeps it fresh
type FeedUpdater struct {
	source string
	store  *store.Store
	opts   gtfs.Options

	Metrics  Metrics
	Exporter Exporter
	Notifier Notifier
}

// NewFeedUpdater creates an updater loading source into st. Metrics,
// Exporter and Notifier are optional and may be set before the first
// Update.
func NewFeedUpdater(source string, st *store.Store, opts gtfs.Options) *FeedUpdater {
	return &FeedUpdater{
		source: source,
		store:  st,
		opts:   opts,
	}
}

// Update loads the dataset into a fresh store and swaps it into place. On
// failure the previously loaded data is left untouched.
func (u *FeedUpdater) Update(ctx context.Context) (*gtfs.Report, error) {
	log.Println("Loading GTFS data from", u.source)

	report, err := u.load(ctx)
	if u.Metrics != nil {
		var counts map[string]int
		if err == nil {
			counts = u.store.Counts()
		}
		u.Metrics.LoadFinished(err, counts)
	}
	if err != nil {
		return report, err
	}

	runID := ""
	if u.Exporter != nil {
		runID, err = u.Exporter.Export(ctx, u.store, u.source)
		if err != nil {
			log.Printf("Failed to export GTFS data: %v", err)
		}
	}
	if runID == "" {
		runID = uuid.NewString()
	}

	if u.Notifier != nil {
		msg := publisher.FeedLoaded{
			RunID:      runID,
			Source:     u.source,
			LoadedAt:   u.store.GetLastStaticUpdate().UTC(),
			DurationMS: report.Elapsed.Milliseconds(),
			Counts:     u.store.Counts(),
			Skipped:    skipped(report),
		}
		if err := u.Notifier.PublishFeedLoaded(msg); err != nil {
			log.Printf("Failed to publish feed loaded event: %v", err)
		}
	}

	return report, nil
}

func (u *FeedUpdater) load(ctx context.Context) (*gtfs.Report, error) {
	src, err := gtfs.OpenSource(ctx, u.source)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	opts := u.opts
	if opts.Metrics == nil && u.Metrics != nil {
		opts.Metrics = u.Metrics
	}

	next := store.NewStore()
	report, err := gtfs.NewLoader(src.FS, next, opts).Load(ctx)
	if err != nil {
		return report, err
	}

	u.store.Swap(next)
	return report, nil
}

func skipped(report *gtfs.Report) int {
	n := 0
	for _, f := range report.Files {
		n += f.Skipped
	}
	return n
}

// Run reloads the dataset every interval until ctx is canceled. A zero
// interval disables refreshing.
func (u *FeedUpdater) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := u.Update(ctx); err != nil {
				log.Printf("Failed to update GTFS data: %v", err)
			} else {
				log.Println("GTFS data updated successfully")
			}
		case <-ctx.Done():
			return
		}
	}
}
