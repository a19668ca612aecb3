package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joeshaw/gtfsfeed/internal/gtfs"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ gtfs.LoadMetrics = (*Collector)(nil)

func TestRowCounters(t *testing.T) {
	c := NewCollector()
	c.RowParsed("stops.txt")
	c.RowParsed("stops.txt")
	c.RowFailed("stops.txt", gtfs.InvalidFieldFormat)
	c.FileLoaded("stops.txt", 2, 15*time.Millisecond)

	if got := testutil.ToFloat64(c.RowsParsed.WithLabelValues("stops.txt")); got != 2 {
		t.Errorf("rows parsed: got %v want 2", got)
	}
	if got := testutil.ToFloat64(c.RowsFailed.WithLabelValues("stops.txt", "invalid field format")); got != 1 {
		t.Errorf("rows failed: got %v want 1", got)
	}
	if got := testutil.CollectAndCount(c.FileDuration); got != 1 {
		t.Errorf("duration series: got %d want 1", got)
	}
}

func TestLoadFinished(t *testing.T) {
	c := NewCollector()
	c.LoadFinished(errors.New("boom"), nil)
	c.LoadFinished(nil, map[string]int{"stops.txt": 3, "routes.txt": 1})
	c.LoadFinished(nil, map[string]int{"stops.txt": 4})

	if got := testutil.ToFloat64(c.Loads.WithLabelValues("failure")); got != 1 {
		t.Errorf("failed loads: got %v want 1", got)
	}
	if got := testutil.ToFloat64(c.Loads.WithLabelValues("success")); got != 2 {
		t.Errorf("successful loads: got %v want 2", got)
	}
	if got := testutil.ToFloat64(c.Entities.WithLabelValues("stops.txt")); got != 4 {
		t.Errorf("stops gauge: got %v want 4", got)
	}
	if got := testutil.CollectAndCount(c.Entities); got != 1 {
		t.Errorf("entity series after reset: got %d want 1", got)
	}
	if testutil.ToFloat64(c.LastLoad) == 0 {
		t.Errorf("last load timestamp not set")
	}
}

func TestHandler(t *testing.T) {
	c := NewCollector()
	c.NATSSetConnected(true)
	c.NATSPublishedInc()

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)

	for _, want := range []string{"gtfs_nats_connected 1", "gtfs_nats_published_total 1"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
