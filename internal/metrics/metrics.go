package metrics

import (
	"net/http"
	"time"

	"github.com/joeshaw/gtfsfeed/internal/gtfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the feed loading metrics on its own registry.
type Collector struct {
	reg *prometheus.Registry

	RowsParsed   *prometheus.CounterVec // file label
	RowsFailed   *prometheus.CounterVec // file, kind labels
	FileDuration *prometheus.HistogramVec
	Loads        *prometheus.CounterVec // result label: success|failure
	Entities     *prometheus.GaugeVec   // file label
	LastLoad     prometheus.Gauge

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RowsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gtfs_rows_parsed_total",
			Help: "Rows successfully parsed, by file.",
		}, []string{"file"}),
		RowsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gtfs_rows_failed_total",
			Help: "Rows that failed to parse, by file and error kind.",
		}, []string{"file", "kind"}),
		FileDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gtfs_file_load_duration_seconds",
			Help:    "Time taken to read a single dataset file.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"file"}),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gtfs_feed_loads_total",
			Help: "Feed loads, by result.",
		}, []string{"result"}),
		Entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gtfs_entities",
			Help: "Records currently held, by file.",
		}, []string{"file"}),
		LastLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gtfs_last_load_timestamp_seconds",
			Help: "Unix time of the last successful feed load.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gtfs_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gtfs_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gtfs_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		c.RowsParsed, c.RowsFailed, c.FileDuration,
		c.Loads, c.Entities, c.LastLoad,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

func (c *Collector) RowParsed(file string) {
	c.RowsParsed.WithLabelValues(file).Inc()
}

func (c *Collector) RowFailed(file string, kind gtfs.Kind) {
	c.RowsFailed.WithLabelValues(file, kind.String()).Inc()
}

func (c *Collector) FileLoaded(file string, rows int, elapsed time.Duration) {
	c.FileDuration.WithLabelValues(file).Observe(elapsed.Seconds())
}

// LoadFinished records the outcome of a feed load. counts is only used on
// success and replaces the entity gauges.
func (c *Collector) LoadFinished(err error, counts map[string]int) {
	if err != nil {
		c.Loads.WithLabelValues("failure").Inc()
		return
	}
	c.Loads.WithLabelValues("success").Inc()
	c.LastLoad.SetToCurrentTime()

	c.Entities.Reset()
	for file, n := range counts {
		c.Entities.WithLabelValues(file).Set(float64(n))
	}
}

func (c *Collector) NATSPublishedInc()  { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc() { c.NATSPublishErrs.Inc() }

func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}
