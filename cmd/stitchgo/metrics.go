package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/stitchgo"
)

var _ stitchgo.MetricsCollector = (*prometheusCollector)(nil)

// prometheusCollector implements stitchgo.MetricsCollector on a private registry.
type prometheusCollector struct {
	registry   *prometheus.Registry
	opLatency  *prometheus.HistogramVec
	entries    prometheus.Gauge
	pixels     prometheus.Counter
	lookups    *prometheus.CounterVec
	keptColors prometheus.Gauge
}

func newPrometheusCollector() *prometheusCollector {
	c := &prometheusCollector{
		registry: prometheus.NewRegistry(),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stitchgo_operation_latency_seconds",
			Help:    "Latency of stitchgo operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stitchgo_palette_entries",
			Help: "Number of indexed palette entries",
		}),
		pixels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stitchgo_recolored_pixels_total",
			Help: "Total pixels recolored",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stitchgo_cache_lookups_total",
			Help: "Colour lookups by cache result",
		}, []string{"result"}),
		keptColors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stitchgo_reduced_colors",
			Help: "Distinct colours kept by the last reduction",
		}),
	}

	c.registry.MustRegister(c.opLatency, c.entries, c.pixels, c.lookups, c.keptColors)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (c *prometheusCollector) RecordBuild(entries int, duration time.Duration, err error) {
	c.opLatency.WithLabelValues("build", status(err)).Observe(duration.Seconds())
	if err == nil {
		c.entries.Set(float64(entries))
	}
}

func (c *prometheusCollector) RecordReduce(colors int, duration time.Duration, err error) {
	c.opLatency.WithLabelValues("reduce", status(err)).Observe(duration.Seconds())
	if err == nil {
		c.keptColors.Set(float64(colors))
	}
}

func (c *prometheusCollector) RecordRecolor(pixels int, hits, misses int64, duration time.Duration, err error) {
	c.opLatency.WithLabelValues("recolor", status(err)).Observe(duration.Seconds())
	if err != nil {
		return
	}
	c.pixels.Add(float64(pixels))
	c.lookups.WithLabelValues("hit").Add(float64(hits))
	c.lookups.WithLabelValues("miss").Add(float64(misses))
}

// WriteTextfile writes all metrics in the Prometheus text format, suitable for
// the node_exporter textfile collector.
func (c *prometheusCollector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
