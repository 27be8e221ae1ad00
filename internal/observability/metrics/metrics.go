// Package metrics registers and records observability metrics for the
// takeoff pipeline.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "baureport_"

	resultSuccess = "success"
)

var (
	registerOnce sync.Once

	loaderRows    *prometheus.CounterVec
	loaderLatency prometheus.Histogram

	reportRuns    *prometheus.CounterVec
	reportLatency prometheus.Histogram
	reportRecords prometheus.Histogram

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers pipeline metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		loaderRows = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "loader_rows_total",
				Help: "Total loaded workbook rows by outcome",
			},
			[]string{"outcome"},
		)
		loaderLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "loader_latency_seconds",
				Help:    "Workbook load latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)

		reportRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_runs_total",
				Help: "Total report pipeline runs by result",
			},
			[]string{"result"},
		)
		reportLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_latency_seconds",
				Help:    "Report pipeline latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)
		reportRecords = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_records",
				Help:    "Filtered record count per report run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			loaderRows,
			loaderLatency,
			reportRuns,
			reportLatency,
			reportRecords,
			exportTotal,
			exportLatency,
		)
	})
}

// ObserveLoad records loaded and skipped row counts plus load duration.
func ObserveLoad(loaded, skipped int, duration time.Duration) {
	if loaderRows != nil {
		loaderRows.WithLabelValues("loaded").Add(float64(loaded))
		loaderRows.WithLabelValues("skipped").Add(float64(skipped))
	}
	if loaderLatency != nil {
		loaderLatency.Observe(duration.Seconds())
	}
}

// ObserveReportRun records one pipeline run.
func ObserveReportRun(records int, duration time.Duration) {
	if reportRuns != nil {
		reportRuns.WithLabelValues(resultSuccess).Inc()
	}
	if reportLatency != nil {
		reportLatency.Observe(duration.Seconds())
	}
	if reportRecords != nil {
		reportRecords.Observe(float64(records))
	}
}

// ObserveExport records export latency and result by format.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}
