package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Driver/transaction metrics
	StorageReadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storage_read_duration_seconds",
			Help:    "Time taken by read-only transactions in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	StorageWriteDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storage_write_duration_seconds",
			Help:    "Time taken by read-write transactions in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	StorageOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_operations_total",
			Help: "Total number of bucket-manager and KV operations by kind",
		},
		[]string{"op"},
	)

	StorageErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_errors_total",
			Help: "Total number of failed storage operations by kind",
		},
		[]string{"op"},
	)

	StorageDBSizeBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storage_db_size_bytes",
			Help: "Size of the backing database file in bytes",
		},
	)

	StorageDBOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storage_db_open",
			Help: "Whether the database connection is open (1) or closed (0)",
		},
	)

	StorageTxDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_tx_duration_seconds",
			Help:    "Transaction latency in seconds by transaction kind",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	StorageBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storage_buckets_total",
			Help: "Number of live, user-created buckets",
		},
	)

	// ORM metrics
	ORMSaveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orm_save_duration_seconds",
			Help:    "Time taken by orm.Save calls in seconds, by model",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	ORMLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orm_load_duration_seconds",
			Help:    "Time taken by orm.Load/LoadByIndex calls in seconds, by model",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	ORMRecordsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orm_records_total",
			Help: "Number of records stored, by model, as counted from this process's Save and Remove calls",
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(StorageReadDuration)
	prometheus.MustRegister(StorageWriteDuration)
	prometheus.MustRegister(StorageOperationsTotal)
	prometheus.MustRegister(StorageErrorsTotal)
	prometheus.MustRegister(StorageDBSizeBytes)
	prometheus.MustRegister(StorageDBOpen)
	prometheus.MustRegister(StorageTxDuration)
	prometheus.MustRegister(StorageBucketsTotal)

	prometheus.MustRegister(ORMSaveDuration)
	prometheus.MustRegister(ORMLoadDuration)
	prometheus.MustRegister(ORMRecordsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
