/*
Package metrics provides Prometheus metrics and health/readiness/liveness
HTTP handlers for stow.

# Metrics catalog

Storage-level (recorded by callers wrapping pkg/kv's View/Update calls;
pkg/kv itself stays free of a metrics dependency so it can be used
without pulling in Prometheus):

	storage_read_duration_seconds     histogram  read-only transaction latency
	storage_write_duration_seconds    histogram  read-write transaction latency
	storage_tx_duration_seconds{kind} histogram  transaction latency by kind
	storage_operations_total{op}      counter    bucket/KV operations by kind
	storage_errors_total{op}          counter    failed operations by kind
	storage_db_size_bytes             gauge      backing file size
	storage_db_open                   gauge      1 if the connection is open
	storage_buckets_total             gauge      live, user-created buckets

ORM-level (recorded by pkg/orm: durations around Save/Load/LoadByIndex,
the record gauge on Save of a new record and on Remove):

	orm_save_duration_seconds{model}  histogram
	orm_load_duration_seconds{model}  histogram
	orm_records_total{model}          gauge

# Usage

	timer := metrics.NewTimer()
	err := db.Update(fn)
	timer.ObserveDuration(metrics.StorageWriteDuration)

	http.Handle("/metrics", metrics.Handler())
	http.Handle("/health", metrics.HealthHandler())
	http.Handle("/ready", metrics.ReadyHandler())
	http.Handle("/live", metrics.LivenessHandler())

GetReadiness checks a fixed list of critical components; stow registers
exactly one, "driver", reflecting whether the configured kv.Driver
connection is usable.

# See also

  - Prometheus client library: https://github.com/prometheus/client_golang
*/
package metrics
