// Package metrics collects and exposes Prometheus metrics for a worker
// process: heartbeat outcomes, job outcomes, and kill events.
//
// Metric Categories:
//
//  1. Counters - cumulative, monotonically increasing:
//     - worker_heartbeats_ok_total, worker_heartbeats_error_total
//     - worker_jobs_succeeded_total, worker_jobs_failed_total
//     - worker_kills_total
//
//  2. Histogram - distribution of job run time:
//     - worker_job_duration_seconds
//
//  3. Gauge - instantaneous worker state:
//     - worker_run_status (0=idle,1=running,2=success,3=failed)
//
// Exposed via /metrics, scraped by Prometheus; same shape as any other
// Prometheus exporter in this stack.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunStatusIdle..RunStatusFailed are the worker_run_status gauge values for
// each types.RunStatus; the worker maps its status onto them before calling
// SetRunStatus. Kept here (rather than in pkg/types) since it is purely a
// metrics-presentation concern.
const (
	RunStatusIdle    = 0
	RunStatusRunning = 1
	RunStatusSuccess = 2
	RunStatusFailed  = 3
)

// Collector collects a worker's Prometheus metrics.
type Collector struct {
	heartbeatsOK    prometheus.Counter
	heartbeatsError prometheus.Counter
	jobsSucceeded   prometheus.Counter
	jobsFailed      prometheus.Counter
	kills           prometheus.Counter
	jobDuration     prometheus.Histogram
	runStatus       prometheus.Gauge
}

// NewCollector creates and registers a worker metrics collector.
func NewCollector() *Collector {
	c := &Collector{
		heartbeatsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worker_heartbeats_ok_total",
			Help: "Total number of heartbeats that reached the master",
		}),
		heartbeatsError: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worker_heartbeats_error_total",
			Help: "Total number of heartbeats that failed",
		}),
		jobsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worker_jobs_succeeded_total",
			Help: "Total number of jobs that finished successfully",
		}),
		jobsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs that finished with a failure",
		}),
		kills: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worker_kills_total",
			Help: "Total number of KILL messages acted on",
		}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Job run time in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		runStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "worker_run_status",
			Help: "Current run status (0=idle,1=running,2=success,3=failed)",
		}),
	}

	prometheus.MustRegister(c.heartbeatsOK)
	prometheus.MustRegister(c.heartbeatsError)
	prometheus.MustRegister(c.jobsSucceeded)
	prometheus.MustRegister(c.jobsFailed)
	prometheus.MustRegister(c.kills)
	prometheus.MustRegister(c.jobDuration)
	prometheus.MustRegister(c.runStatus)

	return c
}

// RecordHeartbeat records the outcome of one heartbeat round trip.
func (c *Collector) RecordHeartbeat(ok bool) {
	if ok {
		c.heartbeatsOK.Inc()
	} else {
		c.heartbeatsError.Inc()
	}
}

// RecordJobFinished records a job outcome and its run time.
func (c *Collector) RecordJobFinished(success bool, durationSeconds float64) {
	if success {
		c.jobsSucceeded.Inc()
	} else {
		c.jobsFailed.Inc()
	}
	c.jobDuration.Observe(durationSeconds)
}

// RecordKill records a KILL message acted on.
func (c *Collector) RecordKill() {
	c.kills.Inc()
}

// SetRunStatus updates the run-status gauge.
func (c *Collector) SetRunStatus(value int) {
	c.runStatus.Set(float64(value))
}

// StartServer starts the Prometheus metrics HTTP server on port.
func StartServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, mux)
}
