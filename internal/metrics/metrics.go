// Package metrics records scheduler outcomes as Prometheus metrics and pushes
// them to a Pushgateway at the end of a run.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "instance_scheduler"

// Recorder holds the metrics of a single run in a private registry.
// A nil *Recorder records nothing.
type Recorder struct {
	provider string
	registry *prometheus.Registry

	decisionsTotal   *prometheus.CounterVec
	actionsTotal     *prometheus.CounterVec
	failuresTotal    *prometheus.CounterVec
	instances        *prometheus.GaugeVec
	runDuration      prometheus.Gauge
	lastRunTimestamp prometheus.Gauge
	actionLatency    *prometheus.HistogramVec
}

// NewRecorder creates a recorder whose series carry the provider label.
func NewRecorder(provider string) *Recorder {
	r := &Recorder{
		provider: provider,
		registry: prometheus.NewRegistry(),

		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Scheduling decisions by action and reason",
			},
			[]string{"provider", "action", "reason"},
		),
		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_total",
				Help:      "Power actions issued by action and result",
			},
			[]string{"provider", "action", "result"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Per-instance failures by stage (validation, action)",
			},
			[]string{"provider", "stage"},
		),
		instances: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "instances",
				Help:      "Instances seen in the last run by outcome",
			},
			[]string{"provider", "outcome"},
		),
		runDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Name:        "run_duration_seconds",
				Help:        "Duration of the last run in seconds",
				ConstLabels: prometheus.Labels{"provider": provider},
			},
		),
		lastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Name:        "last_run_timestamp_seconds",
				Help:        "Unix time the last run completed",
				ConstLabels: prometheus.Labels{"provider": provider},
			},
		),
		actionLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "action_latency_seconds",
				Help:      "Latency of power action requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 8), // 100ms to ~25s
			},
			[]string{"provider", "action"},
		),
	}

	r.registry.MustRegister(
		r.decisionsTotal,
		r.actionsTotal,
		r.failuresTotal,
		r.instances,
		r.runDuration,
		r.lastRunTimestamp,
		r.actionLatency,
	)
	return r
}

// Registry exposes the underlying registry, e.g. for testutil or a handler.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordDecision counts one reconcile decision.
func (r *Recorder) RecordDecision(action, reason string) {
	if r == nil {
		return
	}
	r.decisionsTotal.WithLabelValues(r.provider, action, reason).Inc()
}

// RecordAction counts an issued power action and its latency.
func (r *Recorder) RecordAction(action string, err error, latency time.Duration) {
	if r == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
		r.failuresTotal.WithLabelValues(r.provider, "action").Inc()
	}
	r.actionsTotal.WithLabelValues(r.provider, action, result).Inc()
	r.actionLatency.WithLabelValues(r.provider, action).Observe(latency.Seconds())
}

// RecordValidationFailure counts an instance whose schedule could not be evaluated.
func (r *Recorder) RecordValidationFailure() {
	if r == nil {
		return
	}
	r.failuresTotal.WithLabelValues(r.provider, "validation").Inc()
}

// RecordRun sets the per-outcome instance gauges and run timing.
func (r *Recorder) RecordRun(outcomes map[string]int, duration time.Duration, completed time.Time) {
	if r == nil {
		return
	}
	for outcome, n := range outcomes {
		r.instances.WithLabelValues(r.provider, outcome).Set(float64(n))
	}
	r.runDuration.Set(duration.Seconds())
	r.lastRunTimestamp.Set(float64(completed.Unix()))
}

// Push replaces the job's metrics on the Pushgateway at url.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if r == nil || url == "" {
		return nil
	}
	err := push.New(url, job).
		Gatherer(r.registry).
		Grouping("provider", r.provider).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
