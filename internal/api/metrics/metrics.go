// Package metrics defines the custom Prometheus metrics of the portal and the
// reference backend. All vectors live on the default registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

const namespace = "complaints"

// ── Portal: degraded mode ─────────────────────────────────────────────────────

// FallbacksTotal counts reads answered from the fixture set.
// Label:
//   - operation: "list" or "get"
var FallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "portal",
		Name:      "fallbacks_total",
		Help:      "Reads answered with fixture data because the backend failed.",
	},
	[]string{"operation"},
)

// LocalOnlyTotal counts status changes kept locally after the backend
// refused or could not be reached.
var LocalOnlyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "portal",
		Name:      "local_only_writes_total",
		Help:      "Status changes applied locally but not persisted by the backend.",
	},
	[]string{"operation"},
)

// ── Portal: upstream calls ────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the complaints backend.
// Labels:
//   - operation: list, get, create, update_status, ping
//   - result: "ok" or the error kind (unavailable, not_found, rejected, unknown)
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "portal",
		Name:      "upstream_requests_total",
		Help:      "Calls made to the complaints backend, by operation and result.",
	},
	[]string{"operation", "result"},
)

var UpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "portal",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of calls to the complaints backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// SubmissionsTotal counts creation form submits.
// Label:
//   - result: "created", "invalid" or "failed"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "portal",
		Name:      "submissions_total",
		Help:      "Complaint creation form submissions, by outcome.",
	},
	[]string{"result"},
)

// ── Portal: workspaces ────────────────────────────────────────────────────────

var WorkspacesActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "portal",
		Name:      "workspaces_active",
		Help:      "Sessions currently holding view state.",
	},
)

var WorkspacesEvictedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "portal",
		Name:      "workspaces_evicted_total",
		Help:      "Idle session workspaces dropped by the sweeper.",
	},
)

// ── Backend ───────────────────────────────────────────────────────────────────

// ComplaintsCreatedTotal counts complaints stored by the reference backend.
// Label:
//   - category: the complaint category
var ComplaintsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "created_total",
		Help:      "Complaints created, by category.",
	},
	[]string{"category"},
)

var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "status_changes_total",
		Help:      "Status changes persisted, by new status.",
	},
	[]string{"status"},
)

// IdempotentReplaysTotal counts creations answered from an Idempotency-Key.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "idempotent_replays_total",
		Help:      "Create requests answered with a previously created complaint.",
	},
)

// Recorder feeds the vectors above from the gateway and the REST client.
type Recorder struct{}

func (Recorder) Fallback(operation string) {
	FallbacksTotal.WithLabelValues(operation).Inc()
}

func (Recorder) LocalOnly(operation string) {
	LocalOnlyTotal.WithLabelValues(operation).Inc()
}

func (Recorder) ObserveCall(operation string, kind domain.ErrorKind, elapsed time.Duration) {
	result := string(kind)
	if kind == domain.KindNone {
		result = "ok"
	}
	UpstreamRequestsTotal.WithLabelValues(operation, result).Inc()
	UpstreamDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
