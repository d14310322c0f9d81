// Package metrics defines all custom Prometheus metrics for the auth API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry at init;
// the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// SignupsTotal counts account creations.
// Label:
//   - result: "created" or "duplicate_email"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, labelled by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts token checks performed by the auth middleware.
// Label:
//   - result: "ok", "expired", "invalid_signature", "malformed", "unknown_subject"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations, labelled by result.",
	},
	[]string{"result"},
)

// IdentityCacheTotal counts gate identity lookups by cache outcome.
// Label:
//   - result: "hit" or "miss"
var IdentityCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_cache_total",
		Help:      "Total number of identity cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks pending audit events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker
// channel was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full worker queue.",
	},
)

// PasswordHashDuration measures bcrypt hashing time during signup and login.
// Label:
//   - op: "hash" or "verify"
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt hash and verify operations.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"op"},
)
