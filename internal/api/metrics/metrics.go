// Package metrics defines and registers all custom Prometheus metrics for the
// SkillsHub API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillshub"

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionsCreatedTotal counts sessions issued at login.
var SessionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of sessions created.",
	},
)

// SessionLookupsTotal counts session resolutions performed by the middleware.
// Label:
//   - result: "hit" (identity resolved), "miss" (absent/expired) or "error"
var SessionLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_lookups_total",
		Help:      "Total number of session lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Application metrics ──────────────────────────────────────────────────────

// ApplicationsCreatedTotal counts submitted job applications.
var ApplicationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Total number of job applications submitted.",
	},
)

// ApplicationStatusChangesTotal counts review pipeline moves.
// Label:
//   - status: the new application status (e.g. "SHORTLISTED")
var ApplicationStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_status_changes_total",
		Help:      "Total number of application status changes, by new status.",
	},
	[]string{"status"},
)

// DedupDecisionsTotal counts idempotency key decisions.
// Labels:
//   - scope: "application" or "message"
//   - result: "new" or "duplicate"
var DedupDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dedup_decisions_total",
		Help:      "Total number of idempotency key checks, labelled by scope and result.",
	},
	[]string{"scope", "result"},
)

// ── Matching metrics ─────────────────────────────────────────────────────────

// MatchScores records the distribution of computed match scores.
// Label:
//   - kind: "job" (seeker-facing) or "talent" (employer-facing)
var MatchScores = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_score",
		Help:      "Distribution of computed match scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11), // 0, 10, …, 100
	},
	[]string{"kind"},
)

// ── Upload metrics ───────────────────────────────────────────────────────────

// UploadsTotal counts stored uploads.
// Label:
//   - kind: "resume", "portfolio" or "logo"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files uploaded, by kind.",
	},
	[]string{"kind"},
)

// ── Notification metrics ─────────────────────────────────────────────────────

// NotificationsSentTotal counts delivered notification emails.
// Label:
//   - kind: notification kind (e.g. "verify_email")
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notification emails delivered.",
	},
	[]string{"kind"},
)

// NotificationsFailedTotal counts notifications that could not be delivered.
// Labels:
//   - kind: notification kind
//   - reason: "send_failed" or "dropped" (queue full or dispatcher stopped)
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of notifications not delivered, by kind and reason.",
	},
	[]string{"kind", "reason"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDeliveryDuration measures a single delivery attempt.
// Label:
//   - result: "ok" or "error"
var NotificationDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of a single notification delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
