// Package metrics defines the custom Prometheus metrics for the events API.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "events"

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsCreatedTotal counts pending registrations successfully created.
var RegistrationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_created_total",
		Help:      "Total number of pending registrations created.",
	},
)

// RegistrationsRejectedTotal counts registration attempts that were refused.
// Label:
//   - reason: "invalid_email", "event_not_found", "not_registrable",
//     "capacity_exceeded", "duplicate", "rate_limited"
var RegistrationsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_rejected_total",
		Help:      "Total number of registration attempts refused, by reason.",
	},
	[]string{"reason"},
)

// ConfirmationsTotal counts confirmation attempts by outcome.
// Label:
//   - result: "confirmed", "already_confirmed", "not_found"
var ConfirmationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmations_total",
		Help:      "Total number of confirmation attempts, by outcome.",
	},
	[]string{"result"},
)

// ── Email metrics ─────────────────────────────────────────────────────────────

// EmailsEnqueuedTotal counts jobs accepted into the email queue.
// Label:
//   - type: "confirmation" or "reminder"
var EmailsEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_enqueued_total",
		Help:      "Total number of email jobs enqueued, by type.",
	},
	[]string{"type"},
)

// EmailsDroppedTotal counts jobs dropped because the queue was full.
var EmailsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_dropped_total",
		Help:      "Total number of email jobs dropped due to a full queue, by type.",
	},
	[]string{"type"},
)

// EmailsSentTotal counts delivery attempts by outcome.
// Labels:
//   - type: "confirmation" or "reminder"
//   - result: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of email delivery attempts, by type and result.",
	},
	[]string{"type", "result"},
)

// EmailQueueDepth tracks the jobs waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EmailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "email_queue_depth",
		Help:      "Current number of email jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)
