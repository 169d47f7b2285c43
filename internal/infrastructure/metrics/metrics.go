// Package metrics defines and registers the client-side Prometheus metrics of
// the storefront. It is the single source of truth for metric names, labels
// and help strings.
//
// Metrics are registered with the default registry at package init; a host
// application that serves /metrics picks them up without extra wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── API metrics ───────────────────────────────────────────────────────────────

// APIRequestsTotal counts calls made to the backend.
// Labels:
//   - endpoint: logical operation (e.g. "login", "current_user", "admin_products")
//   - outcome: "ok" or the error kind (e.g. "network", "invalid_credentials")
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend API calls, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// APIRequestDuration measures backend round trips, transport errors included.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of backend API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Labels:
//   - to: "authenticated" or "anonymous"
//   - cause: "login", "register", "logout", "check_auth", "set_user"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions.",
	},
	[]string{"to", "cause"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts cart changes.
// Label:
//   - op: "add", "update", "remove", "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of applied cart mutations.",
	},
	[]string{"op"},
)

// StatePersistErrorsTotal counts failed writes to the durable state store.
var StatePersistErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_persist_errors_total",
		Help:      "Total number of failed writes to the local state store, by key.",
	},
	[]string{"key"},
)
