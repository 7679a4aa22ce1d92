// Package metrics defines and registers all custom Prometheus metrics for the
// VoteHub API. It is the single source of truth for metric names, labels, and
// help strings; collectors register with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "votehub"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad email/password/input) or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsReconciledTotal counts reconciliation outcomes for resumed sessions.
// Label:
//   - outcome: "refreshed" (canonical record matched the cache),
//     "drift" (role corrected from the database),
//     "degraded" (store unreachable, cached data kept),
//     "deleted" (account confirmed gone, session cleared)
var SessionsReconciledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_reconciled_total",
		Help:      "Total number of session reconciliations, by outcome.",
	},
	[]string{"outcome"},
)

// ── Voting metrics ────────────────────────────────────────────────────────────

// VotesCastTotal counts recorded votes.
// Label:
//   - kind: "created" (first vote by this judge on this submission) or
//     "updated" (rating replaced)
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of votes recorded, by kind.",
	},
	[]string{"kind"},
)

// SubmissionsCreatedTotal counts newly created submissions.
var SubmissionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_created_total",
		Help:      "Total number of submissions created.",
	},
)

// ── Results dashboard metrics ─────────────────────────────────────────────────

// ResultsCacheTotal counts results-cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (recomputed)
var ResultsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_cache_total",
		Help:      "Total number of results cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ResultsQueueDepth tracks the current number of refresh jobs waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ResultsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "results_queue_depth",
		Help:      "Current number of refresh jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ResultsRecomputeDuration measures how long one dashboard recompute takes.
// Label:
//   - result: "ok" or "error"
var ResultsRecomputeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "results_recompute_duration_seconds",
		Help:      "Duration of a results recompute from dequeue to cache refresh.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)
