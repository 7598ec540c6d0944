// Package metrics defines the application's Prometheus metrics. All metrics
// are registered with the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "event_portal"

// Result label values shared by the counters below.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// SignupsTotal counts account registrations.
// Label result: success, rejected (validation or duplicate), error.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of account signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label result: success, rejected (unknown user or wrong password), error.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// EventRegistrationsTotal counts register-for-event attempts.
var EventRegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_registrations_total",
		Help:      "Total number of event registration attempts, by result.",
	},
	[]string{"result"},
)

// SessionRejectionsTotal counts requests bounced to /login by the session check.
// Label reason: missing, invalid.
var SessionRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rejections_total",
		Help:      "Total number of requests redirected to login for lack of a valid session.",
	},
	[]string{"reason"},
)

// CatalogEvents is the number of events present after the last seeding run.
var CatalogEvents = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_events",
		Help:      "Number of catalog events known after the last seeding run.",
	},
)

// CatalogCacheTotal counts catalog cache lookups.
// Label result: hit, miss.
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ObserveCatalogLookup counts one catalog cache lookup as a hit or a miss.
func ObserveCatalogLookup(hit bool) {
	if hit {
		CatalogCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	CatalogCacheTotal.WithLabelValues("miss").Inc()
}
