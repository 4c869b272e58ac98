// Package metrics holds the Prometheus collectors of the tagging engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TagsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taggable_tags_created_total",
		Help: "Tags inserted by committed flushes.",
	})

	TaggingsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taggable_taggings_added_total",
		Help: "Taggings inserted by committed flushes.",
	})

	TaggingsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taggable_taggings_removed_total",
		Help: "Taggings deleted by committed flushes.",
	})

	FlushErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taggable_flush_errors_total",
		Help: "Flushes rolled back because a staged write failed.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "taggable_http_request_duration_seconds",
		Help:    "Time spent serving API requests.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	}, []string{"route", "status"})
)

// BuildInfo is always 1; its labels carry the running build.
var BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "taggable_build_info",
	Help: "Build metadata of the running binary.",
}, []string{"version", "commit", "branch"})
