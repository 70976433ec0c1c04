// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package metrics holds the prometheus collectors of the weather aggregator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatheraggregator_provider_calls_total",
			Help: "Total weather provider calls by outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatheraggregator_provider_latency_seconds",
			Help:    "Weather provider fetch and normalize latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	ProviderSwitchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weatheraggregator_provider_switches_total",
			Help: "Total successful primary provider switches",
		},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatheraggregator_cache_requests_total",
			Help: "Total cache lookups by result",
		},
		[]string{"cache", "result"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weatheraggregator_cache_entries",
			Help: "Number of live entries per cache",
		},
		[]string{"cache"},
	)
)

// Outcome labels for ProviderCallsTotal.
const (
	OutcomeOK              = "ok"
	OutcomeNoData          = "no_data"
	OutcomeNotConfigured   = "not_configured"
	OutcomeUnexpectedShape = "unexpected_shape"
	OutcomeError           = "error"
)

// Result labels for CacheRequestsTotal.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)
