// Package metrics holds the prometheus collectors of the selector service
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Price fetch metrics
var (
	PriceRounds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePriceRounds,
			Help:      HelpTextPriceRounds,
		},
		[]string{LabelOutcome},
	)

	PriceQuotes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePriceQuotes,
			Help:      HelpTextPriceQuotes,
		},
	)

	PriceFetchAborted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePriceFetchAborted,
			Help:      HelpTextPriceFetchAborted,
		},
	)

	PriceFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNamePriceFetchDuration,
			Help:      HelpTextPriceFetchDuration,
			Buckets:   FetchLatencyBuckets,
		},
	)
)

// Selection metrics
var (
	SlotsSelected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSlotsSelected,
			Help:      HelpTextSlotsSelected,
		},
		[]string{LabelResult, LabelStrategy},
	)

	SelectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameSelectionDuration,
			Help:      HelpTextSelectionDuration,
			Buckets:   FetchLatencyBuckets,
		},
	)

	VariantsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameVariantsSkipped,
			Help:      HelpTextVariantsSkipped,
		},
	)
)

// Handler serves the default registry in the prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
