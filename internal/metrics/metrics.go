// Package metrics holds the planner's prometheus counters.
// Counters are package-level so services can bump them without plumbing;
// Register exposes them on the default registry.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "planner"

var (
	once sync.Once

	itemsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_created_total",
			Help:      "Count of items created, by whether they have a time window.",
		},
		[]string{"scheduled"},
	)

	overlapRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlap_rejections_total",
			Help:      "Count of item writes rejected because they overlapped a sibling.",
		},
	)

	validationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Count of rejected inputs by entity.",
		},
		[]string{"entity"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method and status code.",
		},
		[]string{"method", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(itemsCreated, overlapRejections, validationFailures, httpRequests)
	})
}

func IncItemCreated(scheduled bool) {
	itemsCreated.WithLabelValues(strconv.FormatBool(scheduled)).Inc()
}

func IncOverlapRejection() {
	overlapRejections.Inc()
}

func IncValidationFailure(entity string) {
	validationFailures.WithLabelValues(entity).Inc()
}

func IncHTTPRequest(method string, status int) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
