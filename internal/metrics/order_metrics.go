// Package metrics holds the Prometheus collectors of the order lifecycle.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Reservation failure reasons.
const (
	ReasonOutOfStock      = "out_of_stock"
	ReasonProductNotFound = "product_not_found"
	ReasonOther           = "other"
)

// OrderMetrics counts lifecycle outcomes. A nil *OrderMetrics records nothing,
// which lets handlers run without metrics in tests.
type OrderMetrics struct {
	ordersCreated       prometheus.Counter
	ordersCancelled     *prometheus.CounterVec
	statusTransitions   *prometheus.CounterVec
	reservationFailures *prometheus.CounterVec
	outboxPublished     prometheus.Counter
	outboxFailed        prometheus.Counter
	commandDuration     *prometheus.HistogramVec
}

// NewOrderMetrics registers the collectors with the default registerer.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer registers the collectors with registerer. Collectors
// that are already registered are reused.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_orders_created_total",
			Help: "Total number of orders created",
		})),
		ordersCancelled: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_orders_cancelled_total",
			Help: "Total number of orders cancelled, by reason",
		}, []string{"reason"})),
		statusTransitions: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_order_status_transitions_total",
			Help: "Total number of forward status transitions, by target status",
		}, []string{"status"})),
		reservationFailures: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_reservation_failures_total",
			Help: "Total number of failed stock reservations, by reason",
		}, []string{"reason"})),
		outboxPublished: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_outbox_events_published_total",
			Help: "Total number of outbox events published to the broker",
		})),
		outboxFailed: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_outbox_events_failed_total",
			Help: "Total number of outbox events that failed to publish",
		})),
		commandDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shop_order_command_duration_seconds",
			Help:    "Duration of order lifecycle commands in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"command"})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

func (m *OrderMetrics) RecordOrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *OrderMetrics) RecordOrderCancelled(reason string) {
	if m == nil {
		return
	}
	m.ordersCancelled.WithLabelValues(reason).Inc()
}

func (m *OrderMetrics) RecordStatusTransition(status string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(status).Inc()
}

func (m *OrderMetrics) RecordReservationFailure(reason string) {
	if m == nil {
		return
	}
	m.reservationFailures.WithLabelValues(reason).Inc()
}

func (m *OrderMetrics) RecordOutboxPublished(n int) {
	if m == nil {
		return
	}
	m.outboxPublished.Add(float64(n))
}

func (m *OrderMetrics) RecordOutboxFailed() {
	if m == nil {
		return
	}
	m.outboxFailed.Inc()
}

// ObserveCommand records how long a lifecycle command took.
func (m *OrderMetrics) ObserveCommand(command string, started time.Time) {
	if m == nil {
		return
	}
	m.commandDuration.WithLabelValues(command).Observe(time.Since(started).Seconds())
}
