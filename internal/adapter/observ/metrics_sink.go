package observ

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/usecase"
)

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipping_calculations_total",
			Help: "Total number of completed shipping calculations",
		},
		[]string{"free"},
	)

	ruleAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipping_rule_applied_total",
			Help: "Total number of rule applications",
		},
		[]string{"rule"},
	)

	shippingCost = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shipping_cost_cents",
			Help:    "Final shipping cost in cents",
			Buckets: []float64{0, 500, 1000, 2000, 3000, 5000, 8000, 12000},
		},
	)
)

// MetricsSink records calculation outcomes as Prometheus metrics.
type MetricsSink struct{}

func NewMetricsSink() *MetricsSink { return &MetricsSink{} }

func (s *MetricsSink) Publish(_ context.Context, event domain.DomainEvent) error {
	switch ev := event.(type) {
	case domain.RuleApplied:
		ruleAppliedTotal.WithLabelValues(ev.RuleName()).Inc()
	case domain.CalculationCompleted:
		free := "false"
		if ev.FinalCost().IsZero() {
			free = "true"
		}
		calculationsTotal.WithLabelValues(free).Inc()
		shippingCost.Observe(float64(ev.FinalCost().Cents()))
	}
	return nil
}

var _ usecase.EventSink = (*MetricsSink)(nil)
