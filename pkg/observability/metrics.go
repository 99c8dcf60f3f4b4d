package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway transaction metrics
	gatewayTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nmi_gateway_transactions_total",
		Help: "Total number of gateway transactions",
	}, []string{
		"operation",    // sale, auth, capture, void, refund, credit, validate, add_customer, delete_customer
		"payment_type", // creditcard, check, or empty for referencing operations
		"result",       // approved, declined, transport_error, parse_error
	})

	gatewayAmountCents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nmi_gateway_amount_cents_total",
		Help: "Total transacted amount in minor units (approved transactions only)",
	}, []string{
		"operation",
		"payment_type",
	})

	gatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "nmi_gateway_request_duration_seconds",
		Help: "Round-trip time of one gateway request",
		// Buckets: 100ms to 30s (typical payment processing times)
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{
		"operation",
		"result",
	})
)

// RecordTransaction records the outcome of one gateway operation.
func RecordTransaction(operation, paymentType, result string, duration time.Duration) {
	gatewayTransactionsTotal.WithLabelValues(operation, paymentType, result).Inc()
	gatewayRequestDuration.WithLabelValues(operation, result).Observe(duration.Seconds())
}

// RecordAmount tracks approved volume for revenue dashboards.
func RecordAmount(operation, paymentType string, amountCents int64) {
	gatewayAmountCents.WithLabelValues(operation, paymentType).Add(float64(amountCents))
}
