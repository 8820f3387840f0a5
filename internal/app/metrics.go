package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/quote-store/internal/domain"
)

// Operation names used as the "operation" metric label and span names.
const (
	OpList   = "list"
	OpRandom = "random"
	OpGet    = "get"
	OpCreate = "create"
	OpDelete = "delete"
)

// Outcome label values.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

var (
	quoteOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_operations_total",
		Help: "Quote store operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	quoteStoreSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quote_store_size",
		Help: "Number of quotes currently held in the store.",
	})
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case domain.IsNotFound(err):
		return outcomeNotFound
	case domain.IsValidation(err):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

func observe(op string, err error) {
	quoteOperations.WithLabelValues(op, outcomeOf(err)).Inc()
}
