package optimizer

import (
	"log/slog"
	"time"

	"github.com/zarlabs/zardian/storage"
)

type Option func(o *Optimizer)

// WithLogger specifies the logger for the optimizer
func WithLogger(l *slog.Logger) Option {
	return func(o *Optimizer) {
		o.logger = l
	}
}

// WithTimeout specifies the per-request quote fan-out deadline.
// Defaults to 10s
func WithTimeout(t time.Duration) Option {
	return func(o *Optimizer) {
		if t > 0 {
			o.timeout = t
		}
	}
}

// WithStorage specifies the quote snapshot store. When set, every
// successfully collected quote is recorded
func WithStorage(s storage.Storage) Option {
	return func(o *Optimizer) {
		o.storage = s
	}
}

// WithMetrics specifies the Prometheus metrics for the optimizer
func WithMetrics(m *Metrics) Option {
	return func(o *Optimizer) {
		o.metrics = m
	}
}
