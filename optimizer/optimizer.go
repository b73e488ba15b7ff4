package optimizer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/provider"
	"github.com/zarlabs/zardian/quote"
	"github.com/zarlabs/zardian/storage"
)

// DefaultTimeout is the default per-request quote fan-out deadline
const DefaultTimeout = time.Second * 10

// Optimizer finds the cheapest ZAR -> USDC conversion path across
// the registered exchange providers. Safe for concurrent use; each
// request owns its own quote set and result
type Optimizer struct {
	logger  *slog.Logger
	storage storage.Storage
	metrics *Metrics

	registeredProviders sync.Map // quote.Exchange -> provider.Provider

	timeout time.Duration
}

// New creates a new Optimizer instance
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: DefaultTimeout,
	}

	// Apply the options
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Register registers a new exchange provider with the optimizer
func (o *Optimizer) Register(p provider.Provider) error {
	if p == nil || p.Name() == "" {
		return errInvalidProvider
	}

	if _, loaded := o.registeredProviders.LoadOrStore(p.Name(), p); loaded {
		return fmt.Errorf("%w: %s", errDuplicateProvider, p.Name())
	}

	o.logger.Info(
		"registered new provider",
		"exchange", p.Name(),
	)

	return nil
}

// Exchanges returns the registered exchange identifiers, sorted
func (o *Optimizer) Exchanges() []quote.Exchange {
	var exchanges []quote.Exchange

	o.registeredProviders.Range(
		func(key, _ any) bool {
			exchange, _ := key.(quote.Exchange)
			exchanges = append(exchanges, exchange)

			return true
		},
	)

	sort.Slice(exchanges, func(i, j int) bool {
		return exchanges[i] < exchanges[j]
	})

	return exchanges
}

// FindOptimalPath finds the cheapest conversion path for the given
// ZAR amount. When exchanges are given, only those providers are
// queried; otherwise every registered provider is. The whole fan-out
// is bounded by the configured timeout.
//
// Returns ErrInvalidAmount for a non-positive amount, and a
// *NoQuotesError when zero providers produced a usable quote.
// Per-exchange failures are carried on the result, never raised
func (o *Optimizer) FindOptimalPath(
	ctx context.Context,
	zarAmount decimal.Decimal,
	exchanges ...quote.Exchange,
) (*ConversionResult, error) {
	start := time.Now()

	// Validate the amount before any provider is contacted
	if zarAmount.Sign() <= 0 {
		o.metrics.optimizationDone(outcomeInvalidAmount, time.Since(start))

		return nil, fmt.Errorf("%w (got %s)", ErrInvalidAmount, zarAmount)
	}

	o.logger.Info(
		"finding optimal conversion path",
		"zar_amount", zarAmount,
	)

	// Resolve the provider set for this request
	providers, failures := o.resolveProviders(exchanges)

	// Fan out to the providers, bounded by the request deadline
	fetchCtx, cancelFn := context.WithTimeout(ctx, o.timeout)
	defer cancelFn()

	agg := o.aggregateQuotes(fetchCtx, providers)

	for exchange, reason := range failures {
		agg.failures[exchange] = reason
	}

	if len(agg.quotes) == 0 {
		o.metrics.optimizationDone(outcomeNoQuotes, time.Since(start))

		return nil, &NoQuotesError{Failures: agg.failures}
	}

	// Keep a snapshot of every collected quote
	o.persistQuotes(ctx, agg.quotes)

	// Cost every quote; a broken quote only removes its exchange
	paths := make([]*ConversionPath, 0, len(agg.quotes))

	for _, q := range agg.quotes {
		path, err := Compute(q, zarAmount)
		if err != nil {
			o.logger.Warn(
				"unable to cost quote",
				"exchange", q.Exchange,
				"err", err,
			)

			agg.failures[q.Exchange] = FailureReason{
				Kind:    FailureInvalidQuote,
				Message: err.Error(),
			}

			continue
		}

		paths = append(paths, path)
	}

	if len(paths) == 0 {
		o.metrics.optimizationDone(outcomeNoQuotes, time.Since(start))

		return nil, &NoQuotesError{Failures: agg.failures}
	}

	// Rank the costed paths
	optimal, alternatives, err := Rank(paths)
	if err != nil {
		return nil, err
	}

	result := &ConversionResult{
		ID:           xid.New(),
		Timestamp:    time.Now().UTC(),
		Optimal:      optimal,
		Alternatives: alternatives,
		Failures:     agg.failures,
	}

	o.logger.Info(
		"optimal conversion path found",
		"exchange", result.BestExchange(),
		"rate", result.BestRate(),
		"net_usdc", result.FinalAmount(),
		"alternatives", len(alternatives),
		"failures", len(agg.failures),
	)

	o.metrics.optimizationDone(outcomeOK, time.Since(start))

	return result, nil
}

// resolveProviders resolves the requested exchange subset to
// registered providers. An empty subset selects every registered
// provider; unknown identifiers are recorded as failures
func (o *Optimizer) resolveProviders(
	exchanges []quote.Exchange,
) ([]provider.Provider, FailureMap) {
	var (
		providers []provider.Provider
		failures  = make(FailureMap)
	)

	if len(exchanges) == 0 {
		o.registeredProviders.Range(
			func(_, value any) bool {
				p, _ := value.(provider.Provider)
				providers = append(providers, p)

				return true
			},
		)

		return providers, failures
	}

	for _, exchange := range exchanges {
		value, ok := o.registeredProviders.Load(exchange)
		if !ok {
			failures[exchange] = FailureReason{
				Kind:    FailureProvider,
				Message: "exchange is not registered",
			}

			continue
		}

		p, _ := value.(provider.Provider)
		providers = append(providers, p)
	}

	return providers, failures
}

// persistQuotes saves the collected quote snapshots, best effort
func (o *Optimizer) persistQuotes(ctx context.Context, quotes []*quote.ExchangeQuote) {
	if o.storage == nil {
		return
	}

	for _, q := range quotes {
		saveCtx, cancelFn := context.WithTimeout(ctx, time.Second*5)

		if err := o.storage.SaveQuote(saveCtx, q); err != nil {
			o.logger.Error(
				"unable to save quote snapshot",
				"exchange", q.Exchange,
				"err", err,
			)
		}

		cancelFn()
	}
}
