package optimizer

import (
	"context"

	"github.com/zarlabs/zardian/provider"
	"github.com/zarlabs/zardian/quote"
)

// aggregation is the combined outcome of one quote fan-out
type aggregation struct {
	quotes   []*quote.ExchangeQuote
	failures FailureMap
}

// aggregateQuotes fans out to the given providers concurrently and
// collects whichever quotes arrive before the context deadline.
// Individual provider failures are recorded, never raised, and never
// abort sibling fetches. At the deadline, all still-pending providers
// are recorded as timed out and abandoned
func (o *Optimizer) aggregateQuotes(
	ctx context.Context,
	providers []provider.Provider,
) *aggregation {
	agg := &aggregation{
		quotes:   make([]*quote.ExchangeQuote, 0, len(providers)),
		failures: make(FailureMap),
	}

	var (
		collectorCh = make(chan *workerResponse, len(providers))
		pending     = make(map[quote.Exchange]struct{}, len(providers))
	)

	// Spawn a fetch worker per provider
	for _, p := range providers {
		pending[p.Name()] = struct{}{}

		info := &workerInfo{
			provider: p,
			resCh:    collectorCh,
		}

		go handleFetch(ctx, info)
	}

	for len(pending) > 0 {
		select {
		case <-ctx.Done():
			// Deadline reached, all outstanding providers count as failed
			for exchange := range pending {
				o.logger.Warn(
					"quote fetch timed out",
					"exchange", exchange,
				)

				o.metrics.quoteFailed(exchange, FailureTimeout)

				agg.failures[exchange] = FailureReason{
					Kind:    FailureTimeout,
					Message: "quote fetch timed out",
				}
			}

			return agg
		case response := <-collectorCh:
			delete(pending, response.exchange)

			if response.error != nil {
				o.logger.Warn(
					"error encountered during quote fetch",
					"exchange", response.exchange,
					"err", response.error,
				)

				o.metrics.quoteFailed(response.exchange, FailureProvider)

				agg.failures[response.exchange] = FailureReason{
					Kind:    FailureProvider,
					Message: response.error.Error(),
				}

				continue
			}

			if response.quote == nil {
				o.metrics.quoteFailed(response.exchange, FailureInvalidQuote)

				agg.failures[response.exchange] = FailureReason{
					Kind:    FailureInvalidQuote,
					Message: "provider returned no quote",
				}

				continue
			}

			if err := response.quote.Validate(); err != nil {
				o.logger.Warn(
					"provider returned malformed quote",
					"exchange", response.exchange,
					"err", err,
				)

				o.metrics.quoteFailed(response.exchange, FailureInvalidQuote)

				agg.failures[response.exchange] = FailureReason{
					Kind:    FailureInvalidQuote,
					Message: err.Error(),
				}

				continue
			}

			o.logger.Info(
				"collected exchange quote",
				"exchange", response.exchange,
				"rate", response.quote.Rate,
			)

			o.metrics.quoteFetched(response.exchange)

			agg.quotes = append(agg.quotes, response.quote)
		}
	}

	return agg
}
