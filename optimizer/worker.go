package optimizer

import (
	"context"

	"github.com/zarlabs/zardian/provider"
	"github.com/zarlabs/zardian/quote"
)

// workerInfo is the work context for the quote fetch routine
type workerInfo struct {
	provider provider.Provider
	resCh    chan<- *workerResponse
}

// workerResponse is the quote fetch routine response
type workerResponse struct {
	error    error                // encountered error, if any
	quote    *quote.ExchangeQuote // the fetched quote
	exchange quote.Exchange       // the exchange identifier
}

// handleFetch fetches a quote using the provider
func handleFetch(
	ctx context.Context,
	info *workerInfo,
) {
	q, err := info.provider.FetchQuote(ctx)

	response := &workerResponse{
		error:    err,
		quote:    q,
		exchange: info.provider.Name(),
	}

	select {
	case <-ctx.Done():
	case info.resCh <- response:
	}
}
