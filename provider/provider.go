package provider

import (
	"context"

	"github.com/zarlabs/zardian/quote"
)

// Provider is a single exchange quote provider.
// Implementations must be safe to call from multiple
// in-flight optimization requests concurrently
type Provider interface {
	// Name returns the exchange identifier of the provider
	Name() quote.Exchange

	// FetchQuote fetches a fresh ZAR -> USDC quote from the exchange,
	// bounded by the given context
	FetchQuote(ctx context.Context) (*quote.ExchangeQuote, error)
}
