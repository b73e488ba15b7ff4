package storage

import (
	"context"

	"github.com/zarlabs/zardian/quote"
)

// Storage is an abstraction over exchange quote snapshot data
type Storage interface {
	// SaveQuote saves the given exchange quote snapshot
	SaveQuote(context.Context, *quote.ExchangeQuote) error

	// LatestQuotes fetches the most recent quote per exchange,
	// sorted by exchange identifier
	LatestQuotes(context.Context) ([]*quote.ExchangeQuote, error)

	// ListExchanges lists all exchanges with recorded quotes
	ListExchanges(context.Context) ([]quote.Exchange, error)
}
