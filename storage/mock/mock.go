package mock

import (
	"context"

	"github.com/zarlabs/zardian/quote"
)

type (
	SaveQuoteDelegate     func(context.Context, *quote.ExchangeQuote) error
	LatestQuotesDelegate  func(context.Context) ([]*quote.ExchangeQuote, error)
	ListExchangesDelegate func(context.Context) ([]quote.Exchange, error)
)

type Storage struct {
	SaveQuoteFn     SaveQuoteDelegate
	LatestQuotesFn  LatestQuotesDelegate
	ListExchangesFn ListExchangesDelegate
}

func (m *Storage) SaveQuote(ctx context.Context, q *quote.ExchangeQuote) error {
	if m.SaveQuoteFn != nil {
		return m.SaveQuoteFn(ctx, q)
	}

	return nil
}

func (m *Storage) LatestQuotes(ctx context.Context) ([]*quote.ExchangeQuote, error) {
	if m.LatestQuotesFn != nil {
		return m.LatestQuotesFn(ctx)
	}

	return nil, nil
}

func (m *Storage) ListExchanges(ctx context.Context) ([]quote.Exchange, error) {
	if m.ListExchangesFn != nil {
		return m.ListExchangesFn(ctx)
	}

	return nil, nil
}
