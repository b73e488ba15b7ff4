package mock

import (
	"context"

	"github.com/zarlabs/zardian/quote"
)

type (
	NameDelegate       func() quote.Exchange
	FetchQuoteDelegate func(context.Context) (*quote.ExchangeQuote, error)
)

type Provider struct {
	NameFn       NameDelegate
	FetchQuoteFn FetchQuoteDelegate
}

func (m *Provider) Name() quote.Exchange {
	if m.NameFn != nil {
		return m.NameFn()
	}

	return ""
}

func (m *Provider) FetchQuote(ctx context.Context) (*quote.ExchangeQuote, error) {
	if m.FetchQuoteFn != nil {
		return m.FetchQuoteFn(ctx)
	}

	return nil, nil
}
