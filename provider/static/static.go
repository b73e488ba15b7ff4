// Package static provides fixed, locally-configured quote providers,
// used for offline runs and testing
package static

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/provider"
	"github.com/zarlabs/zardian/quote"
)

// Provider serves a fixed quote, refreshing only the fetch timestamp
type Provider struct {
	quote quote.ExchangeQuote
}

// NewProvider creates a new static provider from the given quote
func NewProvider(q quote.ExchangeQuote) *Provider {
	return &Provider{
		quote: q,
	}
}

func (p *Provider) Name() quote.Exchange {
	return p.quote.Exchange
}

func (p *Provider) FetchQuote(_ context.Context) (*quote.ExchangeQuote, error) {
	q := p.quote
	q.FetchedAt = time.Now().UTC()

	return &q, nil
}

// DefaultProviders returns static providers mirroring the known
// fee schedules, with indicative ZAR per USDC prices
func DefaultProviders() []provider.Provider {
	one := decimal.NewFromInt(1)

	return []provider.Provider{
		NewProvider(quote.ExchangeQuote{
			Exchange:      "binance",
			Rate:          one.Div(decimal.RequireFromString("18.5")),
			DepositFee:    quote.None(),
			TradingFee:    quote.Percentage(decimal.RequireFromString("0.001")),
			WithdrawalFee: quote.FixedUSDC(decimal.NewFromInt(1)),
		}),
		NewProvider(quote.ExchangeQuote{
			Exchange:      "luno",
			Rate:          one.Div(decimal.RequireFromString("18.7")),
			DepositFee:    quote.None(),
			TradingFee:    quote.Percentage(decimal.RequireFromString("0.005")),
			WithdrawalFee: quote.FixedUSDC(decimal.RequireFromString("0.5")),
		}),
		NewProvider(quote.ExchangeQuote{
			Exchange:      "bybit",
			Rate:          one.Div(decimal.RequireFromString("18.6")),
			DepositFee:    quote.None(),
			TradingFee:    quote.Percentage(decimal.RequireFromString("0.003")),
			WithdrawalFee: quote.FixedUSDC(decimal.NewFromInt(1)),
		}),
	}
}
