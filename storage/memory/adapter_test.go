package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarlabs/zardian/quote"
)

func makeQuote(exchange quote.Exchange, rate string, fetchedAt time.Time) *quote.ExchangeQuote {
	return &quote.ExchangeQuote{
		FetchedAt:     fetchedAt,
		Exchange:      exchange,
		Rate:          decimal.RequireFromString(rate),
		DepositFee:    quote.None(),
		TradingFee:    quote.Percentage(decimal.RequireFromString("0.001")),
		WithdrawalFee: quote.FixedUSDC(decimal.NewFromInt(1)),
	}
}

func TestMemory_LatestQuotes(t *testing.T) {
	t.Parallel()

	var (
		s   = NewStorage()
		ctx = context.Background()

		older = time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
		newer = older.Add(time.Hour)
	)

	require.NoError(t, s.SaveQuote(ctx, makeQuote("luno", "0.053", older)))
	require.NoError(t, s.SaveQuote(ctx, makeQuote("luno", "0.054", newer)))
	require.NoError(t, s.SaveQuote(ctx, makeQuote("binance", "0.055", older)))

	latest, err := s.LatestQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)

	// Sorted by exchange, latest snapshot wins
	assert.Equal(t, quote.Exchange("binance"), latest[0].Exchange)
	assert.Equal(t, quote.Exchange("luno"), latest[1].Exchange)
	assert.True(t, latest[1].Rate.Equal(decimal.RequireFromString("0.054")))
}

func TestMemory_ListExchanges(t *testing.T) {
	t.Parallel()

	var (
		s   = NewStorage()
		ctx = context.Background()

		now = time.Now().UTC()
	)

	exchanges, err := s.ListExchanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, exchanges)

	require.NoError(t, s.SaveQuote(ctx, makeQuote("luno", "0.053", now)))
	require.NoError(t, s.SaveQuote(ctx, makeQuote("binance", "0.055", now)))
	require.NoError(t, s.SaveQuote(ctx, makeQuote("binance", "0.056", now.Add(time.Minute))))

	exchanges, err = s.ListExchanges(ctx)
	require.NoError(t, err)

	assert.Equal(t, []quote.Exchange{"binance", "luno"}, exchanges)
}
