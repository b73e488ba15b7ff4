package optimizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarlabs/zardian/provider"
	"github.com/zarlabs/zardian/provider/mock"
	"github.com/zarlabs/zardian/quote"
)

func mockProvider(
	name quote.Exchange,
	fetchFn mock.FetchQuoteDelegate,
) *mock.Provider {
	return &mock.Provider{
		NameFn: func() quote.Exchange {
			return name
		},
		FetchQuoteFn: fetchFn,
	}
}

func validQuoteFor(name quote.Exchange, rate string) *quote.ExchangeQuote {
	return &quote.ExchangeQuote{
		FetchedAt:     time.Now().UTC(),
		Exchange:      name,
		Rate:          decimal.RequireFromString(rate),
		DepositFee:    quote.None(),
		TradingFee:    quote.Percentage(decimal.RequireFromString("0.001")),
		WithdrawalFee: quote.FixedUSDC(decimal.NewFromInt(1)),
	}
}

func TestAggregator_AllSucceed(t *testing.T) {
	t.Parallel()

	o := New()

	providers := []provider.Provider{
		mockProvider("binance", func(_ context.Context) (*quote.ExchangeQuote, error) {
			return validQuoteFor("binance", "0.055"), nil
		}),
		mockProvider("luno", func(_ context.Context) (*quote.ExchangeQuote, error) {
			return validQuoteFor("luno", "0.053"), nil
		}),
	}

	agg := o.aggregateQuotes(context.Background(), providers)

	assert.Len(t, agg.quotes, 2)
	assert.Empty(t, agg.failures)
}

func TestAggregator_PartialFailure(t *testing.T) {
	t.Parallel()

	o := New()

	providers := []provider.Provider{
		mockProvider("binance", func(_ context.Context) (*quote.ExchangeQuote, error) {
			return validQuoteFor("binance", "0.055"), nil
		}),
		mockProvider("luno", func(_ context.Context) (*quote.ExchangeQuote, error) {
			return nil, errors.New("rate limited")
		}),
	}

	agg := o.aggregateQuotes(context.Background(), providers)

	// A sibling failure never removes the successful quote
	require.Len(t, agg.quotes, 1)
	assert.Equal(t, quote.Exchange("binance"), agg.quotes[0].Exchange)

	// The failure is retained with its reason
	require.Contains(t, agg.failures, quote.Exchange("luno"))
	assert.Equal(t, FailureProvider, agg.failures["luno"].Kind)
	assert.Equal(t, "rate limited", agg.failures["luno"].Message)
}

func TestAggregator_InvalidQuotes(t *testing.T) {
	t.Parallel()

	t.Run("nil quote", func(t *testing.T) {
		t.Parallel()

		o := New()

		providers := []provider.Provider{
			mockProvider("luno", func(_ context.Context) (*quote.ExchangeQuote, error) {
				return nil, nil
			}),
		}

		agg := o.aggregateQuotes(context.Background(), providers)

		assert.Empty(t, agg.quotes)
		require.Contains(t, agg.failures, quote.Exchange("luno"))
		assert.Equal(t, FailureInvalidQuote, agg.failures["luno"].Kind)
	})

	t.Run("malformed quote", func(t *testing.T) {
		t.Parallel()

		o := New()

		providers := []provider.Provider{
			mockProvider("luno", func(_ context.Context) (*quote.ExchangeQuote, error) {
				q := validQuoteFor("luno", "0.053")
				q.Rate = decimal.Zero

				return q, nil
			}),
		}

		agg := o.aggregateQuotes(context.Background(), providers)

		assert.Empty(t, agg.quotes)
		require.Contains(t, agg.failures, quote.Exchange("luno"))
		assert.Equal(t, FailureInvalidQuote, agg.failures["luno"].Kind)
	})
}

func TestAggregator_Timeout(t *testing.T) {
	t.Parallel()

	o := New()

	// Holds the straggling provider hostage until the test is done,
	// so it can never respond before the deadline
	release := make(chan struct{})
	t.Cleanup(func() {
		close(release)
	})

	providers := []provider.Provider{
		mockProvider("binance", func(_ context.Context) (*quote.ExchangeQuote, error) {
			return validQuoteFor("binance", "0.055"), nil
		}),
		mockProvider("luno", func(_ context.Context) (*quote.ExchangeQuote, error) {
			<-release

			return nil, errors.New("too late")
		}),
	}

	ctx, cancelFn := context.WithTimeout(context.Background(), time.Millisecond*100)
	defer cancelFn()

	start := time.Now()
	agg := o.aggregateQuotes(ctx, providers)

	// The fan-out never blocks past the deadline
	assert.Less(t, time.Since(start), time.Second)

	// The fast quote is kept, the straggler counts as timed out
	require.Len(t, agg.quotes, 1)
	assert.Equal(t, quote.Exchange("binance"), agg.quotes[0].Exchange)

	require.Contains(t, agg.failures, quote.Exchange("luno"))
	assert.Equal(t, FailureTimeout, agg.failures["luno"].Kind)
}

func TestAggregator_AllFail(t *testing.T) {
	t.Parallel()

	o := New()

	providers := []provider.Provider{
		mockProvider("binance", func(_ context.Context) (*quote.ExchangeQuote, error) {
			return nil, errors.New("network error")
		}),
		mockProvider("luno", func(_ context.Context) (*quote.ExchangeQuote, error) {
			return nil, errors.New("malformed response")
		}),
	}

	agg := o.aggregateQuotes(context.Background(), providers)

	assert.Empty(t, agg.quotes)
	assert.Len(t, agg.failures, 2)

	// No failure is ever dropped
	assert.Equal(t, "network error", agg.failures["binance"].Message)
	assert.Equal(t, "malformed response", agg.failures["luno"].Message)
}
