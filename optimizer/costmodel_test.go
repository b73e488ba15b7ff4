package optimizer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarlabs/zardian/quote"
)

func feeFreeQuote(exchange quote.Exchange, rate string) *quote.ExchangeQuote {
	return &quote.ExchangeQuote{
		Exchange:      exchange,
		Rate:          decimal.RequireFromString(rate),
		DepositFee:    quote.None(),
		TradingFee:    quote.None(),
		WithdrawalFee: quote.None(),
	}
}

func TestCostModel_ZeroFees(t *testing.T) {
	t.Parallel()

	q := feeFreeQuote("x", "0.055")
	amount := decimal.NewFromInt(1000)

	path, err := Compute(q, amount)
	require.NoError(t, err)

	// With zero fees, the net is exactly amount * rate
	expected := amount.Mul(q.Rate).RoundBank(usdcPrecision)

	assert.True(t, path.NetUSDC.Equal(expected))
	assert.Equal(t, "55.000000", path.NetUSDC.StringFixed(usdcPrecision))
	assert.True(t, path.TotalFeeZAR.IsZero())
	assert.False(t, path.Unprofitable)
}

func TestCostModel_FixedZARTradingFee(t *testing.T) {
	t.Parallel()

	// Amount R1000, rate 0.055, no deposit fee, trading fee a flat
	// R5 charged before the conversion, withdrawal a flat 1 USDC
	q := &quote.ExchangeQuote{
		Exchange:      "x",
		Rate:          decimal.RequireFromString("0.055"),
		DepositFee:    quote.Percentage(decimal.Zero),
		TradingFee:    quote.FixedZAR(decimal.NewFromInt(5)),
		WithdrawalFee: quote.FixedUSDC(decimal.NewFromInt(1)),
	}

	path, err := Compute(q, decimal.NewFromInt(1000))
	require.NoError(t, err)

	// (1000 - 5) * 0.055 - 1 = 53.725
	assert.Equal(t, "53.725000", path.NetUSDC.StringFixed(usdcPrecision))

	// Each charge is recorded in the currency it was taken in
	assert.True(t, path.DepositFee.Amount.IsZero())
	assert.Equal(t, quote.CurrencyZAR, path.TradingFee.Currency)
	assert.Equal(t, "5", path.TradingFee.Amount.String())
	assert.Equal(t, quote.CurrencyUSDC, path.WithdrawalFee.Currency)
	assert.Equal(t, "1", path.WithdrawalFee.Amount.String())

	// 5 + 1/0.055 ZAR
	assert.Equal(t, "23.181818", path.TotalFeeZAR.String())
	assert.False(t, path.Unprofitable)
}

func TestCostModel_FixedUSDCTradingFee(t *testing.T) {
	t.Parallel()

	// Same shape, but the flat trading fee is USDC-denominated,
	// charged after the conversion
	q := &quote.ExchangeQuote{
		Exchange:      "x",
		Rate:          decimal.RequireFromString("0.055"),
		DepositFee:    quote.None(),
		TradingFee:    quote.FixedUSDC(decimal.NewFromInt(5)),
		WithdrawalFee: quote.FixedUSDC(decimal.NewFromInt(1)),
	}

	path, err := Compute(q, decimal.NewFromInt(1000))
	require.NoError(t, err)

	// 1000 * 0.055 = 55 gross, - 5 trading, - 1 withdrawal
	assert.Equal(t, "49.000000", path.NetUSDC.StringFixed(usdcPrecision))
	assert.Equal(t, quote.CurrencyUSDC, path.TradingFee.Currency)
	assert.Equal(t, "5", path.TradingFee.Amount.String())
}

func TestCostModel_PercentageFees(t *testing.T) {
	t.Parallel()

	q := &quote.ExchangeQuote{
		Exchange:      "x",
		Rate:          decimal.RequireFromString("0.055"),
		DepositFee:    quote.Percentage(decimal.RequireFromString("0.01")),
		TradingFee:    quote.Percentage(decimal.RequireFromString("0.001")),
		WithdrawalFee: quote.Percentage(decimal.RequireFromString("0.02")),
	}

	path, err := Compute(q, decimal.NewFromInt(1000))
	require.NoError(t, err)

	// deposit: 1000 * 0.01 = 10 -> 990
	// gross:   990 * 0.055 = 54.45
	// trading: 54.45 * 0.001 = 0.05445 -> 54.39555
	// withdrawal: 54.39555 * 0.02 = 1.087911 -> 53.307639
	assert.Equal(t, "53.307639", path.NetUSDC.StringFixed(usdcPrecision))

	assert.Equal(t, "10", path.DepositFee.Amount.String())
	assert.Equal(t, quote.CurrencyZAR, path.DepositFee.Currency)
	assert.Equal(t, "0.05445", path.TradingFee.Amount.String())
	assert.Equal(t, quote.CurrencyUSDC, path.TradingFee.Currency)
	assert.Equal(t, "1.087911", path.WithdrawalFee.Amount.String())
}

func TestCostModel_ZARWithdrawalFee(t *testing.T) {
	t.Parallel()

	// A ZAR-denominated withdrawal fee is converted at the spot rate
	q := &quote.ExchangeQuote{
		Exchange:      "x",
		Rate:          decimal.RequireFromString("0.055"),
		DepositFee:    quote.None(),
		TradingFee:    quote.None(),
		WithdrawalFee: quote.FixedZAR(decimal.RequireFromString("18.5")),
	}

	path, err := Compute(q, decimal.NewFromInt(1000))
	require.NoError(t, err)

	// 55 - 18.5 * 0.055 = 53.9825
	assert.Equal(t, "53.982500", path.NetUSDC.StringFixed(usdcPrecision))
}

func TestCostModel_Clamping(t *testing.T) {
	t.Parallel()

	t.Run("deposit fee exceeds amount", func(t *testing.T) {
		t.Parallel()

		q := &quote.ExchangeQuote{
			Exchange:      "x",
			Rate:          decimal.RequireFromString("0.055"),
			DepositFee:    quote.FixedZAR(decimal.NewFromInt(2000)),
			TradingFee:    quote.None(),
			WithdrawalFee: quote.None(),
		}

		path, err := Compute(q, decimal.NewFromInt(1000))
		require.NoError(t, err)

		// Clamped, never negative
		assert.True(t, path.NetUSDC.IsZero())
		assert.True(t, path.Unprofitable)

		// The charge is capped at what was available
		assert.Equal(t, "1000", path.DepositFee.Amount.String())
	})

	t.Run("fees exactly consume the amount", func(t *testing.T) {
		t.Parallel()

		q := &quote.ExchangeQuote{
			Exchange:      "x",
			Rate:          decimal.RequireFromString("0.055"),
			DepositFee:    quote.None(),
			TradingFee:    quote.FixedZAR(decimal.NewFromInt(1000)),
			WithdrawalFee: quote.None(),
		}

		path, err := Compute(q, decimal.NewFromInt(1000))
		require.NoError(t, err)

		assert.True(t, path.NetUSDC.IsZero())
		assert.True(t, path.Unprofitable)
	})

	t.Run("withdrawal fee exceeds converted amount", func(t *testing.T) {
		t.Parallel()

		q := &quote.ExchangeQuote{
			Exchange:      "x",
			Rate:          decimal.RequireFromString("0.055"),
			DepositFee:    quote.None(),
			TradingFee:    quote.None(),
			WithdrawalFee: quote.FixedUSDC(decimal.NewFromInt(100)),
		}

		path, err := Compute(q, decimal.NewFromInt(1000))
		require.NoError(t, err)

		assert.True(t, path.NetUSDC.IsZero())
		assert.True(t, path.Unprofitable)
		assert.Equal(t, "55", path.WithdrawalFee.Amount.String())
	})
}

func TestCostModel_Rounding(t *testing.T) {
	t.Parallel()

	// Final figures round half-even at 6 decimal places
	testTable := []struct {
		name     string
		rate     string
		expected string
	}{
		{
			name:     "round half to even down",
			rate:     "0.0000125",
			expected: "0.000012",
		},
		{
			name:     "round half to even up",
			rate:     "0.0000135",
			expected: "0.000014",
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path, err := Compute(feeFreeQuote("x", testCase.rate), decimal.NewFromInt(1))
			require.NoError(t, err)

			assert.Equal(t, testCase.expected, path.NetUSDC.String())
		})
	}
}

func TestCostModel_NonNegativeInvariant(t *testing.T) {
	t.Parallel()

	rates := []string{"0.01", "0.055", "1", "20"}
	fees := []quote.Fee{
		quote.None(),
		quote.FixedZAR(decimal.NewFromInt(500)),
		quote.FixedUSDC(decimal.NewFromInt(500)),
		quote.Percentage(decimal.RequireFromString("0.5")),
		quote.Percentage(decimal.NewFromInt(2)), // malformed 200% fee
	}

	for _, rate := range rates {
		for _, deposit := range fees {
			for _, trading := range fees {
				for _, withdrawal := range fees {
					q := &quote.ExchangeQuote{
						Exchange:      "x",
						Rate:          decimal.RequireFromString(rate),
						DepositFee:    deposit,
						TradingFee:    trading,
						WithdrawalFee: withdrawal,
					}

					path, err := Compute(q, decimal.NewFromInt(100))
					require.NoError(t, err)

					assert.False(
						t,
						path.NetUSDC.IsNegative(),
						"net went negative for rate %s", rate,
					)
				}
			}
		}
	}
}

func TestCostModel_FeeDominance(t *testing.T) {
	t.Parallel()

	// Strictly lower fees at an equal-or-better rate can never
	// yield less USDC
	cheap := &quote.ExchangeQuote{
		Exchange:      "a",
		Rate:          decimal.RequireFromString("0.055"),
		DepositFee:    quote.None(),
		TradingFee:    quote.Percentage(decimal.RequireFromString("0.001")),
		WithdrawalFee: quote.FixedUSDC(decimal.RequireFromString("0.5")),
	}

	pricey := &quote.ExchangeQuote{
		Exchange:      "b",
		Rate:          decimal.RequireFromString("0.054"),
		DepositFee:    quote.Percentage(decimal.RequireFromString("0.01")),
		TradingFee:    quote.Percentage(decimal.RequireFromString("0.005")),
		WithdrawalFee: quote.FixedUSDC(decimal.NewFromInt(1)),
	}

	for _, amount := range []int64{10, 100, 1000, 100000} {
		cheapPath, err := Compute(cheap, decimal.NewFromInt(amount))
		require.NoError(t, err)

		priceyPath, err := Compute(pricey, decimal.NewFromInt(amount))
		require.NoError(t, err)

		assert.True(
			t,
			cheapPath.NetUSDC.GreaterThanOrEqual(priceyPath.NetUSDC),
			"dominance violated at amount %d", amount,
		)
	}
}

func TestCostModel_InvalidInput(t *testing.T) {
	t.Parallel()

	t.Run("malformed quote", func(t *testing.T) {
		t.Parallel()

		q := feeFreeQuote("x", "0.055")
		q.Rate = decimal.Zero

		_, err := Compute(q, decimal.NewFromInt(100))
		assert.ErrorIs(t, err, quote.ErrInvalidRate)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		t.Parallel()

		_, err := Compute(feeFreeQuote("x", "0.055"), decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = Compute(feeFreeQuote("x", "0.055"), decimal.NewFromInt(-100))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}
