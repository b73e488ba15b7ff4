package optimizer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/quote"
)

// usdcPrecision is USDC's on-chain precision (6 decimal places)
const usdcPrecision = 6

// Compute costs a single exchange quote for the given ZAR amount,
// applying fees in a fixed order:
//
//  1. deposit fee, on the ZAR amount
//  2. trading fee, on the ZAR -> USDC conversion (a ZAR-denominated
//     fixed fee is charged before the conversion, a percentage fee on
//     the gross USDC, a USDC-denominated fixed fee after)
//  3. withdrawal fee, on the USDC amount
//
// Whenever a fee would push an intermediate value negative, the value
// is clamped to zero and the path is flagged unprofitable instead of
// failing. Final figures are rounded to 6 decimal places, half-even
func Compute(q *quote.ExchangeQuote, zarAmount decimal.Decimal) (*ConversionPath, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("malformed quote: %w", err)
	}

	if zarAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, zarAmount)
	}

	var clamped bool

	// charge caps a fee at the remaining balance of its leg
	charge := func(fee, available decimal.Decimal) decimal.Decimal {
		if fee.GreaterThan(available) {
			clamped = true

			return available
		}

		return fee
	}

	// 1. Deposit fee, charged on the ZAR side
	depositFee := feeInZAR(q.DepositFee, zarAmount, q.Rate)
	depositCharge := charge(depositFee, zarAmount)
	netAfterDeposit := zarAmount.Sub(depositCharge)

	// 2. Trading fee, around the spot conversion
	var (
		tradingCharge   FeeCharge
		netAfterTrading decimal.Decimal
	)

	switch {
	case q.TradingFee.Kind == quote.FeeKindFixed && q.TradingFee.Currency == quote.CurrencyZAR:
		// Charged in ZAR, before the conversion
		c := charge(q.TradingFee.Value, netAfterDeposit)

		tradingCharge = FeeCharge{
			Amount:   c,
			Currency: quote.CurrencyZAR,
		}
		netAfterTrading = netAfterDeposit.Sub(c).Mul(q.Rate)
	case q.TradingFee.Kind == quote.FeeKindPercentage:
		// Charged on the gross USDC
		gross := netAfterDeposit.Mul(q.Rate)
		c := charge(gross.Mul(q.TradingFee.Value), gross)

		tradingCharge = FeeCharge{
			Amount:   c,
			Currency: quote.CurrencyUSDC,
		}
		netAfterTrading = gross.Sub(c)
	default:
		// Fixed USDC, charged after the conversion
		gross := netAfterDeposit.Mul(q.Rate)
		c := charge(q.TradingFee.Value, gross)

		tradingCharge = FeeCharge{
			Amount:   c,
			Currency: quote.CurrencyUSDC,
		}
		netAfterTrading = gross.Sub(c)
	}

	// 3. Withdrawal fee, charged on the USDC side
	withdrawalFee := feeInUSDC(q.WithdrawalFee, netAfterTrading, q.Rate)
	withdrawalCharge := charge(withdrawalFee, netAfterTrading)
	netUSDC := netAfterTrading.Sub(withdrawalCharge).RoundBank(usdcPrecision)

	if netUSDC.IsZero() {
		clamped = true
	}

	// ZAR equivalent of everything charged, for ranking tie-breaks
	totalFeeZAR := depositCharge.
		Add(zarEquivalent(tradingCharge, q.Rate)).
		Add(withdrawalCharge.Div(q.Rate))

	return &ConversionPath{
		Exchange:  q.Exchange,
		ZARAmount: zarAmount,
		Rate:      q.Rate,
		DepositFee: FeeCharge{
			Amount:   depositCharge.RoundBank(usdcPrecision),
			Currency: quote.CurrencyZAR,
		},
		TradingFee: FeeCharge{
			Amount:   tradingCharge.Amount.RoundBank(usdcPrecision),
			Currency: tradingCharge.Currency,
		},
		WithdrawalFee: FeeCharge{
			Amount:   withdrawalCharge.RoundBank(usdcPrecision),
			Currency: quote.CurrencyUSDC,
		},
		TotalFeeZAR:  totalFeeZAR.RoundBank(usdcPrecision),
		NetUSDC:      netUSDC,
		Unprofitable: clamped,
	}, nil
}

// feeInZAR resolves a deposit fee slot to a ZAR value
func feeInZAR(fee quote.Fee, base, rate decimal.Decimal) decimal.Decimal {
	if fee.Kind == quote.FeeKindPercentage {
		return base.Mul(fee.Value)
	}

	if fee.Currency == quote.CurrencyUSDC {
		return fee.Value.Div(rate)
	}

	return fee.Value
}

// feeInUSDC resolves a withdrawal fee slot to a USDC value
func feeInUSDC(fee quote.Fee, base, rate decimal.Decimal) decimal.Decimal {
	if fee.Kind == quote.FeeKindPercentage {
		return base.Mul(fee.Value)
	}

	if fee.Currency == quote.CurrencyZAR {
		return fee.Value.Mul(rate)
	}

	return fee.Value
}

// zarEquivalent converts a fee charge to its ZAR value
func zarEquivalent(c FeeCharge, rate decimal.Decimal) decimal.Decimal {
	if c.Currency == quote.CurrencyUSDC {
		return c.Amount.Div(rate)
	}

	return c.Amount
}
