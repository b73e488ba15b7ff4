package quote

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingExchange = errors.New("missing exchange identifier")
	ErrInvalidRate     = errors.New("invalid spot rate")
	ErrInvalidFeeKind  = errors.New("invalid fee kind")
	ErrNegativeFee     = errors.New("negative fee value")
	ErrInvalidCurrency = errors.New("invalid fee currency")
)

// Exchange is a single exchange identifier (e.g. "binance")
type Exchange string

func (e Exchange) String() string {
	return string(e)
}

type Currency string

const (
	CurrencyZAR  Currency = "ZAR"
	CurrencyUSDC Currency = "USDC"
)

func (c Currency) String() string {
	return string(c)
}

type FeeKind string

const (
	FeeKindFixed      FeeKind = "FIXED"
	FeeKindPercentage FeeKind = "PERCENTAGE"
)

func (k FeeKind) String() string {
	return string(k)
}

// Fee is a single fee slot on an exchange quote.
// A fixed fee carries a flat value in the given currency;
// a percentage fee carries a fractional rate (0.001 == 0.1%)
// applied to the leg the slot belongs to.
// The currency decides which conversion leg a fixed fee is
// charged on (ZAR before the spot conversion, USDC after)
type Fee struct {
	Kind     FeeKind         `json:"kind"`
	Value    decimal.Decimal `json:"value"`
	Currency Currency        `json:"currency"`
}

// FixedZAR creates a flat ZAR fee
func FixedZAR(value decimal.Decimal) Fee {
	return Fee{
		Kind:     FeeKindFixed,
		Value:    value,
		Currency: CurrencyZAR,
	}
}

// FixedUSDC creates a flat USDC fee
func FixedUSDC(value decimal.Decimal) Fee {
	return Fee{
		Kind:     FeeKindFixed,
		Value:    value,
		Currency: CurrencyUSDC,
	}
}

// Percentage creates a fractional-rate fee (0.001 == 0.1%)
func Percentage(rate decimal.Decimal) Fee {
	return Fee{
		Kind:  FeeKindPercentage,
		Value: rate,
	}
}

// None creates a zero fee
func None() Fee {
	return Fee{
		Kind:     FeeKindFixed,
		Value:    decimal.Zero,
		Currency: CurrencyZAR,
	}
}

// IsZero reports whether the fee charges nothing
func (f Fee) IsZero() bool {
	return f.Value.IsZero()
}

// Validate validates a single fee slot
func (f Fee) Validate() error {
	switch f.Kind {
	case FeeKindFixed:
		switch f.Currency {
		case CurrencyZAR, CurrencyUSDC:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidCurrency, f.Currency)
		}
	case FeeKindPercentage:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFeeKind, f.Kind)
	}

	if f.Value.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeFee, f.Value)
	}

	return nil
}

// ExchangeQuote is one exchange's rate and fee structure for a
// single conversion request. It is produced fresh per request and
// never mutated after creation
type ExchangeQuote struct {
	FetchedAt     time.Time       `json:"fetched_at"`
	Exchange      Exchange        `json:"exchange"`
	Rate          decimal.Decimal `json:"rate"` // USDC received per 1 ZAR
	DepositFee    Fee             `json:"deposit_fee"`
	TradingFee    Fee             `json:"trading_fee"`
	WithdrawalFee Fee             `json:"withdrawal_fee"`
}

// Validate validates the quote before it is handed to the cost model
func (q *ExchangeQuote) Validate() error {
	if q.Exchange == "" {
		return ErrMissingExchange
	}

	if !q.Rate.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidRate, q.Rate)
	}

	for _, fee := range []Fee{q.DepositFee, q.TradingFee, q.WithdrawalFee} {
		if err := fee.Validate(); err != nil {
			return err
		}
	}

	return nil
}
