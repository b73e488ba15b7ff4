package optimizer

import (
	"time"

	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/quote"
)

type FailureKind string

const (
	FailureTimeout      FailureKind = "TIMEOUT"
	FailureProvider     FailureKind = "PROVIDER_ERROR"
	FailureInvalidQuote FailureKind = "INVALID_QUOTE"
)

// FailureReason is the recorded reason an exchange did not
// contribute a conversion path to a request
type FailureReason struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// FailureMap maps exchanges to their failure reasons
type FailureMap map[quote.Exchange]FailureReason

// FeeCharge is a single fee actually charged on a conversion,
// in the currency of the leg it was charged on
type FeeCharge struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency quote.Currency  `json:"currency"`
}

// ConversionPath is one exchange's fully costed conversion outcome
// for a given ZAR amount. It is immutable once constructed
type ConversionPath struct {
	Exchange  quote.Exchange  `json:"exchange"`
	ZARAmount decimal.Decimal `json:"zar_amount"`
	Rate      decimal.Decimal `json:"rate"`

	DepositFee    FeeCharge `json:"deposit_fee"`
	TradingFee    FeeCharge `json:"trading_fee"`
	WithdrawalFee FeeCharge `json:"withdrawal_fee"`

	// ZAR equivalent of all fees charged
	TotalFeeZAR decimal.Decimal `json:"total_fee_zar"`

	// USDC remaining after all fees, never negative
	NetUSDC decimal.Decimal `json:"net_usdc_received"`

	// Set when the fees met or exceeded the input amount
	Unprofitable bool `json:"unprofitable"`
}

// ConversionResult is the complete outcome of one optimization
// request: the optimal path, the ranked alternatives, and every
// exchange that failed to quote. Created once per request and
// never mutated afterward
type ConversionResult struct {
	ID           xid.ID            `json:"id"`
	Timestamp    time.Time         `json:"timestamp"`
	Optimal      *ConversionPath   `json:"optimal_path"`
	Alternatives []*ConversionPath `json:"alternative_paths"`
	Failures     FailureMap        `json:"failures,omitempty"`
}

// BestExchange returns the exchange of the optimal path
func (r *ConversionResult) BestExchange() quote.Exchange {
	return r.Optimal.Exchange
}

// BestRate returns the spot rate of the optimal path
func (r *ConversionResult) BestRate() decimal.Decimal {
	return r.Optimal.Rate
}

// BestFee returns the total ZAR fee of the optimal path
func (r *ConversionResult) BestFee() decimal.Decimal {
	return r.Optimal.TotalFeeZAR
}

// FinalAmount returns the USDC received on the optimal path
func (r *ConversionResult) FinalAmount() decimal.Decimal {
	return r.Optimal.NetUSDC
}
