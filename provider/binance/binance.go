package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/quote"
)

// TickerURL is the public Binance spot ticker endpoint
const TickerURL = "https://api.binance.com/api/v3/ticker/price"

const pairSymbol = "USDCZAR"

var exchangeName quote.Exchange = "binance"

var (
	// Standard spot trading fee (0.1%, taker)
	tradingFeeRate = decimal.RequireFromString("0.001")

	// Flat USDC on-chain withdrawal fee
	withdrawalFee = decimal.NewFromInt(1)
)

// tickerResponse is the response from the Binance ticker API
type tickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"` // ZAR per 1 USDC
}

// Provider fetches USDC/ZAR spot quotes from Binance
type Provider struct {
	client *http.Client
	url    string
}

// NewProvider creates a new instance of the Binance spot provider
func NewProvider(url string, timeout time.Duration) *Provider {
	return &Provider{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

func (p *Provider) Name() quote.Exchange {
	return exchangeName
}

func (p *Provider) FetchQuote(ctx context.Context) (*quote.ExchangeQuote, error) {
	// Prepare the request
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s?symbol=%s", p.url, pairSymbol),
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	// Execute the request
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	var ticker tickerResponse

	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return nil, fmt.Errorf("unable to decode ticker response: %w", err)
	}

	// The ticker quotes ZAR per USDC
	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return nil, fmt.Errorf("unable to parse ticker price %q: %w", ticker.Price, err)
	}

	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: %s", quote.ErrInvalidRate, price)
	}

	return &quote.ExchangeQuote{
		FetchedAt:     time.Now().UTC(),
		Exchange:      exchangeName,
		Rate:          decimal.NewFromInt(1).Div(price),
		DepositFee:    quote.None(),
		TradingFee:    quote.Percentage(tradingFeeRate),
		WithdrawalFee: quote.FixedUSDC(withdrawalFee),
	}, nil
}
