package luno

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/quote"
)

const (
	// TickerURL is the public Luno ticker endpoint
	TickerURL = "https://api.luno.com/api/1/ticker"

	// FeesURL is the Luno fee schedule page
	FeesURL = "https://www.luno.com/en/fees"
)

const pairSymbol = "USDCZAR"

var exchangeName quote.Exchange = "luno"

var (
	// Taker trading fee (0.5%)
	tradingFeeRate = decimal.RequireFromString("0.005")

	// Fallback flat USDC withdrawal fee, used when the
	// fee schedule page cannot be scraped
	defaultWithdrawalFee = decimal.RequireFromString("0.5")
)

// tickerResponse is the response from the Luno ticker API
type tickerResponse struct {
	Pair      string `json:"pair"`
	LastTrade string `json:"last_trade"` // ZAR per 1 USDC
	Timestamp int64  `json:"timestamp"`
}

// Provider fetches USDC/ZAR spot quotes from Luno
type Provider struct {
	client  *http.Client
	url     string
	feesURL string
}

// NewProvider creates a new instance of the Luno provider
func NewProvider(url string, feesURL string, timeout time.Duration) *Provider {
	return &Provider{
		client: &http.Client{
			Timeout: timeout,
		},
		url:     url,
		feesURL: feesURL,
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
		fmt.Sprintf("%s?pair=%s", p.url, pairSymbol),
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
	price, err := decimal.NewFromString(ticker.LastTrade)
	if err != nil {
		return nil, fmt.Errorf("unable to parse last trade price %q: %w", ticker.LastTrade, err)
	}

	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: %s", quote.ErrInvalidRate, price)
	}

	// The withdrawal fee lives on the fee schedule page,
	// not in the ticker API. A failed scrape falls back to
	// the known flat fee
	withdrawalFee := defaultWithdrawalFee

	if scraped, err := p.scrapeWithdrawalFee(ctx); err == nil {
		withdrawalFee = scraped
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
