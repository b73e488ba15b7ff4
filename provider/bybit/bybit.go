package bybit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/quote"
)

// TickerURL is the public Bybit spot ticker endpoint
const TickerURL = "https://api.bybit.com/v5/market/tickers"

const pairSymbol = "USDCZAR"

var errEmptyTicker = errors.New("empty ticker list")

var exchangeName quote.Exchange = "bybit"

var (
	// Taker trading fee (0.3%), the worst-case spot fee
	tradingFeeRate = decimal.RequireFromString("0.003")

	// Flat USDC withdrawal fee
	withdrawalFee = decimal.NewFromInt(1)
)

// tickerResponse is the response from the Bybit market tickers API
type tickerResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		List []tickerItem `json:"list"`
	} `json:"result"`
}

type tickerItem struct {
	Symbol    string `json:"symbol"`
	LastPrice string `json:"lastPrice"` // ZAR per 1 USDC
}

// Provider fetches USDC/ZAR spot quotes from Bybit
type Provider struct {
	client *http.Client
	url    string
}

// NewProvider creates a new instance of the Bybit spot provider
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
		fmt.Sprintf("%s?category=spot&symbol=%s", p.url, pairSymbol),
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

	if ticker.RetCode != 0 {
		return nil, fmt.Errorf("ticker API error %d: %s", ticker.RetCode, ticker.RetMsg)
	}

	if len(ticker.Result.List) == 0 {
		return nil, errEmptyTicker
	}

	// The ticker quotes ZAR per USDC
	price, err := decimal.NewFromString(ticker.Result.List[0].LastPrice)
	if err != nil {
		return nil, fmt.Errorf(
			"unable to parse last price %q: %w",
			ticker.Result.List[0].LastPrice,
			err,
		)
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
