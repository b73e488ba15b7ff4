package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/quote"
)

const saveQuoteQuery = `
INSERT INTO exchange_quotes (
	exchange, rate,
	deposit_kind, deposit_value, deposit_currency,
	trading_kind, trading_value, trading_currency,
	withdrawal_kind, withdrawal_value, withdrawal_currency,
	fetched_at
) VALUES (
	$1, $2::numeric,
	$3, $4::numeric, $5,
	$6, $7::numeric, $8,
	$9, $10::numeric, $11,
	$12
)`

const latestQuotesQuery = `
SELECT DISTINCT ON (exchange)
	exchange, rate::text,
	deposit_kind, deposit_value::text, deposit_currency,
	trading_kind, trading_value::text, trading_currency,
	withdrawal_kind, withdrawal_value::text, withdrawal_currency,
	fetched_at
FROM exchange_quotes
ORDER BY exchange, fetched_at DESC`

const listExchangesQuery = `
SELECT DISTINCT exchange FROM exchange_quotes ORDER BY exchange`

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		pool: pool,
	}
}

func (s *Storage) SaveQuote(ctx context.Context, q *quote.ExchangeQuote) error {
	_, err := s.pool.Exec(
		ctx,
		saveQuoteQuery,
		q.Exchange.String(),
		q.Rate.String(),
		q.DepositFee.Kind.String(),
		q.DepositFee.Value.String(),
		q.DepositFee.Currency.String(),
		q.TradingFee.Kind.String(),
		q.TradingFee.Value.String(),
		q.TradingFee.Currency.String(),
		q.WithdrawalFee.Kind.String(),
		q.WithdrawalFee.Value.String(),
		q.WithdrawalFee.Currency.String(),
		q.FetchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("unable to save exchange quote: %w", err)
	}

	return nil
}

func (s *Storage) LatestQuotes(ctx context.Context) ([]*quote.ExchangeQuote, error) {
	rows, err := s.pool.Query(ctx, latestQuotesQuery)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // valid case
		}

		return nil, fmt.Errorf("unable to fetch quotes: %w", err)
	}
	defer rows.Close()

	var out []*quote.ExchangeQuote

	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to read quote rows: %w", err)
	}

	return out, nil
}

func (s *Storage) ListExchanges(ctx context.Context) ([]quote.Exchange, error) {
	rows, err := s.pool.Query(ctx, listExchangesQuery)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // valid case
		}

		return nil, fmt.Errorf("unable to fetch exchanges: %w", err)
	}
	defer rows.Close()

	var out []quote.Exchange

	for rows.Next() {
		var exchange string

		if err := rows.Scan(&exchange); err != nil {
			return nil, fmt.Errorf("unable to scan exchange row: %w", err)
		}

		out = append(out, quote.Exchange(exchange))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to read exchange rows: %w", err)
	}

	return out, nil
}

func scanQuote(rows pgx.Rows) (*quote.ExchangeQuote, error) {
	var (
		exchange string
		rate     string

		depositKind, depositValue, depositCurrency          string
		tradingKind, tradingValue, tradingCurrency          string
		withdrawalKind, withdrawalValue, withdrawalCurrency string

		fetchedAt time.Time
	)

	err := rows.Scan(
		&exchange,
		&rate,
		&depositKind, &depositValue, &depositCurrency,
		&tradingKind, &tradingValue, &tradingCurrency,
		&withdrawalKind, &withdrawalValue, &withdrawalCurrency,
		&fetchedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to scan quote row: %w", err)
	}

	parsedRate, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse stored rate %q: %w", rate, err)
	}

	depositFee, err := parseFee(depositKind, depositValue, depositCurrency)
	if err != nil {
		return nil, err
	}

	tradingFee, err := parseFee(tradingKind, tradingValue, tradingCurrency)
	if err != nil {
		return nil, err
	}

	withdrawalFee, err := parseFee(withdrawalKind, withdrawalValue, withdrawalCurrency)
	if err != nil {
		return nil, err
	}

	return &quote.ExchangeQuote{
		FetchedAt:     fetchedAt.UTC(),
		Exchange:      quote.Exchange(exchange),
		Rate:          parsedRate,
		DepositFee:    depositFee,
		TradingFee:    tradingFee,
		WithdrawalFee: withdrawalFee,
	}, nil
}

func parseFee(kind, value, currency string) (quote.Fee, error) {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return quote.Fee{}, fmt.Errorf("unable to parse stored fee %q: %w", value, err)
	}

	return quote.Fee{
		Kind:     quote.FeeKind(kind),
		Value:    parsed,
		Currency: quote.Currency(currency),
	}, nil
}
