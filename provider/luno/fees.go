package luno

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

var errFeeNotFound = errors.New("withdrawal fee not found")

// scrapeWithdrawalFee scrapes the flat USDC withdrawal fee
// from the Luno fee schedule page
func (p *Provider) scrapeWithdrawalFee(ctx context.Context) (decimal.Decimal, error) {
	// Prepare the request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.feesURL, http.NoBody)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to create new GET request: %w", err)
	}

	// Execute the request
	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Zero, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	// Construct document for parsing
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to construct query doc: %w", err)
	}

	var (
		fee   decimal.Decimal
		found bool
	)

	// The fee schedule is a table of <currency, fee> rows
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}

		currency := strings.TrimSpace(cells.First().Text())
		if !strings.Contains(strings.ToUpper(currency), "USDC") {
			return true
		}

		raw := strings.TrimSpace(cells.Eq(1).Text())

		parsed, err := parseFeeValue(raw)
		if err != nil {
			return true
		}

		fee = parsed
		found = true

		return false
	})

	if !found {
		return decimal.Zero, errFeeNotFound
	}

	return fee, nil
}

// parseFeeValue parses a fee cell value from the fee schedule page
func parseFeeValue(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errFeeNotFound
	}

	// Cells render as "0.5 USDC", "USDC 0.5" or just "0.5"
	s = strings.ReplaceAll(s, ",", "")

	for _, field := range strings.Fields(s) {
		v, err := decimal.NewFromString(field)
		if err != nil {
			continue
		}

		if v.IsNegative() {
			continue
		}

		return v, nil
	}

	return decimal.Zero, errFeeNotFound
}
