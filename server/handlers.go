package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/optimizer"
)

var (
	errUnableToFetchQuotes    = errors.New("unable to fetch quotes")
	errUnableToFetchExchanges = errors.New("unable to fetch exchanges")

	errInvalidBody   = errors.New("invalid request body")
	errInvalidAmount = errors.New("invalid zar_amount (must be a positive decimal)")
)

func (s *Server) Optimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)

		return
	}

	// Parse the ZAR amount
	amount, err := parseAmount(req.ZARAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	result, err := s.finder.FindOptimalPath(r.Context(), amount, req.Exchanges...)
	if err != nil {
		s.writeOptimizeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeOptimizeError maps an optimization error to an HTTP response
func (s *Server) writeOptimizeError(w http.ResponseWriter, err error) {
	// Bad input
	if errors.Is(err, optimizer.ErrInvalidAmount) {
		writeError(w, http.StatusBadRequest, errInvalidAmount)

		return
	}

	// No exchange produced a usable quote; the per-exchange
	// failure reasons travel with the response
	var noQuotes *optimizer.NoQuotesError

	if errors.As(err, &noQuotes) {
		writeJSON(w, http.StatusServiceUnavailable, &ErrorResponse{
			Error:    noQuotes.Error(),
			Failures: noQuotes.Failures,
		})

		return
	}

	s.logger.Debug(
		"unable to optimize conversion",
		"err", err,
	)

	writeError(w, http.StatusInternalServerError, errors.New("unable to optimize conversion"))
}

func (s *Server) Exchanges(w http.ResponseWriter, r *http.Request) {
	// Prefer the live provider registry; fall back to the store
	results := s.finder.Exchanges()

	if len(results) == 0 && s.storage != nil {
		stored, err := s.storage.ListExchanges(r.Context())
		if err != nil {
			s.logger.Debug(
				"unable to fetch exchanges",
				"err", err,
			)

			writeError(
				w,
				http.StatusInternalServerError,
				errUnableToFetchExchanges,
			)

			return
		}

		results = stored
	}

	writeJSON(w, http.StatusOK, &ExchangesResponse{
		Results: results,
	})
}

func (s *Server) LatestQuotes(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		writeJSON(w, http.StatusOK, &QuotesResponse{})

		return
	}

	items, err := s.storage.LatestQuotes(r.Context())
	if err != nil {
		s.logger.Debug(
			"unable to fetch quotes",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchQuotes,
		)

		return
	}

	writeJSON(w, http.StatusOK, &QuotesResponse{
		Results: items,
	})
}

func parseAmount(raw string) (decimal.Decimal, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return decimal.Decimal{}, errInvalidAmount
	}

	amount, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, errInvalidAmount
	}

	return amount, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
