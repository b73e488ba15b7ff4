package server

import (
	"github.com/zarlabs/zardian/optimizer"
	"github.com/zarlabs/zardian/quote"
)

// OptimizeRequest is the body of an optimization request. The amount
// is a decimal string to avoid float precision loss in transit
type OptimizeRequest struct {
	ZARAmount string           `json:"zar_amount"`
	Exchanges []quote.Exchange `json:"exchanges,omitempty"`
}

type ExchangesResponse struct {
	Results []quote.Exchange `json:"results"`
}

type QuotesResponse struct {
	Results []*quote.ExchangeQuote `json:"results"`
}

type ErrorResponse struct {
	Error    string               `json:"error"`
	Failures optimizer.FailureMap `json:"failures,omitempty"`
}
