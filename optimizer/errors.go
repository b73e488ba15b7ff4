package optimizer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount indicates the ZAR amount is not a positive value
	ErrInvalidAmount = errors.New("conversion amount must be a positive number")

	// ErrNoQuotes indicates every configured provider failed to quote
	ErrNoQuotes = errors.New("no exchange quotes available, try again later")

	// ErrNoPathsToRank indicates the ranker was given nothing to rank.
	// The aggregation layer turns an empty quote set into ErrNoQuotes
	// before ranking, so hitting this is a bug
	ErrNoPathsToRank = errors.New("no conversion paths to rank")

	errInvalidProvider   = errors.New("invalid provider")
	errDuplicateProvider = errors.New("provider already registered")
)

// NoQuotesError carries the per-exchange failure reasons for a
// request where zero providers produced a usable quote
type NoQuotesError struct {
	Failures FailureMap
}

func (e *NoQuotesError) Error() string {
	return fmt.Sprintf("%s (%d exchanges failed)", ErrNoQuotes.Error(), len(e.Failures))
}

func (e *NoQuotesError) Unwrap() error {
	return ErrNoQuotes
}
