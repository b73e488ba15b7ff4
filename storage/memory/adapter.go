package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/zarlabs/zardian/quote"
)

type key struct {
	exchange  string
	fetchedAt int64 // unix nanos
}

type Storage struct {
	data map[key]quote.ExchangeQuote

	mu sync.RWMutex
}

func NewStorage() *Storage {
	return &Storage{
		data: make(map[key]quote.ExchangeQuote),
	}
}

func (s *Storage) SaveQuote(_ context.Context, q *quote.ExchangeQuote) error {
	k := key{
		exchange:  q.Exchange.String(),
		fetchedAt: q.FetchedAt.UTC().UnixNano(),
	}

	elem := *q
	elem.FetchedAt = elem.FetchedAt.UTC()

	s.mu.Lock()
	s.data[k] = elem // key is unique
	s.mu.Unlock()

	return nil
}

func (s *Storage) LatestQuotes(_ context.Context) ([]*quote.ExchangeQuote, error) {
	s.mu.RLock()

	latest := make(map[string]quote.ExchangeQuote)

	for k, v := range s.data {
		cur, ok := latest[k.exchange]
		if !ok || v.FetchedAt.After(cur.FetchedAt) {
			latest[k.exchange] = v
		}
	}

	s.mu.RUnlock()

	out := make([]*quote.ExchangeQuote, 0, len(latest))

	for _, v := range latest {
		cp := v
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Exchange < out[j].Exchange
	})

	return out, nil
}

func (s *Storage) ListExchanges(_ context.Context) ([]quote.Exchange, error) {
	s.mu.RLock()

	seen := make(map[string]struct{})

	for k := range s.data {
		seen[k.exchange] = struct{}{}
	}

	s.mu.RUnlock()

	out := make([]quote.Exchange, 0, len(seen))

	for v := range seen {
		out = append(out, quote.Exchange(v))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})

	return out, nil
}
