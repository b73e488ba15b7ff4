package optimizer

import "github.com/sig-0/iq"

// rankedPath wraps a conversion path for ordered-queue ranking
type rankedPath struct {
	path *ConversionPath
}

// Less imposes the ranking total order: profitable paths before
// unprofitable ones, then net USDC received descending, then total
// ZAR fee ascending, then exchange identifier ascending. The final
// identifier comparison makes the order fully deterministic
func (a rankedPath) Less(b rankedPath) bool {
	if a.path.Unprofitable != b.path.Unprofitable {
		return !a.path.Unprofitable
	}

	if c := a.path.NetUSDC.Cmp(b.path.NetUSDC); c != 0 {
		return c > 0
	}

	if c := a.path.TotalFeeZAR.Cmp(b.path.TotalFeeZAR); c != 0 {
		return c < 0
	}

	return a.path.Exchange < b.path.Exchange
}

// Rank orders the given conversion paths and splits off the optimal
// one from the ranked alternatives
func Rank(paths []*ConversionPath) (*ConversionPath, []*ConversionPath, error) {
	if len(paths) == 0 {
		return nil, nil, ErrNoPathsToRank
	}

	q := iq.NewQueue[rankedPath]()

	for _, path := range paths {
		q.Push(rankedPath{path: path})
	}

	ordered := make([]*ConversionPath, 0, len(paths))

	for q.Len() > 0 {
		next := q.PopFront()

		ordered = append(ordered, next.path)
	}

	return ordered[0], ordered[1:], nil
}
