package stats

import (
	"cmp"
	"slices"

	"github.com/pkordes/bikeshare/internal/domain"
)

// Mode returns the most frequent value in values.
// When several values share the highest count the smallest one wins, so the
// result does not depend on map iteration order.
// Returns domain.ErrEmptyResultSet when values is empty.
func Mode[K cmp.Ordered](values []K) (K, error) {
	var best K
	if len(values) == 0 {
		return best, domain.ErrEmptyResultSet
	}

	counts := make(map[K]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	bestN := 0
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best, nil
}

// ModeBy is Mode over key(t) for every trip.
func ModeBy[K cmp.Ordered](trips []domain.Trip, key func(domain.Trip) K) (K, error) {
	return Mode(project(trips, key))
}

// Tally counts trips per key(t). Buckets are ordered by descending count,
// ties keep the order in which values were first seen. Never returns nil.
func Tally(trips []domain.Trip, key func(domain.Trip) string) []domain.Count {
	index := make(map[string]int)
	out := []domain.Count{}
	for _, t := range trips {
		v := key(t)
		i, ok := index[v]
		if !ok {
			i = len(out)
			index[v] = i
			out = append(out, domain.Count{Value: v})
		}
		out[i].N++
	}

	slices.SortStableFunc(out, func(a, b domain.Count) int {
		return cmp.Compare(b.N, a.N)
	})
	return out
}

func project[K any](trips []domain.Trip, key func(domain.Trip) K) []K {
	out := make([]K, len(trips))
	for i, t := range trips {
		out[i] = key(t)
	}
	return out
}
