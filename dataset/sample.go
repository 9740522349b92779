package dataset

import (
	"math/rand/v2"
	"time"

	"github.com/skyseries/lcgo/pkg/errors"
)

// newRand returns the PRNG used for subsample selection. A zero seed draws a
// fresh seed from the clock, matching one-shot load behavior; a non-zero seed
// makes selection reproducible across runs.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// sampleIndices draws k distinct indices from [0, n) uniformly at random
// without replacement. Requesting more than the population is a fatal
// configuration error, never a silent clamp.
func sampleIndices(r *rand.Rand, n, k int, op string) (map[int]struct{}, error) {
	if k < 0 {
		return nil, errors.NewConfigurationErrorf(op, "negative sample limit %d", k)
	}
	if k > n {
		return nil, errors.NewConfigurationErrorf(op,
			"cannot choose %d light curves from a population of %d", k, n)
	}
	// Partial Fisher-Yates: after k swaps the first k entries are a uniform
	// draw without replacement.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	selected := make(map[int]struct{}, k)
	for _, v := range idx[:k] {
		selected[v] = struct{}{}
	}
	return selected, nil
}

// sampleStrings draws k distinct values from universe uniformly at random
// without replacement. Used for identity-level selection (OGLE3).
func sampleStrings(r *rand.Rand, universe []string, k int, op string) (map[string]struct{}, error) {
	picked, err := sampleIndices(r, len(universe), k, op)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]struct{}, k)
	for i := range picked {
		selected[universe[i]] = struct{}{}
	}
	return selected, nil
}
