package assign

import (
	"errors"
	"math/rand"
)

var (
	ErrInsufficientParticipants = errors.New("at least two confirmed participants are required")
	ErrGenerationFailed         = errors.New("failed to produce a pairing without self-assignments")
)

// A random shuffle has no fixed point with probability ≈1/e, so the retry
// loop finishes in a handful of attempts; the cap only guards against a
// broken randomness source.
const maxShuffleRetries = 1000

// Pair is a single giver→receiver edge of the generated mapping.
type Pair struct {
	Giver    int64
	Receiver int64
}

// Derange maps every participant to a receiver such that the pairs form a
// single permutation of the input set with no fixed point: everyone gives
// exactly once, receives exactly once, and nobody draws themselves.
// The input slice is not mutated.
func Derange(participants []int64, rng *rand.Rand) ([]Pair, error) {
	n := len(participants)
	if n < 2 {
		return nil, ErrInsufficientParticipants
	}

	givers := make([]int64, n)
	copy(givers, participants)

	// For two participants the only derangement is the swap, so it is
	// emitted directly instead of rolling dice over two permutations.
	if n == 2 {
		return []Pair{
			{Giver: givers[0], Receiver: givers[1]},
			{Giver: givers[1], Receiver: givers[0]},
		}, nil
	}

	receivers := make([]int64, n)
	copy(receivers, participants)

	for attempt := 0; attempt < maxShuffleRetries; attempt++ {
		rng.Shuffle(n, func(i, j int) {
			receivers[i], receivers[j] = receivers[j], receivers[i]
		})
		if hasFixedPoint(givers, receivers) {
			continue
		}
		pairs := make([]Pair, n)
		for i := range givers {
			pairs[i] = Pair{Giver: givers[i], Receiver: receivers[i]}
		}
		return pairs, nil
	}
	return nil, ErrGenerationFailed
}

func hasFixedPoint(givers, receivers []int64) bool {
	for i := range givers {
		if givers[i] == receivers[i] {
			return true
		}
	}
	return false
}
