package assign

import (
	"errors"
	"math/rand"
	"testing"
)

func newRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestDerangeTooFewParticipants(t *testing.T) {
	for _, participants := range [][]int64{nil, {}, {7}} {
		if _, err := Derange(participants, newRng(1)); !errors.Is(err, ErrInsufficientParticipants) {
			t.Fatalf("Derange(%v) error = %v, want ErrInsufficientParticipants", participants, err)
		}
	}
}

// The only derangement of two elements is the swap, so the result is fully
// determined regardless of the randomness source.
func TestDerangeTwoIsForcedSwap(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		pairs, err := Derange([]int64{11, 22}, newRng(seed))
		if err != nil {
			t.Fatalf("Derange error: %v", err)
		}
		want := []Pair{{Giver: 11, Receiver: 22}, {Giver: 22, Receiver: 11}}
		if len(pairs) != 2 || pairs[0] != want[0] || pairs[1] != want[1] {
			t.Fatalf("Derange two = %v, want %v", pairs, want)
		}
	}
}

// Three participants admit exactly two derangements, the two 3-cycles.
func TestDerangeThreeIsACycle(t *testing.T) {
	forward := map[int64]int64{1: 2, 2: 3, 3: 1}
	backward := map[int64]int64{1: 3, 3: 2, 2: 1}

	for seed := int64(0); seed < 50; seed++ {
		pairs, err := Derange([]int64{1, 2, 3}, newRng(seed))
		if err != nil {
			t.Fatalf("Derange error: %v", err)
		}
		got := make(map[int64]int64, len(pairs))
		for _, p := range pairs {
			got[p.Giver] = p.Receiver
		}
		if !mapsEqual(got, forward) && !mapsEqual(got, backward) {
			t.Fatalf("seed %d: mapping %v is not a 3-cycle", seed, got)
		}
	}
}

func TestDerangeProperties(t *testing.T) {
	for n := 2; n <= 15; n++ {
		participants := make([]int64, n)
		for i := range participants {
			participants[i] = int64(100 + i)
		}

		for seed := int64(0); seed < 20; seed++ {
			pairs, err := Derange(participants, newRng(seed))
			if err != nil {
				t.Fatalf("n=%d seed=%d: Derange error: %v", n, seed, err)
			}
			if len(pairs) != n {
				t.Fatalf("n=%d: got %d pairs", n, len(pairs))
			}

			givers := make(map[int64]bool, n)
			receivers := make(map[int64]bool, n)
			for _, p := range pairs {
				if p.Giver == p.Receiver {
					t.Fatalf("n=%d seed=%d: self-assignment %d", n, seed, p.Giver)
				}
				if givers[p.Giver] {
					t.Fatalf("n=%d seed=%d: giver %d appears twice", n, seed, p.Giver)
				}
				if receivers[p.Receiver] {
					t.Fatalf("n=%d seed=%d: receiver %d appears twice", n, seed, p.Receiver)
				}
				givers[p.Giver] = true
				receivers[p.Receiver] = true
			}
			for _, id := range participants {
				if !givers[id] || !receivers[id] {
					t.Fatalf("n=%d seed=%d: participant %d missing from mapping", n, seed, id)
				}
			}
		}
	}
}

func TestDerangeDoesNotMutateInput(t *testing.T) {
	participants := []int64{5, 6, 7, 8}
	original := append([]int64(nil), participants...)

	if _, err := Derange(participants, newRng(3)); err != nil {
		t.Fatalf("Derange error: %v", err)
	}
	for i := range participants {
		if participants[i] != original[i] {
			t.Fatalf("input mutated: %v, want %v", participants, original)
		}
	}
}

func TestDerangeDeterministicPerSeed(t *testing.T) {
	participants := []int64{1, 2, 3, 4, 5}

	first, err := Derange(participants, newRng(42))
	if err != nil {
		t.Fatalf("Derange error: %v", err)
	}
	second, err := Derange(participants, newRng(42))
	if err != nil {
		t.Fatalf("Derange error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different mappings: %v vs %v", first, second)
		}
	}
}

func mapsEqual(a, b map[int64]int64) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
