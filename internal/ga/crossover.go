package ga

import (
	"math/rand/v2"
	"slices"
)

// OrderCrossover (OX) copies a random contiguous block of p1 into the child and
// fills the remaining slots with p2's genes in p2's relative order.
// Both parents must be permutations of the same length.
func OrderCrossover(p1, p2 []int, rng *rand.Rand) []int {
	n := len(p1)
	if n <= 1 {
		return slices.Clone(p1)
	}

	start := rng.IntN(n)
	end := start + rng.IntN(n-start)

	return orderCrossoverRange(p1, p2, start, end)
}

// orderCrossoverRange is OX with a fixed inclusive block [start, end].
// Unfilled slots are visited circularly from end+1; p2 is scanned from index 0.
func orderCrossoverRange(p1, p2 []int, start, end int) []int {
	n := len(p1)
	if n <= 1 {
		return slices.Clone(p1)
	}

	child := make([]int, n)
	filled := make([]bool, n)
	used := make([]bool, n)

	for i := start; i <= end; i++ {
		child[i] = p1[i]
		filled[i] = true
		used[p1[i]] = true
	}

	p2Index := 0
	for i := 0; i < n; i++ {
		pos := (end + 1 + i) % n
		if filled[pos] {
			continue
		}

		for used[p2[p2Index]] {
			p2Index++
		}

		child[pos] = p2[p2Index]
		filled[pos] = true
		used[p2[p2Index]] = true
	}

	return child
}
