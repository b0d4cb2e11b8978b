package ga

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCrossoverRangeKnownChild(t *testing.T) {
	p1 := []int{0, 1, 2, 3, 4, 5, 6, 7}
	p2 := []int{7, 6, 5, 4, 3, 2, 1, 0}

	child := orderCrossoverRange(p1, p2, 2, 4)

	assert.Equal(t, []int{1, 0, 2, 3, 4, 7, 6, 5}, child)
}

func TestOrderCrossoverRangeWrapsAroundEnd(t *testing.T) {
	p1 := []int{0, 1, 2, 3, 4}
	p2 := []int{4, 2, 0, 3, 1}

	// Block is the last slot, so filling starts at position 0.
	child := orderCrossoverRange(p1, p2, 4, 4)

	assert.Equal(t, []int{2, 0, 3, 1, 4}, child)
}

func TestOrderCrossoverRangeFullBlockCopiesParent1(t *testing.T) {
	p1 := []int{3, 1, 0, 2}
	p2 := []int{0, 1, 2, 3}

	assert.Equal(t, p1, orderCrossoverRange(p1, p2, 0, 3))
}

func TestOrderCrossoverAlwaysYieldsPermutation(t *testing.T) {
	rng := testRNG(42)

	for trial := 0; trial < 1000; trial++ {
		n := 2 + rng.IntN(49)
		p1 := randomPerm(n, rng)
		p2 := randomPerm(n, rng)

		start := rng.IntN(n)
		end := start + rng.IntN(n-start)

		child := orderCrossoverRange(p1, p2, start, end)
		requirePermutation(t, child, n)
		require.Equal(t, p1[start:end+1], child[start:end+1], "block from parent 1 must be preserved")
	}
}

func TestOrderCrossoverRandomRange(t *testing.T) {
	rng := testRNG(3)

	for trial := 0; trial < 1000; trial++ {
		n := 1 + rng.IntN(30)
		p1 := randomPerm(n, rng)
		p2 := randomPerm(n, rng)

		requirePermutation(t, OrderCrossover(p1, p2, rng), n)
	}
}

func TestOrderCrossoverKeepsParent2RelativeOrder(t *testing.T) {
	p1 := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	p2 := []int{9, 3, 7, 1, 5, 0, 8, 2, 6, 4}

	child := orderCrossoverRange(p1, p2, 3, 5)

	// Read the child circularly from end+1; the genes outside the block must
	// appear in the order they have in p2.
	var outside []int
	for i := 0; i < len(child); i++ {
		pos := (5 + 1 + i) % len(child)
		if pos >= 3 && pos <= 5 {
			continue
		}
		outside = append(outside, child[pos])
	}

	var want []int
	for _, g := range p2 {
		if !slices.Contains(p1[3:6], g) {
			want = append(want, g)
		}
	}
	assert.Equal(t, want, outside)
}

func TestOrderCrossoverDegenerateInput(t *testing.T) {
	rng := testRNG(1)

	assert.Empty(t, OrderCrossover([]int{}, []int{}, rng))
	assert.Equal(t, []int{0}, OrderCrossover([]int{0}, []int{0}, rng))

	// The child must not alias parent 1.
	p1 := []int{0}
	child := OrderCrossover(p1, []int{0}, rng)
	child[0] = 5
	assert.Equal(t, []int{0}, p1)
}
