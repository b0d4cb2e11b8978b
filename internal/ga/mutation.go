package ga

import "math/rand/v2"

// MutationKind reports which operator, if any, Mutate applied.
type MutationKind int

const (
	NoMutation MutationKind = iota
	SwapMutation
	InversionMutation
)

func (k MutationKind) String() string {
	switch k {
	case SwapMutation:
		return "swap"
	case InversionMutation:
		return "inversion"
	default:
		return "none"
	}
}

// Mutate applies swap or inversion (equally likely) with probability rate.
func Mutate(genes []int, rate float64, rng *rand.Rand) MutationKind {
	if rng.Float64() >= rate {
		return NoMutation
	}

	if rng.Float64() < 0.5 {
		mutateSwap(genes, rng)
		return SwapMutation
	}
	mutateInversion(genes, rng)
	return InversionMutation
}

// mutateSwap exchanges two positions drawn independently; equal positions are a no-op.
func mutateSwap(genes []int, rng *rand.Rand) {
	if len(genes) == 0 {
		return
	}
	i := rng.IntN(len(genes))
	j := rng.IntN(len(genes))
	swapGenes(genes, i, j)
}

// mutateInversion reverses genes[i..j] for two random positions.
func mutateInversion(genes []int, rng *rand.Rand) {
	if len(genes) == 0 {
		return
	}
	i := rng.IntN(len(genes))
	j := rng.IntN(len(genes))
	invertGenes(genes, i, j)
}

func swapGenes(genes []int, i, j int) {
	genes[i], genes[j] = genes[j], genes[i]
}

// invertGenes reverses the inclusive range between i and j in place.
func invertGenes(genes []int, i, j int) {
	if i > j {
		i, j = j, i
	}
	for i < j {
		genes[i], genes[j] = genes[j], genes[i]
		i++
		j--
	}
}
