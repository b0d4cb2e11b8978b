package ga

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the tour distances of one population in kilometers.
type Stats struct {
	Best   float64
	Mean   float64
	StdDev float64
	Worst  float64
}

func PopulationStats(pop []*Individual) Stats {
	if len(pop) == 0 {
		return Stats{}
	}

	d := make([]float64, len(pop))
	for i, ind := range pop {
		d[i] = ind.distance
	}

	if len(d) == 1 {
		return Stats{Best: d[0], Mean: d[0], Worst: d[0]}
	}

	mean, std := stat.MeanStdDev(d, nil)
	return Stats{
		Best:   floats.Min(d),
		Mean:   mean,
		StdDev: std,
		Worst:  floats.Max(d),
	}
}
