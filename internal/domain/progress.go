package domain

import "time"

// GenerationStat summarizes one generation of a run.
type GenerationStat struct {
	Generation    int
	BestDistance  float64
	MeanDistance  float64
	StdDistance   float64
	WorstDistance float64
}

// Progress is the observable state of a run after a generation transition.
// It is what collaborators (pub/sub subscribers, viewers) render.
type Progress struct {
	RunID      string
	Generation int
	Distance   float64
	Fitness    float64
	Genes      []int
	Stats      GenerationStat
	Running    bool
	At         time.Time
}

// RunResult records the best tour a run reached when it was paused or finished.
// It is a history record, not a resumable engine state.
type RunResult struct {
	RunID         string
	PointSetID    string
	PopSize       int
	MutationRate  float64
	CrossoverRate float64
	Selection     string
	Generation    int
	DistanceKm    float64
	Genes         []int
	FinishedAt    time.Time
}
