package ga

import "errors"

var (
	ErrNoPoints         = errors.New("ga: point set must not be empty")
	ErrPopSize          = errors.New("ga: population size must be at least 1")
	ErrRate             = errors.New("ga: rate must be within [0, 1]")
	ErrUnknownSelection = errors.New("ga: unknown selection method")
	ErrGeneCount        = errors.New("ga: gene count does not match point count")
	ErrNotPermutation   = errors.New("ga: genes are not a permutation of point indices")
	ErrNotInitialized   = errors.New("ga: population not initialized")
)
