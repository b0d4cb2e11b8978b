package services

import (
	"fmt"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ga"
)

// MinPoints is the smallest point count worth evolving a tour over.
const MinPoints = 3

// ParamOverrides carries optional hyperparameters from a request.
// A nil field keeps the configured default; explicit zero rates are honoured.
type ParamOverrides struct {
	PopSize       *int
	MutationRate  *float64
	CrossoverRate *float64
	Selection     *string
	Seed          *uint64
}

// Apply resolves the overrides on top of base and validates the result.
// maxPopSize <= 0 disables the population cap.
func (o ParamOverrides) Apply(base ga.Params, maxPopSize int) (ga.Params, error) {
	p := base

	if o.PopSize != nil {
		p.PopSize = *o.PopSize
	}
	if o.MutationRate != nil {
		p.MutationRate = *o.MutationRate
	}
	if o.CrossoverRate != nil {
		p.CrossoverRate = *o.CrossoverRate
	}
	if o.Selection != nil {
		sel, err := ga.ParseSelectionMethod(*o.Selection)
		if err != nil {
			return ga.Params{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		p.Selection = sel
	}
	if o.Seed != nil {
		p.Seed = *o.Seed
	}

	if err := p.Validate(); err != nil {
		return ga.Params{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if maxPopSize > 0 && p.PopSize > maxPopSize {
		return ga.Params{}, fmt.Errorf("%w: pop_size=%d exceeds %d", ErrInvalidInput, p.PopSize, maxPopSize)
	}
	return p, nil
}

// ValidatePoints enforces MinPoints <= n <= maxPoints and WGS84 ranges.
// maxPoints <= 0 disables the upper bound.
func ValidatePoints(points []domain.Point, maxPoints int) error {
	n := len(points)
	if n < MinPoints {
		return fmt.Errorf("%w: need at least %d points, got %d", ErrInvalidInput, MinPoints, n)
	}
	if maxPoints > 0 && n > maxPoints {
		return fmt.Errorf("%w: at most %d points allowed, got %d", ErrInvalidInput, maxPoints, n)
	}

	for i, p := range points {
		if !p.Valid() {
			return fmt.Errorf("%w: point %d out of range lat=%g lng=%g", ErrInvalidInput, i, p.Lat, p.Lng)
		}
	}
	return nil
}
