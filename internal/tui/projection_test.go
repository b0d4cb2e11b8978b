package tui

import (
	"ga-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionFitsInside(t *testing.T) {
	points := []domain.Point{
		{Lat: 46.3497, Lng: 48.0408},
		{Lat: 46.7089, Lng: 47.8507},
		{Lat: 46.0930, Lng: 48.5860},
		{Lat: 45.9940, Lng: 47.7120},
	}

	const w, h = 80, 22
	p := NewProjection(points, w, h)

	for _, pt := range points {
		x, y := p.Cell(pt)
		assert.GreaterOrEqual(t, x, 1)
		assert.Less(t, x, w-1)
		assert.GreaterOrEqual(t, y, 1)
		assert.Less(t, y, h-1)
	}

	// North is up, east is right.
	_, yNorth := p.Cell(points[1])
	_, ySouth := p.Cell(points[3])
	assert.Less(t, yNorth, ySouth)

	xEast, _ := p.Cell(points[2])
	xWest, _ := p.Cell(points[3])
	assert.Greater(t, xEast, xWest)
}

func TestProjectionDegenerate(t *testing.T) {
	same := []domain.Point{{Lat: 10, Lng: 10}, {Lat: 10, Lng: 10}}
	p := NewProjection(same, 40, 10)
	x0, y0 := p.Cell(same[0])
	x1, y1 := p.Cell(same[1])
	assert.Equal(t, x0, x1)
	assert.Equal(t, y0, y1)

	row := []domain.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}
	p = NewProjection(row, 40, 10)
	xa, ya := p.Cell(row[0])
	xb, yb := p.Cell(row[2])
	assert.Equal(t, ya, yb)
	assert.Less(t, xa, xb)
}

func TestLine(t *testing.T) {
	cells := line(0, 0, 4, 2)
	require.Len(t, cells, 5)
	assert.Equal(t, [2]int{0, 0}, cells[0])
	assert.Equal(t, [2]int{4, 2}, cells[4])

	assert.Equal(t, [][2]int{{3, 3}}, line(3, 3, 3, 3))

	back := line(4, 2, 0, 0)
	assert.Equal(t, [2]int{0, 0}, back[len(back)-1])

	vertical := line(2, 5, 2, 1)
	assert.Len(t, vertical, 5)
	for _, c := range vertical {
		assert.Equal(t, 2, c[0])
	}
}
