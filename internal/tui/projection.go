package tui

import (
	"ga-route-service/internal/domain"
	"math"
)

// Terminal cells are roughly twice as tall as wide.
const cellAspect = 2.0

// Projection maps geographic points onto terminal cells with an
// equirectangular projection centred on the points' mean latitude.
type Projection struct {
	k          float64 // cos(mean latitude)
	minX, maxY float64
	scale      float64
	offX, offY int
}

// NewProjection fits points into a width x height area, keeping one cell of margin.
func NewProjection(points []domain.Point, width, height int) Projection {
	var p Projection
	if len(points) == 0 {
		return p
	}

	var sumLat float64
	for _, pt := range points {
		sumLat += pt.Lat
	}
	p.k = math.Cos(sumLat / float64(len(points)) * math.Pi / 180)

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, pt := range points {
		x := pt.Lng * p.k
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, pt.Lat)
		maxY = math.Max(maxY, pt.Lat)
	}

	spanX := (maxX - minX) * cellAspect
	spanY := maxY - minY
	usableW := float64(max(width-3, 0))
	usableH := float64(max(height-3, 0))

	switch {
	case spanX == 0 && spanY == 0:
	case spanX == 0:
		p.scale = usableH / spanY
	case spanY == 0:
		p.scale = usableW / spanX
	default:
		p.scale = math.Min(usableW/spanX, usableH/spanY)
	}

	p.minX = minX
	p.maxY = maxY
	p.offX = 1 + int((usableW-spanX*p.scale)/2)
	p.offY = 1 + int((usableH-spanY*p.scale)/2)
	return p
}

// Cell returns the column and row of pt.
func (p Projection) Cell(pt domain.Point) (x, y int) {
	x = p.offX + int(math.Round((pt.Lng*p.k-p.minX)*cellAspect*p.scale))
	y = p.offY + int(math.Round((p.maxY-pt.Lat)*p.scale))
	return x, y
}

// line returns the cells of a Bresenham line from (x0, y0) to (x1, y1), inclusive.
func line(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	cells := make([][2]int, 0, max(dx, -dy)+1)
	err := dx + dy
	for {
		cells = append(cells, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return cells
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
