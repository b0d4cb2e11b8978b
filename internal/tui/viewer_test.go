package tui

import (
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ga"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 20)
	t.Cleanup(screen.Fini)

	points := []domain.Point{
		{Lat: 46.3497, Lng: 48.0408},
		{Lat: 46.3605, Lng: 48.0391},
		{Lat: 46.3387, Lng: 48.0560},
		{Lat: 46.3655, Lng: 48.0610},
		{Lat: 46.3333, Lng: 48.0362},
	}
	params := ga.DefaultParams()
	params.Seed = 9

	v, err := NewViewer(screen, points, params, time.Millisecond)
	require.NoError(t, err)
	return v, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewerKeys(t *testing.T) {
	v, _ := newTestViewer(t)
	assert.Equal(t, -1, v.Generation())

	require.True(t, v.HandleEvent(key('s')))
	assert.Equal(t, 1, v.Generation())

	require.True(t, v.HandleEvent(key(' ')))
	assert.True(t, v.Running())

	// Stepping by hand is ignored while running.
	require.True(t, v.HandleEvent(key('s')))
	assert.Equal(t, 1, v.Generation())

	v.Step()
	assert.Equal(t, 2, v.Generation())

	require.True(t, v.HandleEvent(key(' ')))
	assert.False(t, v.Running())

	require.True(t, v.HandleEvent(key('r')))
	assert.Equal(t, -1, v.Generation())
	assert.False(t, v.Running())

	assert.False(t, v.HandleEvent(key('q')))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestViewerDraw(t *testing.T) {
	v, screen := newTestViewer(t)

	v.Draw()
	_, h := screen.Size()
	assert.Contains(t, row(screen, h-2), "5 points")
	assert.Contains(t, row(screen, h-1), "space start/pause")

	for i := 0; i < 10; i++ {
		v.Step()
	}
	v.Draw()
	assert.Contains(t, row(screen, h-2), "gen 10")
	assert.Contains(t, row(screen, h-2), "km")

	var points, route int
	for y := 0; y < h-statusLines; y++ {
		points += strings.Count(row(screen, y), "●")
		route += strings.Count(row(screen, y), "·")
	}
	assert.Equal(t, 5, points)
	assert.Positive(t, route)
}

func TestNewViewerRejects(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")

	_, err := NewViewer(screen, nil, ga.DefaultParams(), time.Millisecond)
	require.ErrorIs(t, err, ga.ErrNoPoints)

	bad := ga.DefaultParams()
	bad.PopSize = 0
	_, err = NewViewer(screen, []domain.Point{{Lat: 1, Lng: 1}}, bad, time.Millisecond)
	require.ErrorIs(t, err, ga.ErrPopSize)
}
