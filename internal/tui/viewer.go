// Package tui renders a GA run live in the terminal.
package tui

import (
	"fmt"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ga"
	"time"

	"github.com/gdamore/tcell/v2"
)

const statusLines = 2

var (
	styleRoute  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	stylePoint  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStart  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Viewer drives a GA engine from a ticker and draws its best tour.
// The engine is created on the first start or step and dropped on reset.
type Viewer struct {
	screen tcell.Screen
	points []domain.Point
	params ga.Params
	tick   time.Duration

	engine  *ga.Engine
	running bool
	message string
}

func NewViewer(screen tcell.Screen, points []domain.Point, params ga.Params, tick time.Duration) (*Viewer, error) {
	if len(points) == 0 {
		return nil, ga.ErrNoPoints
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}

	return &Viewer{screen: screen, points: points, params: params, tick: tick}, nil
}

// Run processes input and ticks until the user quits.
func (v *Viewer) Run() {
	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	v.Draw()
	for {
		select {
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return
			}
			v.Draw()

		case <-ticker.C:
			if v.running {
				v.Step()
				v.Draw()
			}
		}
	}
}

// HandleEvent applies one input event. It returns false when the viewer should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.toggle()
			case 's':
				if !v.running {
					v.Step()
				}
			case 'r':
				v.reset()
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}

	return true
}

func (v *Viewer) ensureEngine() bool {
	if v.engine != nil {
		return true
	}

	engine, err := ga.NewEngine(v.points, v.params)
	if err != nil {
		v.message = err.Error()
		return false
	}
	engine.InitPopulation()
	v.engine = engine
	return true
}

func (v *Viewer) toggle() {
	if v.running {
		v.running = false
		return
	}
	if v.ensureEngine() {
		v.running = true
	}
}

// Step evolves one generation, building the engine first if needed.
func (v *Viewer) Step() {
	if !v.ensureEngine() {
		return
	}
	if err := v.engine.Evolve(); err != nil {
		v.message = err.Error()
		v.running = false
	}
}

func (v *Viewer) reset() {
	v.running = false
	v.engine = nil
	v.message = ""
}

func (v *Viewer) Running() bool { return v.running }

// Generation is -1 before the engine exists.
func (v *Viewer) Generation() int {
	if v.engine == nil {
		return -1
	}
	return v.engine.Generation()
}

func (v *Viewer) Draw() {
	v.screen.Clear()

	w, h := v.screen.Size()
	mapH := h - statusLines
	if mapH < 1 {
		v.screen.Show()
		return
	}

	proj := NewProjection(v.points, w, mapH)

	var snap ga.Snapshot
	var ok bool
	if v.engine != nil {
		snap, ok = v.engine.Snapshot()
	}

	if ok {
		route := snap.Route(v.points)
		for i := 0; i+1 < len(route); i++ {
			x0, y0 := proj.Cell(route[i])
			x1, y1 := proj.Cell(route[i+1])
			for _, c := range line(x0, y0, x1, y1) {
				v.set(c[0], c[1], mapH, '·', styleRoute)
			}
		}
	}

	for i, pt := range v.points {
		x, y := proj.Cell(pt)
		style := stylePoint
		if ok && i == snap.Genes[0] {
			style = styleStart
		}
		v.set(x, y, mapH, '●', style)
	}

	v.text(0, h-2, w, v.statusLine(snap, ok), styleStatus)
	help := "space start/pause  s step  r reset  q quit"
	if v.message != "" {
		help = v.message
	}
	v.text(0, h-1, w, help, styleHelp)

	v.screen.Show()
}

func (v *Viewer) statusLine(snap ga.Snapshot, ok bool) string {
	state := "paused"
	if v.running {
		state = "running"
	}

	if !ok {
		return fmt.Sprintf(" %d points  pop %d  %s  [%s]", len(v.points), v.params.PopSize, v.params.Selection, state)
	}
	return fmt.Sprintf(" gen %d  best %.3f km  mean %.3f km  sd %.3f  pop %d  %s  [%s]",
		snap.Generation, snap.Distance, snap.Stats.Mean, snap.Stats.StdDev,
		v.params.PopSize, v.params.Selection, state)
}

func (v *Viewer) set(x, y, maxY int, r rune, style tcell.Style) {
	w, _ := v.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= maxY {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *Viewer) text(x, y, w int, s string, style tcell.Style) {
	col := x
	for _, r := range s {
		if col >= w {
			return
		}
		v.screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < w; col++ {
		v.screen.SetContent(col, y, ' ', nil, style)
	}
}
