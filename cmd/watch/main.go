package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"ga-route-service/internal/adapters/repositories"
	"ga-route-service/internal/config"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ga"
	"ga-route-service/internal/services"
	"ga-route-service/internal/tui"
	"log"
	"math/rand/v2"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
)

// Random points are scattered around central Astrakhan.
var randomCenter = domain.Point{Lat: 46.3497, Lng: 48.0408}

const randomSpread = 0.05

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var (
		pointsPath = flag.String("points", "", "point set JSON file (seed format)")
		setID      = flag.String("set", "", "point set id within -points (default: first)")
		random     = flag.Int("random", 0, "generate n random points instead of reading a file")
		seed       = flag.Uint64("seed", 0, "RNG seed for -random and the GA (0 = random)")
		popSize    = flag.Int("pop", cfg.PopSize, "population size")
		mutation   = flag.Float64("mutation", cfg.MutationRate, "mutation rate")
		crossover  = flag.Float64("crossover", cfg.CrossoverRate, "crossover rate")
		selection  = flag.String("selection", cfg.Selection, "tournament or roulette")
	)
	flag.Parse()

	points, err := loadPoints(*pointsPath, *setID, *random, *seed)
	if err != nil {
		log.Fatal(err)
	}

	params, err := prepareRun(points, services.ParamOverrides{
		PopSize:       popSize,
		MutationRate:  mutation,
		CrossoverRate: crossover,
		Selection:     selection,
		Seed:          seed,
	}, cfg)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	viewer, err := tui.NewViewer(screen, points, params, cfg.TickInterval)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	viewer.Run()
	screen.Fini()
}

// prepareRun applies the same point and parameter limits as the HTTP API.
func prepareRun(points []domain.Point, overrides services.ParamOverrides, cfg config.Config) (ga.Params, error) {
	if err := services.ValidatePoints(points, cfg.MaxPoints); err != nil {
		return ga.Params{}, err
	}
	return overrides.Apply(ga.DefaultParams(), cfg.MaxPopSize)
}

func loadPoints(path, setID string, random int, seed uint64) ([]domain.Point, error) {
	switch {
	case random > 0:
		return randomPoints(random, seed), nil
	case path != "":
		return readPointSet(path, setID)
	default:
		return nil, errors.New("one of -points or -random is required")
	}
}

func randomPoints(n int, seed uint64) []domain.Point {
	var rng *rand.Rand
	if seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	points := make([]domain.Point, n)
	for i := range points {
		points[i] = domain.Point{
			Lat: randomCenter.Lat + (rng.Float64()*2-1)*randomSpread,
			Lng: randomCenter.Lng + (rng.Float64()*2-1)*randomSpread,
		}
	}
	return points
}

func readPointSet(path, setID string) ([]domain.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read points %q: %w", path, err)
	}

	var sets []repositories.PointSetSeed
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parse points %q: %w", path, err)
	}

	for _, s := range sets {
		if setID != "" && s.ID != setID {
			continue
		}

		points := make([]domain.Point, 0, len(s.Points))
		for _, p := range s.Points {
			points = append(points, domain.Point{Lat: p.Lat, Lng: p.Lng})
		}
		if len(points) == 0 {
			return nil, fmt.Errorf("point set %q is empty", s.ID)
		}
		return points, nil
	}

	return nil, fmt.Errorf("point set %q not found in %q", setID, path)
}
