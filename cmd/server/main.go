package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ga-route-service/internal/adapters/cache"
	"ga-route-service/internal/adapters/geocode"
	"ga-route-service/internal/adapters/publish"
	"ga-route-service/internal/adapters/repositories"
	"ga-route-service/internal/api"
	"ga-route-service/internal/config"
	"ga-route-service/internal/ga"
	"ga-route-service/internal/platform/db"
	"ga-route-service/internal/ports"
	"ga-route-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const latestProgressTTL = 10 * time.Minute

// store is what both SQL adapters provide.
type store interface {
	ports.PointSetRepository
	ports.ResultRepository
}

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, ORS, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	cfg := config.Load()

	defaults, err := gaDefaults(cfg)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := newStore(cfg.DBDriver, conn)

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, conn, cfg.DBDriver, repo, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	geocoder, err := newGeocoder(cfg, conn)
	if err != nil {
		log.Fatal(err)
	}

	publisher, closePublisher, err := newPublisher(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closePublisher()

	runs := services.NewRunManager(services.RunManagerConfig{
		TickInterval: cfg.TickInterval,
		MaxRuns:      cfg.MaxRuns,
		MaxPoints:    cfg.MaxPoints,
		MaxPopSize:   cfg.MaxPopSize,
		Defaults:     defaults,
	}, repo, repo, publisher)

	router := api.NewRouter(api.Deps{
		PointSets:  services.NewPointSetService(repo, repo, geocoder, cfg.MaxPoints),
		Runs:       runs,
		Defaults:   defaults,
		MaxPoints:  cfg.MaxPoints,
		MaxPopSize: cfg.MaxPopSize,
	})

	// Write timeout covers synchronous solves and cold-cache geocoding.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s driver=%s", cfg.Port, cfg.DBDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if err := runs.Shutdown(shutdownCtx); err != nil {
		log.Printf("runs shutdown: %v", err)
	}
}

func gaDefaults(cfg config.Config) (ga.Params, error) {
	sel, err := ga.ParseSelectionMethod(cfg.Selection)
	if err != nil {
		return ga.Params{}, fmt.Errorf("config GA_SELECTION: %w", err)
	}

	p := ga.Params{
		PopSize:       cfg.PopSize,
		MutationRate:  cfg.MutationRate,
		CrossoverRate: cfg.CrossoverRate,
		Selection:     sel,
	}
	if err := p.Validate(); err != nil {
		return ga.Params{}, fmt.Errorf("config GA defaults: %w", err)
	}
	return p, nil
}

func openDB(cfg config.Config) (*sql.DB, error) {
	switch cfg.DBDriver {
	case db.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when DB_DRIVER=pgx")
		}
		return db.Open(db.DriverPostgres, cfg.DatabaseURL)
	case db.DriverSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("openDB: create %q: %w", dir, err)
			}
		}
		return db.Open(db.DriverSQLite, cfg.DBPath)
	default:
		return nil, fmt.Errorf("openDB: unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func newStore(driver string, conn *sql.DB) store {
	if driver == db.DriverPostgres {
		return repositories.NewSQLStore(conn)
	}
	return repositories.NewSqliteStore(conn)
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver string, repo ports.PointSetRepository, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn, driver); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("seed file not found path=%s, skipping", seedPath)
		return nil
	}
	if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// newGeocoder returns nil when no ORS key is configured; address input is then rejected.
func newGeocoder(cfg config.Config, conn *sql.DB) (ports.Geocoder, error) {
	if cfg.ORSAPIKey == "" {
		log.Println("ORS_API_KEY not set; address geocoding disabled")
		return nil, nil
	}

	// Persistent cache avoids repeated geocode calls for the same address.
	var c geocode.Cache
	if cfg.DBDriver == db.DriverPostgres {
		c = cache.NewSQLGeocodeCache(conn)
	} else {
		c = cache.NewSqliteGeocodeCache(conn)
	}

	g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, c)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func newPublisher(ctx context.Context, cfg config.Config) (ports.ProgressPublisher, func(), error) {
	if cfg.RedisAddr == "" {
		return publish.NopPublisher{}, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis addr=%s: %w", cfg.RedisAddr, err)
	}

	p, err := publish.NewRedisPublisher(client, latestProgressTTL)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	log.Printf("Publishing run progress to redis addr=%s", cfg.RedisAddr)
	return p, func() { client.Close() }, nil
}
