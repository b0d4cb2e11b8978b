package main

import (
	"context"
	"database/sql"
	"ga-route-service/internal/adapters/repositories"
	"ga-route-service/internal/config"
	"ga-route-service/internal/platform/db"
	"ga-route-service/internal/ports"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	cfg := config.Load()

	dsn := cfg.DBPath
	if cfg.DBDriver == db.DriverPostgres {
		dsn = cfg.DatabaseURL
		if dsn == "" {
			log.Fatal("DATABASE_URL is required when DB_DRIVER=pgx")
		}
	}

	conn, err := db.Open(cfg.DBDriver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	var repo ports.PointSetRepository = repositories.NewSqliteStore(conn)
	if cfg.DBDriver == db.DriverPostgres {
		repo = repositories.NewSQLStore(conn)
	}

	if err := initAndSeed(context.Background(), conn, cfg.DBDriver, repo, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver string, repo ports.PointSetRepository, seedPath string) error {
	log.Printf("Initializing database schema driver=%s...", driver)
	if err := repositories.InitSchema(ctx, conn, driver); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding point sets path=%s...", seedPath)
	if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
