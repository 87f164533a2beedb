package main

import (
	"context"
	"database/sql"
	"delivery-fee-service/internal/adapters/cache"
	"delivery-fee-service/internal/adapters/store"
	"delivery-fee-service/internal/config"
	"delivery-fee-service/internal/platform/db"
	"delivery-fee-service/internal/platform/obs"
	"flag"
	"strings"
)

// dbtool prepares the SQL backends: schema creation and geocode seeding.
func main() {
	settings := config.Load()
	log := obs.Logger()

	seedPath := flag.String("seed", config.Get("GEOCODE_SEED_PATH", "data/seeds/geocodes.json"), "geocode seed JSON file")
	skipSeed := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	conn, dialect, err := open(settings)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer conn.Close()

	log.WithField("dialect", dialect).Info("initializing database schema")
	if err := store.InitSchema(conn, dialect); err != nil {
		log.WithError(err).Fatal("schema initialization failed")
	}
	log.Info("schema ready")

	if *skipSeed {
		return
	}

	log.WithField("path", *seedPath).Info("seeding geocode cache")
	n, err := cache.SeedGeocodeFromJSON(context.Background(), cache.NewSQLGeocodeCache(conn, dialect), *seedPath)
	if err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
	log.WithField("rows", n).Info("seeding complete")
}

// DATABASE_URL selects Postgres; otherwise the SQLite file at DB_PATH is used.
func open(s config.Settings) (*sql.DB, store.Dialect, error) {
	if strings.TrimSpace(s.DatabaseURL) != "" {
		conn, err := db.Open(s.DatabaseURL)
		return conn, store.Postgres, err
	}
	conn, err := db.OpenSQLite(s.DBPath)
	return conn, store.SQLite, err
}
