package main

import (
	"flag"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"github.com/paisabuddy/paisabuddy/internal/config"
)

func main() {
	logger := logrus.New()

	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	path := flag.String("path", "db/migrations", "migrations directory")
	flag.Parse()

	cfg := config.Load()

	m, err := migrate.New("file://"+*path, cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatalf("failed to create migrate instance: %v", err)
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && err != migrate.ErrNoChange {
		logger.Fatalf("migration failed: %v", err)
	}
	logger.Info("migrations applied")
}
