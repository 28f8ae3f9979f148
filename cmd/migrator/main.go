package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/xw1nchester/tca-backend/internal/config"
	"github.com/xw1nchester/tca-backend/internal/logging"
	pgclient "github.com/xw1nchester/tca-backend/pkg/client/postgresql"
	"go.uber.org/zap"
)

func main() {
	var migrationsPath, dsn, configPath string
	var steps int
	var down bool

	flag.StringVar(&migrationsPath, "migrations-path", "migrations", "path to migrations")
	flag.StringVar(&dsn, "dsn", "", "database dsn, defaults to the postgresql section of -config")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to config file")
	flag.IntVar(&steps, "steps", 0, "apply n migrations, negative n rolls back; 0 applies all")
	flag.BoolVar(&down, "down", false, "roll back every migration")
	flag.Parse()

	env := "local"
	if dsn == "" {
		if configPath == "" {
			panic("either -dsn or -config is required")
		}

		cfg := config.MustLoadByPath(configPath)
		if !cfg.PostgreSQL.Configured() {
			panic("postgresql is not configured in " + configPath)
		}

		env = cfg.Env
		dsn = pgclient.Config{
			Username: cfg.PostgreSQL.Username,
			Password: cfg.PostgreSQL.Password,
			Host:     cfg.PostgreSQL.Host,
			Port:     cfg.PostgreSQL.Port,
			Database: cfg.PostgreSQL.Database,
		}.DSN() + "?sslmode=disable"
	}

	log, err := logging.New(env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("failed to create migration driver", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		log.Fatal("failed to read migrations", zap.String("path", migrationsPath), zap.Error(err))
	}

	switch {
	case down:
		err = m.Down()
	case steps != 0:
		err = m.Steps(steps)
	default:
		err = m.Up()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to apply")
		return
	}
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal("failed to read schema version", zap.Error(err))
	}

	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
