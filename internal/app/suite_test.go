package app_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/xw1nchester/tca-backend/internal/app"
	"github.com/xw1nchester/tca-backend/internal/config"
	pgclient "github.com/xw1nchester/tca-backend/pkg/client/postgresql"
	"go.uber.org/zap"
)

const suiteAPIKey = "suite-key"

// APITestSuite runs the server against the database described by config/test.yml.
type APITestSuite struct {
	suite.Suite
	cfg      *config.Config
	dbClient *pgxpool.Pool
	logger   *zap.Logger
	baseURL  string
	app      *app.App
}

func TestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, &APITestSuite{})
}

func (s *APITestSuite) SetupSuite() {
	cfg := config.MustLoadByPath("../../config/test.yml")
	cfg.HTTPServer.APIKey = suiteAPIKey

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	pgClient, err := pgclient.NewClient(ctx, pgclient.Config{
		Username: cfg.PostgreSQL.Username,
		Password: cfg.PostgreSQL.Password,
		Host:     cfg.PostgreSQL.Host,
		Port:     cfg.PostgreSQL.Port,
		Database: cfg.PostgreSQL.Database,
	})
	if err != nil {
		s.T().Skipf("test database is not available: %v", err)
	}

	log, _ := zap.NewDevelopment()

	application, err := app.NewApp(context.Background(), log, *cfg)
	s.Require().NoError(err)

	s.cfg = cfg
	s.dbClient = pgClient
	s.logger = log
	s.baseURL = fmt.Sprintf("http://localhost%s", cfg.HTTPServer.Address)
	s.app = application

	go func() {
		if err := application.Run(); err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}()

	s.Require().Eventually(func() bool {
		resp, err := http.Get(s.baseURL + "/api/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)
}

func (s *APITestSuite) TearDownSuite() {
	if s.app == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.Require().NoError(s.app.Shutdown(ctx))
	s.dbClient.Close()
	s.logger.Sync()
}

func (s *APITestSuite) SetupTest() {
	s.applyMigrations(true)
}

func (s *APITestSuite) TearDownTest() {
	s.applyMigrations(false)
}

func (s *APITestSuite) applyMigrations(isUp bool) {
	db, err := sql.Open("postgres", pgclient.Config{
		Username: s.cfg.PostgreSQL.Username,
		Password: s.cfg.PostgreSQL.Password,
		Host:     s.cfg.PostgreSQL.Host,
		Port:     s.cfg.PostgreSQL.Port,
		Database: s.cfg.PostgreSQL.Database,
	}.DSN()+"?sslmode=disable")
	s.Require().NoError(err)
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	s.Require().NoError(err)

	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "postgres", driver)
	s.Require().NoError(err)

	if isUp {
		err = m.Up()
	} else {
		err = m.Down()
	}

	if !errors.Is(err, migrate.ErrNoChange) {
		s.Require().NoError(err)
	}
}

func (s *APITestSuite) TestPing() {
	response, err := http.Get(s.baseURL + "/api/ping")
	s.Require().NoError(err)

	byteBody, err := io.ReadAll(response.Body)
	s.NoError(err)

	response.Body.Close()

	s.Equal(http.StatusOK, response.StatusCode)
	s.Equal("pong", string(byteBody))
}

func (s *APITestSuite) TestAPIKeyRequired() {
	response, err := http.Get(s.baseURL + "/api/businesses")
	s.Require().NoError(err)
	response.Body.Close()

	s.Equal(http.StatusUnauthorized, response.StatusCode)
}
