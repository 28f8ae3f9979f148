package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	authdb "github.com/xw1nchester/tca-backend/internal/auth/db"
	authhandler "github.com/xw1nchester/tca-backend/internal/auth/handler"
	jwtauth "github.com/xw1nchester/tca-backend/internal/auth/jwt"
	"github.com/xw1nchester/tca-backend/internal/auth/password"
	authservice "github.com/xw1nchester/tca-backend/internal/auth/service"
	businessdb "github.com/xw1nchester/tca-backend/internal/business/db"
	businesshandler "github.com/xw1nchester/tca-backend/internal/business/handler"
	businessservice "github.com/xw1nchester/tca-backend/internal/business/service"
	"github.com/xw1nchester/tca-backend/internal/config"
	"github.com/xw1nchester/tca-backend/internal/handlers"
	"github.com/xw1nchester/tca-backend/internal/mail"
	"github.com/xw1nchester/tca-backend/internal/metrics"
	"github.com/xw1nchester/tca-backend/internal/site"
	sitehandler "github.com/xw1nchester/tca-backend/internal/site/handler"
	siteservice "github.com/xw1nchester/tca-backend/internal/site/service"
	uploadhandler "github.com/xw1nchester/tca-backend/internal/upload/handler"
	uploadservice "github.com/xw1nchester/tca-backend/internal/upload/service"
	minioclient "github.com/xw1nchester/tca-backend/pkg/client/minio"
	pgclient "github.com/xw1nchester/tca-backend/pkg/client/postgresql"
	pgtx "github.com/xw1nchester/tca-backend/pkg/transactor/postgresql"
	"go.uber.org/zap"

	"github.com/swaggo/http-swagger/v2"
	_ "github.com/xw1nchester/tca-backend/docs"
)

type App struct {
	HTTPServer *http.Server
	pgClient   *pgxpool.Pool
	log        *zap.Logger
}

func NewApp(ctx context.Context, log *zap.Logger, cfg config.Config) (*App, error) {
	var pgClient *pgxpool.Pool
	if cfg.PostgreSQL.Configured() {
		var err error
		pgClient, err = pgclient.NewClient(ctx, pgclient.Config{
			Username: cfg.PostgreSQL.Username,
			Password: cfg.PostgreSQL.Password,
			Host:     cfg.PostgreSQL.Host,
			Port:     cfg.PostgreSQL.Port,
			Database: cfg.PostgreSQL.Database,
		})
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("postgresql is not configured, member area is disabled")
	}

	var storage uploadservice.Storage
	if cfg.Minio.Configured() {
		minioClient, err := minioclient.New(ctx, minioclient.Config{
			Endpoint:        cfg.Minio.Endpoint,
			AccessKeyID:     cfg.Minio.AccessKeyID,
			SecretAccessKey: cfg.Minio.SecretAccessKey,
			UseSSL:          cfg.Minio.UseSSL,
		}, cfg.Minio.Bucket)
		if err != nil {
			closePool(pgClient)
			return nil, err
		}
		storage = minioClient
	} else {
		log.Info("minio is not configured, logos are stored inline")
	}

	pages, err := site.LoadPages()
	if err != nil {
		closePool(pgClient)
		return nil, err
	}

	mailSender := mail.New(cfg.Resend, log)

	modules := []handlers.Handler{
		sitehandler.New(siteservice.New(pages, mailSender, mailSender.Inbox(), log), log),
	}

	if pgClient != nil {
		tokenManager := jwtauth.NewManager(cfg.JWT)

		authMiddleware := jwtauth.NewMiddleware(log, tokenManager)

		txManager := pgtx.NewPgManager(pgClient)

		authService := authservice.New(
			authdb.New(pgClient, log),
			tokenManager,
			password.New(0, log),
			mailSender,
			txManager,
			cfg.Site.URL,
			log,
		)

		businessService := businessservice.New(businessdb.New(pgClient, log), log)

		uploadService := uploadservice.New(storage, cfg.Minio.Bucket, cfg.HTTPServer.StaticURL, log)

		modules = append(modules,
			authhandler.New(authService, authMiddleware, log),
			businesshandler.New(businessService, authMiddleware, log),
			uploadhandler.New(uploadService, authMiddleware, log),
		)
	} else {
		modules = append(modules, NewUnconfiguredHandler())
	}

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      NewRouter(log, cfg.HTTPServer, metrics.New(), modules...),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		HTTPServer: srv,
		pgClient:   pgClient,
		log:        log,
	}, nil
}

// NewRouter mounts modules under /api behind the optional API key.
func NewRouter(log *zap.Logger, cfg config.HTTPServer, m *metrics.Metrics, modules ...handlers.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(
		middleware.RequestID,
		LoggingMiddleware(log),
		m.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", APIKeyHeader},
			AllowCredentials: true,
		}),
		middleware.Recoverer,
	)

	router.Get("/swagger/*", httpSwagger.Handler())
	router.Handle("/metrics", m.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", PingHandler)

		r.Group(func(keyed chi.Router) {
			keyed.Use(APIKeyMiddleware(cfg.APIKey))

			for _, module := range modules {
				module.Register(keyed)
			}
		})
	})

	return router
}

func (a *App) Run() error {
	a.log.Info("starting server", zap.String("addr", a.HTTPServer.Addr))

	if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	defer closePool(a.pgClient)

	return a.HTTPServer.Shutdown(ctx)
}

func closePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

// @Tags		other
// @Success	200		{string}	string
// @Router		/ping [get]
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}
