package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"jobportal-backend/internal/applications"
	portalauth "jobportal-backend/internal/auth"
	"jobportal-backend/internal/jobs"
	"jobportal-backend/internal/shared/auth"
	"jobportal-backend/internal/shared/config"
	"jobportal-backend/internal/shared/server"
	"jobportal-backend/internal/shared/storage/db"
	"jobportal-backend/internal/shared/storage/object"
	localstore "jobportal-backend/internal/shared/storage/object/local"
	s3store "jobportal-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config              config.Config
	Router              *gin.Engine
	DB                  *sql.DB
	Store               object.ObjectStore
	Tokens              *auth.TokenService
	JobsRepo            jobs.Repo
	ApplicationsRepo    applications.Repo
	JobsService         *jobs.Service
	ApplicationsService *applications.Service
	JobsHandler         *jobs.Handler
	ApplicationsHandler *applications.Handler
	SessionHandler      *portalauth.SessionHandler
	GoogleAuth          *portalauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Tokens: tokens,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		Tokens:              app.Tokens,
		SessionHandler:      app.SessionHandler,
		GoogleAuth:          app.GoogleAuth,
		JobsHandler:         app.JobsHandler,
		ApplicationsHandler: app.ApplicationsHandler,
	})

	return app, nil
}

// Close releases process-wide resources.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var jobsRepo jobs.Repo
	var appsRepo applications.Repo

	if app.DB != nil {
		jobsRepo = &jobs.PGRepo{DB: app.DB}
		appsRepo = &applications.PGRepo{DB: app.DB}
	} else {
		jobsRepo = jobs.NewMemoryRepo()
		appsRepo = applications.NewMemoryRepo()
	}

	jobsSvc := &jobs.Service{Repo: jobsRepo, Store: app.Store}
	appsSvc := &applications.Service{Repo: appsRepo, JobsRepo: jobsRepo}

	secureCookie := app.Config.Env == "production" || app.Config.Env == "staging"

	app.JobsRepo = jobsRepo
	app.ApplicationsRepo = appsRepo
	app.JobsService = jobsSvc
	app.ApplicationsService = appsSvc
	app.JobsHandler = jobs.NewHandler(jobsSvc)
	app.ApplicationsHandler = applications.NewHandler(appsSvc)
	app.SessionHandler = portalauth.NewSessionHandler(app.Tokens, app.Config.Env)
	app.GoogleAuth = portalauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.Tokens,
		secureCookie,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
