package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"learnanything-backend/internal/ai"
	"learnanything-backend/internal/ai/gemini"
	"learnanything-backend/internal/ai/openrouter"
	"learnanything-backend/internal/attempts"
	googleauth "learnanything-backend/internal/auth"
	"learnanything-backend/internal/cache"
	"learnanything-backend/internal/documents"
	"learnanything-backend/internal/processing"
	"learnanything-backend/internal/profiles"
	"learnanything-backend/internal/queue"
	"learnanything-backend/internal/quizzes"
	"learnanything-backend/internal/shared/config"
	"learnanything-backend/internal/shared/server"
	"learnanything-backend/internal/shared/storage/db"
	"learnanything-backend/internal/shared/storage/object"
	localstore "learnanything-backend/internal/shared/storage/object/local"
	s3store "learnanything-backend/internal/shared/storage/object/s3"
	"learnanything-backend/internal/stats"
)

// App holds shared dependencies for the API server and the queue worker.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Store    object.ObjectStore
	Cache    *cache.Cache
	Queue    queue.Client
	Provider ai.Provider

	DocumentsRepo documents.Repo
	QuizzesRepo   quizzes.Repo
	AttemptsRepo  attempts.Repo
	StatsRepo     stats.Repo
	ProfilesRepo  profiles.Repo

	DocumentsService  *documents.Service
	QuizzesService    *quizzes.Service
	AttemptsService   *attempts.Service
	StatsService      *stats.Service
	ProfilesService   *profiles.Service
	ProcessingService *processing.Service

	DocumentsHandler  *documents.Handler
	QuizzesHandler    *quizzes.Handler
	AttemptsHandler   *attempts.Handler
	StatsHandler      *stats.Handler
	ProfilesHandler   *profiles.Handler
	ProcessingHandler *processing.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Cache:    cache.New(cfg.CacheDir),
		Queue:    queueClient,
		Provider: provider,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		DocumentsHandler:  app.DocumentsHandler,
		ProcessingHandler: app.ProcessingHandler,
		QuizzesHandler:    app.QuizzesHandler,
		AttemptsHandler:   app.AttemptsHandler,
		StatsHandler:      app.StatsHandler,
		ProfilesHandler:   app.ProfilesHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
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
		return nil, fmt.Errorf("run migrations: %w", err)
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

func buildProvider(cfg config.Config) (ai.Provider, error) {
	var (
		provider ai.Provider
		err      error
	)
	switch cfg.AIProvider {
	case "gemini":
		provider, err = gemini.NewClient(cfg.AIModel)
	default:
		provider, err = openrouter.NewClient(cfg.AIModel)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: ai provider unavailable; generation disabled: %v", err)
			return ai.Placeholder{}, nil
		}
		return nil, err
	}
	return provider, nil
}

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("LA_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.QuizzesRepo = &quizzes.PGRepo{DB: app.DB}
		app.AttemptsRepo = &attempts.PGRepo{DB: app.DB}
		app.StatsRepo = &stats.PGRepo{DB: app.DB}
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.QuizzesRepo = quizzes.NewMemoryRepo()
		app.AttemptsRepo = attempts.NewMemoryRepo()
		app.StatsRepo = stats.NewMemoryRepo()
		app.ProfilesRepo = profiles.NewMemoryRepo()
	}

	app.StatsService = stats.NewService(app.StatsRepo)
	app.ProfilesService = &profiles.Service{Repo: app.ProfilesRepo}
	app.QuizzesService = &quizzes.Service{Repo: app.QuizzesRepo}

	app.DocumentsService = &documents.Service{
		Store: app.Store,
		Repo:  app.DocumentsRepo,
		Cache: app.Cache,
	}

	app.ProcessingService = &processing.Service{
		Docs:                app.DocumentsRepo,
		Quizzes:             app.QuizzesService,
		Cache:               app.Cache,
		Provider:            app.Provider,
		Stats:               app.StatsService,
		Queue:               app.Queue,
		DefaultNumQuestions: app.Config.QuizQuestionCount,
		DefaultDifficulty:   app.Config.QuizDifficulty,
	}

	app.AttemptsService = &attempts.Service{
		Repo:    app.AttemptsRepo,
		Quizzes: app.QuizzesRepo,
		Stats:   app.StatsService,
	}

	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.ProfilesService,
	)

	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.QuizzesHandler = quizzes.NewHandler(app.QuizzesService)
	app.AttemptsHandler = attempts.NewHandler(app.AttemptsService)
	app.StatsHandler = stats.NewHandler(app.StatsService)
	app.ProfilesHandler = profiles.NewHandler(app.ProfilesService)
	app.ProcessingHandler = processing.NewHandler(app.ProcessingService)
}
