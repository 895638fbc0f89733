package app

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/accountrepo"
	"github.com/haguru/kakashi/internal/accountservice"
	"github.com/haguru/kakashi/internal/assistant"
	"github.com/haguru/kakashi/internal/auth"
	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/providers"
	"github.com/haguru/kakashi/internal/providers/bedrock"
	"github.com/haguru/kakashi/internal/providers/serpapi"
	"github.com/haguru/kakashi/internal/providers/tmdb"
	"github.com/haguru/kakashi/internal/routes"
	"github.com/haguru/kakashi/internal/server"
	"github.com/haguru/kakashi/internal/watchlistrepo"
	"github.com/haguru/kakashi/internal/watchlistservice"
	"github.com/haguru/kakashi/pkg/databases/mongo"
	"github.com/haguru/kakashi/pkg/databases/postgres"
	"github.com/haguru/kakashi/pkg/databases/sqlite"
	"github.com/haguru/kakashi/pkg/metrics"
	"github.com/haguru/kakashi/pkg/zerolog"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App represents the main application, containing server and configuration.
type App struct {
	Server        interfaces.Server
	Config        *config.ServiceConfig
	Logger        interfaces.Logger
	privateKey    *ecdsa.PrivateKey
	dbClient      interfaces.DBClient
	accountRepo   interfaces.AccountRepository
	watchlistRepo interfaces.WatchlistRepository
}

// NewApp reads the configuration at configPath and the credentials in
// envPath and wires the application.
func NewApp(configPath, envPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewAppFromConfig(cfg, envPath)
}

// NewAppFromConfig validates cfg, connects the store and registers every route.
func NewAppFromConfig(cfg *config.ServiceConfig, envPath string) (*App, error) {
	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		var validationErrors structValidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validation error: %s", validationErrors)
		}
		return nil, fmt.Errorf("validation error: %w", err)
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	creds, err := config.LoadCredentials(envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	for _, name := range creds.Missing() {
		logger.Warn("credential is not set, the features using it will be unavailable", "env", name)
	}

	if err := app.initializePrivateKey(); err != nil {
		return nil, fmt.Errorf("failed to initialize private key: %w", err)
	}

	metricsInstance := app.initializeMetrics()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := app.initializeDBClient(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database client: %w", err)
	}

	if err := app.initializeRepositories(ctx); err != nil {
		_ = app.dbClient.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	assistantService := app.initializeAssistant(ctx, creds, metricsInstance)

	route := routes.NewRoute(routes.Options{
		Metrics:          metricsInstance,
		AccountService:   accountservice.NewAccountService(app.accountRepo, logger),
		WatchlistService: watchlistservice.NewWatchlistService(app.watchlistRepo, logger),
		Assistant:        assistantService,
		DB:               app.dbClient,
		PrivateKey:       app.privateKey,
		Sessions:         auth.NewSessionStore(),
		Session:          cfg.Session,
		Validator:        validator,
		Logger:           logger,
	})

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger)

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	for _, endpoint := range route.Endpoints(limiter) {
		traced := otelhttp.NewHandler(endpoint.Handler, endpoint.Path)
		if err := app.Server.AddRoute(endpoint.Path, traced.ServeHTTP); err != nil {
			_ = app.Close(context.Background())
			return nil, fmt.Errorf("failed to add route %s: %w", endpoint.Path, err)
		}
	}

	return app, nil
}

// Run serves until SIGINT or SIGTERM, then shuts the server down and
// closes the store.
func (app *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		_ = app.Close(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-quit:
		app.Logger.Info("Received signal, shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := app.Server.Shutdown(ctx)
	if shutdownErr != nil {
		app.Logger.Error("server forced to shutdown", "error", shutdownErr)
	}
	if err := app.Close(ctx); err != nil {
		return err
	}
	app.Logger.Info("Server exited")
	return shutdownErr
}

// Close releases the repositories and their database connection.
func (app *App) Close(ctx context.Context) error {
	var errs []error
	if app.watchlistRepo != nil {
		errs = append(errs, app.watchlistRepo.Close(ctx))
	}
	if app.accountRepo != nil {
		errs = append(errs, app.accountRepo.Close(ctx))
	}
	return errors.Join(errs...)
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	routes.RegisterMetrics(appMetrics)
	providers.RegisterMetrics(appMetrics)
	return appMetrics
}

func (app *App) initializeDBClient(ctx context.Context) error {
	var dbClient interfaces.DBClient
	var dsn string

	switch app.Config.Database.Type {
	case "sqlite":
		dbClient = sqlite.NewSQLiteDatabaseClient(&app.Config.Database.SQLite, app.Logger)
		dsn = app.Config.Database.SQLite.DSN
	case "postgres":
		dbClient = postgres.NewPostgresDatabaseClient(&app.Config.Database.Postgres, app.Logger)
		dsn = app.Config.Database.Postgres.DSN
	case "mongo":
		dbClient = mongo.NewMongoDB(&app.Config.Database.MongoDB, app.Logger)
		dsn = app.Config.Database.MongoDB.DSN
	default:
		return fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}

	if err := dbClient.Connect(ctx, dsn); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", app.Config.Database.Type, err)
	}

	app.dbClient = dbClient
	app.Logger.Info("Connected to database", "type", app.Config.Database.Type)
	return nil
}

func (app *App) initializeRepositories(ctx context.Context) error {
	var err error

	switch app.Config.Database.Type {
	case "mongo":
		if app.accountRepo, err = accountrepo.NewMongoAccountRepository(app.dbClient); err != nil {
			return err
		}
		if app.watchlistRepo, err = watchlistrepo.NewMongoWatchlistRepository(app.dbClient); err != nil {
			return err
		}
	default:
		if app.accountRepo, err = accountrepo.NewSQLAccountRepository(app.dbClient); err != nil {
			return err
		}
		if app.watchlistRepo, err = watchlistrepo.NewSQLWatchlistRepository(app.dbClient); err != nil {
			return err
		}
	}

	if err := app.accountRepo.EnsureIndices(ctx); err != nil {
		return fmt.Errorf("failed to ensure account indices: %w", err)
	}
	if err := app.watchlistRepo.EnsureIndices(ctx); err != nil {
		return fmt.Errorf("failed to ensure watchlist indices: %w", err)
	}
	return nil
}

func (app *App) initializeAssistant(ctx context.Context, creds config.Credentials, m interfaces.Metrics) interfaces.AssistantService {
	cfg := app.Config.Providers
	httpClient := providers.NewHTTPClient(cfg.Timeout)

	metadata := tmdb.NewClient(cfg.TMDB, creds.TMDBAPIKey, httpClient,
		providers.NewBreaker(tmdb.ProviderName, m, app.Logger))
	search := serpapi.NewClient(cfg.SerpAPI, creds.SerpAPIKey, httpClient,
		providers.NewBreaker(serpapi.ProviderName, m, app.Logger))
	model := bedrock.NewFromConfig(ctx, cfg.Bedrock, cfg.Timeout,
		providers.NewBreaker(bedrock.ProviderName, m, app.Logger), app.Logger)

	return assistant.NewService(metadata, search, model, app.Logger)
}

func (app *App) initializePrivateKey() error {
	if app.Config.PrivateKeyPath == "" {
		return fmt.Errorf("private key path is not provided in the configuration")
	}

	privateKey, created, err := auth.LoadOrCreateECDSAPrivateKey(app.Config.PrivateKeyPath)
	if err != nil {
		return err
	}
	if created {
		app.Logger.Info("Generated new session signing key", "path", app.Config.PrivateKeyPath)
	}

	app.privateKey = privateKey
	return nil
}
