package app

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/data/db"
	"github.com/yungbote/practice-backend/internal/http"
	"github.com/yungbote/practice-backend/internal/observability"
	"github.com/yungbote/practice-backend/internal/platform/envutil"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients

	store        *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// Bootstrap loads .env, builds the logger and reads the config. It is the
// shared first step of every command.
func Bootstrap() (*logger.Logger, Config, error) {
	if err := envutil.LoadDotEnv(); err != nil {
		return nil, Config{}, fmt.Errorf("load .env: %w", err)
	}
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, Config{}, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Loading environment variables...")
	return log, LoadConfig(log), nil
}

// OpenStore connects to the configured database and migrates the schema.
func OpenStore(log *logger.Logger, cfg Config) (*db.Service, error) {
	store, err := db.Open(log, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return store, nil
}

func New(ctx context.Context) (*App, error) {
	log, cfg, err := Bootstrap()
	if err != nil {
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	store, err := OpenStore(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	theDB := store.DB()

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet, clients)
	if err != nil {
		clients.Close()
		_ = store.Close()
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(theDB, log, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background work: the proficiency reconcile schedule.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Services.Scheduler != nil {
		a.Services.Scheduler.Start(ctx)
	}
}

// Run serves HTTP until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("http server listening", "addr", a.Cfg.HTTPAddr)
	return a.Server.Run(ctx, a.Cfg.HTTPAddr, a.Cfg.ShutdownGrace)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
