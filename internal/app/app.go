// Package app wires configuration, storage, caches and services together.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leadstyle/internal/cache"
	"leadstyle/internal/config"
	"leadstyle/internal/instrument"
	"leadstyle/internal/repository"
	"leadstyle/internal/repository/sqlitestore"
	"leadstyle/internal/scoring"
	"leadstyle/internal/service"
)

type App struct {
	Config     *config.Config
	Instrument *instrument.Instrument
	Engine     *scoring.Engine
	Store      *repository.Store

	ProgressCache cache.ProgressCache
	StatsCache    cache.StatsCache

	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService

	closers []func(context.Context) error
}

// LoadInstrument returns the configured instrument or the embedded default
func LoadInstrument(path string) (*instrument.Instrument, error) {
	if path == "" {
		return instrument.Default()
	}
	return instrument.Load(path)
}

// New connects the configured backends and builds the services
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	inst, err := LoadInstrument(cfg.InstrumentPath)
	if err != nil {
		return nil, fmt.Errorf("load instrument: %w", err)
	}
	a.Instrument = inst
	a.Engine = scoring.NewEngine(inst)
	log.Printf("Instrument loaded: %s", inst)

	if err := a.openStore(ctx); err != nil {
		a.Close(ctx)
		return nil, err
	}
	if err := a.openCaches(ctx); err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.AuthService = service.NewAuthService(cfg.SupervisorPassword, cfg.JWTSecret, cfg.SessionTTL)
	a.AssessmentService = service.NewAssessmentService(a.Engine, a.Store, a.ProgressCache, a.StatsCache, a.AuthService)
	a.ReportService = service.NewReportService(inst, a.Store, a.StatsCache)

	if err := a.ReportService.WarmStats(ctx); err != nil {
		log.Printf("Warning: %v", err)
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Config.StoreDriver {
	case config.StoreSQLite:
		store, err := sqlitestore.NewStore(a.Config.SQLitePath)
		if err != nil {
			return err
		}
		a.Store = store
		a.closers = append(a.closers, func(context.Context) error { return store.Close() })
		log.Printf("Using SQLite store at %s", a.Config.SQLitePath)
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.Config.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	a.closers = append(a.closers, client.Disconnect)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Println("Connected to MongoDB")

	a.Store = repository.NewMongoStore(client.Database(a.Config.MongoDB))
	return nil
}

func (a *App) openCaches(ctx context.Context) error {
	if a.Config.RedisAddr == "" {
		log.Println("Warning: REDIS_URI not set, using in-process caches")
		a.ProgressCache = cache.NewMemoryProgressCache()
		a.StatsCache = cache.NewMemoryStatsCache()
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: a.Config.RedisAddr,
	})
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	log.Println("Connected to Redis")

	// progress outlives the respondent token so a late answer still finds its state
	a.ProgressCache = cache.NewProgressCache(rdb, 24*time.Hour+a.Config.SessionTTL)
	a.StatsCache = cache.NewStatsCache(rdb)
	return nil
}

// Close releases backends in reverse order of opening
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			log.Printf("Warning: close: %v", err)
		}
	}
	a.closers = nil
}
