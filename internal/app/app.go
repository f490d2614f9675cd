// Package app wires the editor API from its configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/cache"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/config"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/engine"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/repository"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/service"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/transport/rest"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/transport/ws"
)

type App struct {
	Config *config.Config
	Log    *logger.Logger

	SurveyRepo   repository.SurveyRepo
	HistoryCache cache.HistoryCache

	SurveyService *service.SurveyService
	EditorService *service.EditorService
	WSHub         *ws.Hub

	mongoClient *mongo.Client
	redisClient *redis.Client
}

// New connects the configured backends and builds the services
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	switch cfg.Store {
	case config.StoreMemory:
		a.SurveyRepo = repository.NewMemorySurveyRepo()
		a.HistoryCache = cache.NewMemoryHistoryCache(cfg.HistoryLimit)
		log.Warn("using in-memory store, surveys are lost on exit")
	case config.StoreMongo:
		if err := a.connect(ctx); err != nil {
			a.Close(ctx)
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	eng := engine.New(idgen.NewUUID())
	a.WSHub = ws.NewHub(log.With("component", "ws"))

	a.SurveyService = service.NewSurveyService(a.SurveyRepo, a.HistoryCache, eng, log.With("component", "surveys"))
	a.EditorService = service.NewEditorService(a.SurveyRepo, a.HistoryCache, eng, log.With("component", "editor"))

	// Inject broadcaster (wsHub implements service.Broadcaster)
	a.SurveyService.SetBroadcaster(a.WSHub)
	a.EditorService.SetBroadcaster(a.WSHub)

	return a, nil
}

func (a *App) connect(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(a.Config.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	a.mongoClient = mongoClient
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	a.Log.Info("connected to MongoDB", "db", a.Config.MongoDB)

	a.redisClient = redis.NewClient(&redis.Options{
		Addr: a.Config.RedisAddr,
	})
	if err := a.redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	a.Log.Info("connected to Redis", "addr", a.Config.RedisAddr)

	a.SurveyRepo = repository.NewSurveyRepo(mongoClient.Database(a.Config.MongoDB))
	a.HistoryCache = cache.NewHistoryCache(a.redisClient, a.Config.HistoryLimit, a.Config.HistoryTTL)
	return nil
}

// Router builds the HTTP handler serving the API
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		SurveyService:      a.SurveyService,
		EditorService:      a.EditorService,
		WSHub:              a.WSHub,
		Log:                a.Log.With("component", "http"),
		CORSAllowedOrigins: a.Config.CORSAllowedOrigins,
	})
}

// Close releases the backend connections
func (a *App) Close(ctx context.Context) {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.Log.Warn("failed to close Redis client", "error", err)
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.Log.Warn("failed to disconnect MongoDB", "error", err)
		}
	}
}
