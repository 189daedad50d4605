package container

import (
	"context"
	"fmt"
	"time"

	"shopbot-backend/internal/config"
	catalogHandler "shopbot-backend/internal/domains/catalog/handler"
	catalogRepo "shopbot-backend/internal/domains/catalog/repository"
	catalogService "shopbot-backend/internal/domains/catalog/service"
	"shopbot-backend/internal/domains/conversation/engine"
	chatHandler "shopbot-backend/internal/domains/conversation/handler"
	sessionRepo "shopbot-backend/internal/domains/conversation/repository"
	chatService "shopbot-backend/internal/domains/conversation/service"
	orderRepo "shopbot-backend/internal/domains/order/repository"
	infraCache "shopbot-backend/internal/infrastructure/cache"
	"shopbot-backend/internal/infrastructure/database"
	"shopbot-backend/internal/infrastructure/llm"
	"shopbot-backend/pkg/jwt"
	"shopbot-backend/pkg/logger"
)

// Container wires the whole dependency graph. Everything in it is a
// singleton living for the process lifetime.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB // nil when DB_ENABLED=false
	Cache *infraCache.RedisCache

	CatalogService catalogService.ServiceInterface
	LLM            llm.Service
	Engine         *engine.Engine
	Sessions       sessionRepo.SessionStore
	Orders         orderRepo.RepositoryInterface
	ChatService    chatService.ServiceInterface
	JWTManager     *jwt.Manager

	ChatHandler    *chatHandler.ChatHandler
	CatalogHandler *catalogHandler.CatalogHandler
}

// NewContainer builds the graph bottom-up: config, infrastructure,
// repositories, services, handlers. The optional backends (redis
// sessions, postgres order archive) fall back to in-memory stores so
// the app runs with nothing but an API key.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	store, err := catalogRepo.NewJSONStore(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	c.CatalogService = catalogService.NewCatalogService(store)

	llmClient, err := llm.NewClient(llmConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to configure llm client: %w", err)
	}
	c.LLM = llmClient

	if err := c.initStores(); err != nil {
		return nil, err
	}

	c.Engine = engine.NewEngine(c.CatalogService, c.LLM)
	c.ChatService = chatService.NewChatService(c.Engine, c.Sessions, c.Orders)
	c.JWTManager = jwt.NewManager(cfg.Session.JWTSecret, cfg.Session.TokenExpiry)

	c.ChatHandler = chatHandler.NewChatHandler(c.ChatService, c.JWTManager)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)

	logger.Info("Container initialized", map[string]interface{}{
		"environment":   cfg.App.Environment,
		"session_store": cfg.Session.Store,
		"order_archive": archiveName(cfg),
	})
	return c, nil
}

// initStores picks the session store and order archive backends.
func (c *Container) initStores() error {
	cfg := c.Config

	switch cfg.Session.Store {
	case "redis":
		cache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Connect(context.Background()); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Cache = cache
		c.Sessions = sessionRepo.NewRedisStore(cache, cfg.Session.TTL)
	default:
		c.Sessions = sessionRepo.NewMemoryStore()
	}

	if cfg.Database.Enabled {
		db := database.NewPostgresDB(&database.DBConfig{
			Host:              cfg.Database.Host,
			Port:              cfg.Database.Port,
			Username:          cfg.Database.User,
			Password:          cfg.Database.Password,
			DBName:            cfg.Database.Database,
			SSLMode:           cfg.Database.SSLMode,
			MaxConns:          int32(cfg.Database.MaxConns),
			MinConns:          int32(cfg.Database.MinConns),
			MaxConnLifetime:   5 * time.Minute,
			MaxConnIdleTime:   time.Minute,
			HealthCheckPeriod: time.Minute,
			MaxRetries:        5,
			RetryDelay:        time.Second,
			ConnectTimeout:    10 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		c.DB = db
		c.Orders = orderRepo.NewPostgresRepository(db)
	} else {
		c.Orders = orderRepo.NewMemoryRepository()
	}

	return nil
}

// Cleanup releases external connections during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("Failed to close redis", err)
		}
	}
}

func llmConfig(cfg *config.Config) llm.Config {
	provider := llm.DetectProvider(cfg.LLM.Provider)

	apiKey := cfg.LLM.APIKey
	if apiKey == "" {
		apiKey = llm.APIKeyFromEnv(provider)
	}

	return llm.Config{
		Provider:    provider,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      apiKey,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}
}

func archiveName(cfg *config.Config) string {
	if cfg.Database.Enabled {
		return "postgres"
	}
	return "memory"
}
