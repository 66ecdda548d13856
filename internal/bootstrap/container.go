package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/redcow77/module-5-test/internal/config"
	"github.com/redcow77/module-5-test/internal/controller"
	"github.com/redcow77/module-5-test/internal/handler"
	"github.com/redcow77/module-5-test/internal/mcp"
	"github.com/redcow77/module-5-test/internal/model"
	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/repository/memory"
	"github.com/redcow77/module-5-test/internal/repository/unitofwork"
	"github.com/redcow77/module-5-test/internal/service"
	"github.com/redcow77/module-5-test/internal/websocket"
	"github.com/redcow77/module-5-test/pkg/cache"
	"github.com/redcow77/module-5-test/pkg/database"
	"github.com/redcow77/module-5-test/pkg/llm/factory"
	pktNats "github.com/redcow77/module-5-test/pkg/nats"
	"github.com/redcow77/module-5-test/pkg/notion"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/redis/go-redis/v9"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Container struct {
	// Controllers
	HealthController       controller.IHealthController
	PageController         controller.IPageController
	BlockController        controller.IBlockController
	MemoController         controller.IMemoController
	NotionImportController controller.INotionImportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	LiveHandler  *handler.LiveHandler
	WebSocketHub *websocket.Hub

	MCPServer *mcpserver.MCPServer
	Logger    logger.ILogger

	closers []func()
}

// NewStorage opens the configured storage driver. The postgres driver
// connects and migrates; the memory driver needs nothing.
func NewStorage(cfg *config.Config) (unitofwork.RepositoryFactory, error) {
	switch cfg.App.StorageDriver {
	case StorageMemory:
		return memory.NewRepositoryFactory(memory.NewStore()), nil
	case StoragePostgres, "":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment != "production")
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		if err := database.Migrate(db, model.All()...); err != nil {
			return nil, err
		}
		return unitofwork.NewRepositoryFactory(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.App.StorageDriver)
	}
}

func NewContainer(uowFactory unitofwork.RepositoryFactory, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	return NewContainerWithLogger(uowFactory, cfg, sysLogger)
}

// NewContainerWithLogger wires everything around a caller supplied logger.
// The stdio MCP server uses it to keep stdout free for the protocol.
func NewContainerWithLogger(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		logger.NewWatermillAdapter(sysLogger, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	rdb := connectRedis(cfg.App.RedisURL, sysLogger)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var cacheService cache.Service
	if rdb != nil {
		cacheService = cache.NewRedisService(rdb)
	} else {
		cacheService = cache.NewMemoryService()
	}

	wsLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "websocket.log"))
	wsHub := websocket.NewHub(rdb, wsLogger)
	relays := []service.EventRelay{wsHub}

	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS, events stay local", map[string]interface{}{"error": err.Error()})
		} else {
			relays = append(relays, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	llmBaseURL, llmKey := cfg.LLMEndpoint()
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.Provider, cfg.Ai.Model, llmBaseURL, llmKey)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{"provider": cfg.Ai.Provider, "model": cfg.Ai.Model})

	var notionClient service.NotionClient
	if cfg.Keys.NotionConfigured() {
		notionClient = notion.NewClient(cfg.Keys.Notion)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	pageService := service.NewPageService(uowFactory, publisherService, cacheService, sysLogger)
	blockService := service.NewBlockService(uowFactory, publisherService, sysLogger)
	memoService := service.NewMemoService(
		uowFactory,
		service.NewAIService(llmProvider),
		publisherService,
		sysLogger,
		service.MemoServiceOptions{
			EnrichmentMode: cfg.Ai.EnrichmentMode,
			AITimeout:      time.Duration(cfg.Ai.TimeoutSeconds) * time.Second,
		},
	)
	importService := service.NewNotionImportService(notionClient, pageService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.Topic, memoService, sysLogger, relays...)

	// 5. Controllers
	c.HealthController = controller.NewHealthController()
	c.PageController = controller.NewPageController(pageService)
	c.BlockController = controller.NewBlockController(blockService)
	c.MemoController = controller.NewMemoController(memoService)
	c.NotionImportController = controller.NewNotionImportController(importService)
	c.ConsumerService = consumerService
	c.WebSocketHub = wsHub
	c.LiveHandler = handler.NewLiveHandler(wsHub, wsLogger)
	c.MCPServer = mcp.NewServer(mcp.NewTools(pageService, memoService, importService, sysLogger))

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis, using in-process cache", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
