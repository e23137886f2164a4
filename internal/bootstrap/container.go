package bootstrap

import (
	"context"
	"log"

	"chat-memory-be/internal/config"
	"chat-memory-be/internal/constant"
	"chat-memory-be/internal/controller"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/internal/service"
	"chat-memory-be/internal/websocket"
	"chat-memory-be/pkg/llm/echo"
	"chat-memory-be/pkg/llm/factory"
	"chat-memory-be/pkg/llm/failover"

	pkgNats "chat-memory-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	RetrievalController controller.IRetrievalController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Generation stack: configured backend wrapped with the offline
	// fallback. Any primary failure substitutes one full fallback pass.
	providerType := cfg.ResolveLLMProvider()
	primary, err := factory.NewLLMProvider(
		providerType,
		cfg.Ai.LLMModel,
		providerBaseURL(cfg, providerType),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", providerType, cfg.Ai.LLMModel)

	llmProvider := failover.NewProvider(primary, echo.NewEchoProvider(), cfg.Ai.GenerateTimeout, log.Default())

	// 4. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, observers stay instance-local: %v", err)
		rdb = nil
	}

	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(constant.TopicPipelineEvents, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.TopicPipelineEvents,
		wsHub,
		natsPub,
		sysLogger,
	)

	retrievalService := service.NewRetrievalService(uowFactory, publisherService, sysLogger)
	chatService := service.NewChatService(
		uowFactory,
		retrievalService,
		llmProvider,
		publisherService,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		RetrievalController: controller.NewRetrievalController(retrievalService),
		ConsumerService:     consumerService,
		WebSocketHub:        wsHub,
	}
}

func providerBaseURL(cfg *config.Config, providerType string) string {
	if providerType == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.OpenAIBaseURL
}
