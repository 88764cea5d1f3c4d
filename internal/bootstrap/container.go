package bootstrap

import (
	"context"
	"log"
	"time"

	"ml-discovery-be/internal/config"
	"ml-discovery-be/internal/controller"
	"ml-discovery-be/internal/handler"
	"ml-discovery-be/internal/pkg/logger"
	"ml-discovery-be/internal/pkg/mailer"
	"ml-discovery-be/internal/repository/memory"
	"ml-discovery-be/internal/repository/unitofwork"
	"ml-discovery-be/internal/service"
	"ml-discovery-be/internal/websocket"
	"ml-discovery-be/pkg/llm/factory"
	"ml-discovery-be/pkg/matcher"
	pktNats "ml-discovery-be/pkg/nats"
	parsingCortex "ml-discovery-be/pkg/parsing/cortex"
	"ml-discovery-be/pkg/recommend"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController   controller.ISessionController
	ProfileController   controller.IProfileController
	UploadController    controller.IUploadController
	AnalysisController  controller.IAnalysisController
	ReportController    controller.IReportController
	ReferenceController controller.IReferenceController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:   cfg.Ai.LLMProvider,
		Model:      cfg.Ai.LLMModel,
		BaseURL:    cfg.Ai.OllamaBaseURL,
		AccountURL: cfg.Snowflake.AccountURL,
		Token:      cfg.Snowflake.Token,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	parsingProvider := parsingCortex.NewCortexProvider(
		cfg.Snowflake.AccountURL,
		cfg.Snowflake.Token,
		cfg.Snowflake.Warehouse,
		cfg.Snowflake.Database,
		cfg.Snowflake.Schema,
		cfg.Snowflake.Stage,
	)

	generator := recommend.NewGenerator(
		llmProvider,
		cfg.Ai.Temperature,
		time.Duration(cfg.Ai.GenerationTimeout)*time.Second,
	)

	referenceMatcher := matcher.New(cfg.Matcher.TopN)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.SummarizeTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.SummarizeTopic,
		uowFactory,
		llmProvider,
	)

	sessionService := service.NewSessionService(uowFactory, sessionRepo, natsPub, sysLogger)
	profileService := service.NewProfileService(uowFactory, sessionRepo)
	ingestService := service.NewIngestService(uowFactory, parsingProvider, sessionRepo, natsPub, sysLogger)
	referenceService := service.NewReferenceService(uowFactory, publisherService, natsPub, sysLogger)
	analysisService := service.NewAnalysisService(
		uowFactory,
		referenceMatcher,
		generator,
		sessionRepo,
		natsPub,
		sysLogger,
		cfg.Ai.MaxPromptChars,
	)
	reportService := service.NewReportService(uowFactory, emailService, sessionRepo, natsPub, sysLogger)

	// 5. Notification System
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		SessionController:   controller.NewSessionController(sessionService),
		ProfileController:   controller.NewProfileController(profileService),
		UploadController:    controller.NewUploadController(ingestService),
		AnalysisController:  controller.NewAnalysisController(analysisService),
		ReportController:    controller.NewReportController(reportService),
		ReferenceController: controller.NewReferenceController(referenceService),

		ConsumerService: consumerService,
	}
}
