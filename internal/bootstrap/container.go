package bootstrap

import (
	"context"
	"log"

	"compliance-review-be/internal/config"
	"compliance-review-be/internal/controller"
	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/internal/repository/implementation"
	"compliance-review-be/internal/repository/memory"
	"compliance-review-be/internal/service"
	"compliance-review-be/internal/websocket"
	"compliance-review-be/pkg/collaborator/httpclient"
	"compliance-review-be/pkg/llm/factory"
	pktNats "compliance-review-be/pkg/nats"
	"compliance-review-be/pkg/review"
	"compliance-review-be/pkg/review/pacing"
	"compliance-review-be/pkg/review/suggestion"
	"compliance-review-be/pkg/sampler"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ReviewController       controller.IReviewController
	CollaboratorController controller.ICollaboratorController

	// Background Services (Exposed for main.go to run)
	EventService    service.IEventService
	ConsumerService service.IConsumerService
	AuditService    service.IAuditService // nil without a database or NATS
	ReviewService   service.IReviewService

	WebSocketHub *websocket.Hub
	Logger       *logger.ZapLogger

	closers []func()
}

// NewContainer wires the application. db may be nil; the audit trail is
// then disabled. NATS and Redis are optional in the same way.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 1. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 2. Infrastructure
	var auditPublisher service.AuditPublisher
	natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		auditPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb = redis.NewClient(opt)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (live events stay local)", err)
		_ = rdb.Close()
		rdb = nil
	} else {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	// 3. Collaborator backends
	llmProvider, err := factory.NewCompletionProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   cfg.Keys.HuggingFace,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", llmProvider.Name(), cfg.Ai.LLMModel)

	suggestionService := service.NewSuggestionService()
	analysisService := service.NewAnalysisService(llmProvider, sysLogger)

	// 4. Review workspaces
	publisherService := service.NewPublisherService(pubSub)
	c.EventService = service.NewEventService(publisherService, auditPublisher, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, service.ReviewEventsTopic, c.WebSocketHub, sysLogger)

	collaborators := httpclient.New(cfg.Review.CollaboratorBaseURL, cfg.Review.CollaboratorTimeout)
	src := sampler.NewTimeSource()
	c.ReviewService = service.NewReviewService(
		memory.NewReviewRepository(cfg.Review.SessionTTL),
		review.Config{
			AnalysisDelay: cfg.Review.AnalysisDelay,
			FixDelay:      cfg.Review.FixDelay,
			Pacer:         pacing.New(cfg.Review.TypingPerChar, cfg.Review.TypingJitter, cfg.Review.TypingMax, src),
		},
		review.Dependencies{
			Sampler:     sampler.New(src),
			Suggestions: suggestion.NewAdapter(collaborators, src, sysLogger),
			Analysis:    collaborators,
			Notifier:    c.EventService,
			Logger:      sysLogger,
		},
		sysLogger,
	)

	// 5. Audit trail
	if db != nil && auditPublisher != nil {
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.closers = append(c.closers, natsSub.Close)
			c.AuditService = service.NewAuditService(natsSub, implementation.NewReviewAuditRepository(db), sysLogger)
		}
	}
	if c.AuditService == nil {
		log.Println("[INFO] Review audit trail disabled (needs database and NATS)")
	}

	// 6. Controllers
	c.ReviewController = controller.NewReviewController(c.ReviewService, c.AuditService, c.WebSocketHub)
	c.CollaboratorController = controller.NewCollaboratorController(suggestionService, analysisService)

	return c
}

// Close releases infrastructure connections after the background services
// have stopped.
func (c *Container) Close() {
	c.ReviewService.Shutdown()
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
