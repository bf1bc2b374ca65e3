package bootstrap

import (
	"context"
	"log"
	"time"

	"chatfolders-be/internal/config"
	"chatfolders-be/internal/controller"
	"chatfolders-be/internal/pkg/logger"
	"chatfolders-be/internal/pkg/mailer"
	"chatfolders-be/internal/repository/memory"
	redisrepo "chatfolders-be/internal/repository/redis"
	"chatfolders-be/internal/repository/unitofwork"
	"chatfolders-be/internal/service"
	"chatfolders-be/internal/websocket"

	pktNats "chatfolders-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	UserController         controller.IUserController
	FolderController       controller.IFolderController
	ConversationController controller.IConversationController
	PlanController         controller.IPlanController
	PaymentController      controller.IPaymentController
	SyncController         controller.ISyncController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	RefresherService service.IRefresherService

	// WebSockets
	WebSocketHub *websocket.Hub
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

	// 2.5 Infrastructure
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

	// In-memory billing mirror and Redis sync sessions
	mirror := memory.NewSubscriptionMirror()
	syncSessions := redisrepo.NewSyncSessionRepository(rdb, time.Duration(cfg.Sync.SessionTTLMin)*time.Minute)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/sync.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Sync.FolderChangedTopic, pubSub)
	usageService := service.NewUsageService(uowFactory)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Sync.FolderChangedTopic,
		usageService,
		wsHub,
	)

	authService := service.NewAuthService(uowFactory)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory)

	planService := service.NewPlanService(uowFactory, mirror)
	folderService := service.NewFolderService(uowFactory, planService, publisherService)
	conversationService := service.NewConversationService(uowFactory, planService, publisherService)

	paymentService := service.NewPaymentService(uowFactory, mirror, emailService, natsPub)
	syncService := service.NewSyncService(uowFactory, planService, syncSessions, wsHub, wsLogger)

	// Billing events fan back in through the listener: drop the cached
	// plan and ping the user's devices.
	billingListener := service.NewBillingListenerService(natsSub, mirror, wsHub, sysLogger)
	if natsSub != nil {
		go billingListener.Start()
	}

	refresherService := service.NewRefresherService(
		uowFactory,
		mirror,
		time.Duration(cfg.Billing.RefreshIntervalSec)*time.Second,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		UserController:         controller.NewUserController(userService, usageService),
		FolderController:       controller.NewFolderController(folderService),
		ConversationController: controller.NewConversationController(conversationService),
		PlanController:         controller.NewPlanController(planService),
		PaymentController:      controller.NewPaymentController(paymentService),
		SyncController:         controller.NewSyncController(syncService),

		ConsumerService:  consumerService,
		RefresherService: refresherService,
		WebSocketHub:     wsHub,
	}
}
