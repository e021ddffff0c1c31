// Package server contains the HTTP handlers for the application's API
// endpoints and the Clerk webhook ingress.
package server

import (
	"context"
	"strings"
	"time"

	"commune/internal/cache"
	"commune/internal/clerk"
	"commune/internal/config"
	"commune/internal/database"
	"commune/internal/middleware"
	"commune/internal/outbox"
	"commune/internal/repository"
	"commune/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	communityRepo    repository.CommunityRepository
	threadRepo       repository.ThreadRepository
	eventRepo        repository.EventRepository
	channelRepo      repository.ChannelRepository
	messageRepo      repository.MessageRepository
	planRepo         repository.PlanRepository
	subscriptionRepo repository.SubscriptionRepository

	userService *service.UserService
	verifier    clerk.Verifier
	publisher   *outbox.Publisher
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var verifier clerk.Verifier
	if cfg.ClerkWebhookSecret != "" {
		verifier, err = clerk.NewVerifier(cfg.ClerkWebhookSecret)
		if err != nil {
			return nil, err
		}
	}

	var publisher *outbox.Publisher
	if cfg.KafkaBrokers != "" {
		publisher = outbox.NewPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	}

	return NewServerWithDeps(cfg, db, redisClient, verifier, publisher), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, verifier clerk.Verifier, publisher *outbox.Publisher) *Server {
	userRepo := repository.NewUserRepository(db)

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("commune-api"),
		userRepo:         userRepo,
		communityRepo:    repository.NewCommunityRepository(db),
		threadRepo:       repository.NewThreadRepository(db),
		eventRepo:        repository.NewEventRepository(db),
		channelRepo:      repository.NewChannelRepository(db),
		messageRepo:      repository.NewMessageRepository(db),
		planRepo:         repository.NewPlanRepository(db),
		subscriptionRepo: repository.NewSubscriptionRepository(db),
		userService:      service.NewUserService(userRepo, publisher),
		verifier:         verifier,
		publisher:        publisher,
	}
	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Identity extraction is optional everywhere; AuthRequired gates the
	// routes that need it.
	app.Use(middleware.WithIdentity())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Clerk webhook ingress; deliberately outside /api.
	app.Post("/clerk", s.HandleClerkWebhook)

	api := app.Group("/api")

	// User directory
	users := api.Group("/users")
	users.Get("/me", s.GetCurrentUser)
	users.Get("/me/subscriptions", middleware.AuthRequired(), s.GetMySubscriptions)
	users.Get("/", s.GetUsers)
	users.Get("/:clerkId", s.GetUserByClerkID)

	// Public community reads
	communities := api.Group("/communities")
	communities.Get("/", s.GetCommunities)
	communities.Get("/:id/threads", s.GetCommunityThreads)
	communities.Get("/:id/events", s.GetCommunityEvents)
	communities.Get("/:id/channels", s.GetCommunityChannels)
	communities.Get("/:id/plans", s.GetCommunityPlans)
	communities.Get("/:id", s.GetCommunity)

	channels := api.Group("/channels")
	channels.Get("/:id/messages", s.GetChannelMessages)

	// Protected writes
	protected := api.Group("", middleware.AuthRequired())
	protected.Post("/communities", s.CreateCommunity)
	protected.Post("/threads", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_thread"), s.CreateThread)
	protected.Post("/threads/:id/like", s.LikeThread)
	protected.Delete("/threads/:id/like", s.UnlikeThread)
	protected.Post("/events", s.CreateEvent)
	protected.Post("/events/:id/interest", s.MarkEventInterest)
	protected.Post("/channels", s.CreateChannel)
	protected.Post("/messages", middleware.RateLimit(
		s.redis, 30, time.Minute, "create_message"), s.CreateMessage)
	protected.Post("/messages/:id/vote", s.VoteOnPoll)
	protected.Post("/plans", s.CreatePlan)
	protected.Post("/subscriptions", s.CreateSubscription)
	protected.Delete("/subscriptions/:id", s.CancelSubscription)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return err
		}
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// LivenessCheck handles GET /health/live
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck handles GET /health/ready
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.Context()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"db":     "unreachable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
