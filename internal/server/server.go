// Package server wires the HTTP surface: the fiber app, its middleware
// chain, and the route handlers that front the service layer.
package server

import (
	"context"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"chronicle/internal/cache"
	"chronicle/internal/config"
	"chronicle/internal/database"
	"chronicle/internal/middleware"
	"chronicle/internal/repository"
	"chronicle/internal/service"
	"chronicle/internal/session"
)

type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	app    *fiber.App

	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	relationshipRepo repository.RelationshipRepository
	journalRepo      repository.JournalRepository

	sessions *session.Store

	userService         *service.UserService
	relationshipService *service.RelationshipService
	journalService      *service.JournalService
}

// NewServer connects to postgres and redis using cfg and builds a fully
// wired server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	rdb := cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, rdb), nil
}

// NewServerWithDeps builds a server on top of already-open connections.
// Tests use this with an in-memory sqlite database and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Server {
	s := &Server{
		config: cfg,
		db:     db,
		redis:  rdb,
		app: fiber.New(fiber.Config{
			AppName:      "chronicle",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}),
	}

	s.userRepo = repository.NewUserRepository(db)
	s.relationshipRepo = repository.NewRelationshipRepository(db)
	s.journalRepo = repository.NewJournalRepository(db)

	s.sessions = session.NewStore(rdb, time.Duration(cfg.SessionTTLMinutes)*time.Minute)

	s.userService = service.NewUserService(s.userRepo)
	s.relationshipService = service.NewRelationshipService(s.relationshipRepo, s.userRepo)
	s.journalService = service.NewJournalService(s.journalRepo, s.relationshipRepo)

	s.promMiddleware = middleware.InitMetrics("chronicle")

	s.SetupMiddleware()
	s.SetupRoutes()
	return s
}

func (s *Server) SetupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(middleware.ContextMiddleware())
	s.promMiddleware.RegisterAt(s.app, "/metrics")
	s.app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	s.app.Use(helmet.New())
	s.app.Use(middleware.StructuredLogger())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))
	if s.config.Env == "production" {
		s.app.Use(limiter.New(limiter.Config{
			Max:        300,
			Expiration: time.Minute,
		}))
	}
}

func (s *Server) SetupRoutes() {
	s.app.Get("/health", s.HealthCheck)
	s.app.Get("/health/live", s.LivenessCheck)
	s.app.Get("/health/ready", s.ReadinessCheck)

	api := s.app.Group("/api")

	user := api.Group("/user")
	user.Post("/register", middleware.RateLimit(s.redis, 10, time.Minute, "register"), s.Register)
	user.Post("/login", middleware.RateLimit(s.redis, 10, time.Minute, "login"), s.Login)
	user.Post("/logout", s.Logout)
	user.Get("/search/:name", s.SearchUsers)
	user.Get("/:username", s.GetUserByUsername)
	user.Put("/:username", s.UpdateUser)
	user.Delete("/:username", s.DeleteUser)

	// literal segments are registered before parameterized ones so that
	// "all", "search", "like" and friends are never captured by :username/:id
	journal := api.Group("/journal")
	journal.Get("/all", s.ListJournals)
	journal.Get("/search", s.SearchJournals)
	journal.Get("/friends/:username", s.FriendsFeed)
	journal.Post("/new", s.CreateJournal)
	journal.Put("/like", s.LikeJournal)
	journal.Put("/unlike", s.UnlikeJournal)
	journal.Put("/comment/:id", s.CommentJournal)
	journal.Get("/:username", s.ListJournalsByAuthor)
	journal.Put("/:id", s.UpdateJournal)
	journal.Delete("/:id", s.DeleteJournal)

	rel := api.Group("/relationship")
	rel.Put("/following", s.Follow)
	rel.Delete("/following", s.Unfollow)
	rel.Put("/follower", s.AddFollower)
	rel.Delete("/follower", s.RemoveFollower)
	rel.Put("/friend", s.AddFriend)
	rel.Delete("/friend", s.RemoveFriend)
	rel.Get("/:username", s.GetRelationship)
}

func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessCheck reports whether the backing stores answer. Redis being
// down degrades sessions and caching but does not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.Context()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"reason": "database unreachable",
		})
	}
	redisStatus := "ok"
	if s.redis == nil {
		redisStatus = "disabled"
	} else if err := s.redis.Ping(c.Context()).Err(); err != nil {
		redisStatus = "unreachable"
	}
	return c.JSON(fiber.Map{"status": "ready", "redis": redisStatus})
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Repositories exposes the data layer for seeding.
func (s *Server) Repositories() (repository.UserRepository, repository.RelationshipRepository, repository.JournalRepository) {
	return s.userRepo, s.relationshipRepo, s.journalRepo
}

func (s *Server) Start() error {
	return s.app.Listen(":" + s.config.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return err
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
