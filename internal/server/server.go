package server

import (
	"github.com/Piroenzo/mini-red-social/internal/apierr"
	"github.com/Piroenzo/mini-red-social/internal/auth"
	"github.com/Piroenzo/mini-red-social/internal/comment"
	"github.com/Piroenzo/mini-red-social/internal/config"
	"github.com/Piroenzo/mini-red-social/internal/like"
	"github.com/Piroenzo/mini-red-social/internal/post"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: apierr.Handler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.FrontendURL}))

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	api := s.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret, s.Redis)

	auth.RegisterRoutes(api.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB, s.Redis), jwtMiddleware)

	posts := api.Group("/posts")
	post.RegisterRoutes(posts, post.NewService(s.DB), jwtMiddleware)
	like.RegisterRoutes(posts, like.NewService(s.DB), jwtMiddleware)
	comment.RegisterRoutes(posts, comment.NewService(s.DB), jwtMiddleware)
}
