package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/katisd/bookmarkd/pkg/bookmarkd/auth"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/bookmarks"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/config"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/database"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/logger"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/models"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/users"
)

// @title bookmarkd API
// @version 1.0
// @description A personal bookmark manager: per-user CRUD over bookmarks behind JWT auth.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	defer logg.Sync()

	auth.Configure(cfg.JWT.Secret, cfg.JWT.Lifetime)

	if err := database.Connect(cfg.DB.Driver, cfg.DB.DSN); err != nil {
		logg.Fatal("Failed to connect to database", logger.Error(err))
	}
	db := database.GetDB()

	if err := models.AutoMigrate(db); err != nil {
		logg.Fatal("Failed to run migrations", logger.Error(err))
	}
	logg.Info("Database migrations completed",
		logger.String("driver", cfg.DB.Driver),
		logger.String("dsn", cfg.DB.DSN))

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "bookmarkd",
		})
	})

	// Auth routes (public)
	authHandler := auth.NewHandler(db)
	authHandler.RegisterRoutes(r.Group("/auth"))

	// Everything else requires a valid bearer token
	protected := r.Group("", auth.AuthMiddleware())

	usersHandler := users.NewHandler(db)
	usersHandler.RegisterRoutes(protected)

	bookmarksHandler := bookmarks.NewHandler(db)
	bookmarksHandler.RegisterRoutes(protected)

	logg.Info("Starting bookmarkd server", logger.String("addr", cfg.HTTP.Addr))
	if err := r.Run(cfg.HTTP.Addr); err != nil {
		logg.Fatal("Failed to start server", logger.Error(err))
	}
}
