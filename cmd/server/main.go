package main

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"gatewaysv/server/config"
	"gatewaysv/server/internal/api"
	"gatewaysv/server/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// .env is optional; deployments usually set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	var source store.Source
	switch strings.ToLower(cfg.Listings.Source) {
	case "sqlite":
		source = store.NewSQLiteSource(cfg.Listings.SQLitePath)
		logger.Infof("Using SQLite listing source at: %s", cfg.Listings.SQLitePath)
	default:
		source = store.NewFileSource(cfg.Listings.Path)
		logger.Infof("Using JSON listing source at: %s", cfg.Listings.Path)
	}

	listingStore := store.NewStore(source, logger)

	// Warm the cache so the first request doesn't pay the load cost. A
	// failed load is not fatal: the store retries on the next request.
	if listings, err := listingStore.Load(); err != nil {
		logger.WithError(err).Warn("Initial listing load failed")
	} else {
		logger.Infof("Loaded %d listings", len(listings))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	api.SetupRoutes(router, listingStore, logger)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
