package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"transgrid/internal/api"
	"transgrid/internal/api/handlers"
	"transgrid/internal/config"
	"transgrid/internal/logger"
	"transgrid/internal/repository/memory"
	"transgrid/internal/services"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load(".env")

	log := logger.Setup()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	paramsRepo := memory.NewParamsRepository()
	referenceRepo := memory.NewReferenceRepository()

	// Initialize services
	gridService := services.NewGridService(paramsRepo, cfg, log)
	matchService := services.NewMatchService(referenceRepo, cfg, log)
	polygonService := services.NewPolygonService(log)

	// Initialize handlers
	gridHandler := handlers.NewGridHandler(gridService)
	matchHandler := handlers.NewMatchHandler(matchService)
	polygonHandler := handlers.NewPolygonHandler(polygonService)

	router := api.NewRouter(gridHandler, matchHandler, polygonHandler, log)

	engine := gin.New()
	engine.Use(gin.Recovery())
	router.Setup(engine)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("starting transgrid server", "addr", cfg.Server.Port,
		"default_family", cfg.Grid.DefaultFamily.String(), "default_size_m", cfg.Grid.DefaultSizeMeters)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
