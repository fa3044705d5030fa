package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/greengrowth-cpas/tax-agent/client"
	"github.com/greengrowth-cpas/tax-agent/config"
	"github.com/greengrowth-cpas/tax-agent/handler"
	"github.com/greengrowth-cpas/tax-agent/service"
	"github.com/greengrowth-cpas/tax-agent/session"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	logger := buildLogger(cfg.LogLevel)
	defer logger.Sync()

	if cfg.OpenRouterAPIKey == "" {
		logger.Warn("OPENROUTER_API_KEY is not set; extraction and chat calls will fail")
	}

	// Collaborator clients
	llmClient := client.NewOpenRouterClient(
		cfg.OpenRouterBaseURL,
		cfg.OpenRouterAPIKey,
		cfg.OpenRouterModel,
		cfg.LLMTimeout,
		logger,
	)
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, logger)
	defer tesseractClient.Close()

	// Service layer
	pdfProcessor := service.NewPDFProcessor()
	extractionService := service.NewExtractionService(llmClient, pdfProcessor, tesseractClient, logger)
	taxService := service.NewTaxService(logger)
	reportService := service.NewReportService()
	chatService := service.NewChatService(llmClient, cfg.ChatCleanupEnabled, logger)

	// Session store with idle eviction
	store := session.NewStore(cfg.SessionTTL, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.Run(ctx)

	// Handler layer
	sessionHandler := handler.NewSessionHandler()
	taxHandler := handler.NewTaxHandler(extractionService, taxService, reportService, cfg.MaxFileSize, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "W-2 Tax Agent",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	api.Use(handler.SessionMiddleware(store))
	{
		api.POST("/sessions", sessionHandler.CreateSession)
		api.GET("/sessions/current", sessionHandler.CurrentState)

		tax := api.Group("/tax")
		{
			tax.POST("/upload", taxHandler.Upload)
			tax.POST("/calculate", taxHandler.Calculate)
			tax.GET("/report", taxHandler.DownloadReport)
		}

		api.POST("/chat", chatHandler.Chat)
		api.GET("/chat/history", chatHandler.History)
	}

	// Start server
	logger.Info("starting W-2 Tax Agent", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func buildLogger(level string) *zap.Logger {
	zapLevel := zapcore.InfoLevel
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel)
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	return logger
}
