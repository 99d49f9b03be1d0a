package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hippo/database"
	"hippo/handlers"
	"hippo/logger"
	"hippo/services"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	godotenv.Load()

	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	defer log.Sync()

	// Initialize database
	database.InitDB(log)

	// Collaborators; each degrades on its own when unconfigured
	amadeus := services.NewAmadeusClient(services.AmadeusConfigFromEnv(), log)
	comparisons := services.NewComparisonService(amadeus, log)
	completions := services.NewCompletionClient(log)
	webSearch := services.NewWebSearchClient(log)

	if amadeus.Configured() {
		log.Info("amadeus client configured, live prices enabled")
	} else {
		log.Warn("AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET not set, live prices will degrade to null")
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Trusted proxies (the host platform sits behind a proxy)
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	// CORS — allow configured frontend origins
	frontendURLs := os.Getenv("FRONTEND_URL")
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if frontendURLs != "" {
		for _, u := range strings.Split(frontendURLs, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	chat := handlers.NewChatHandler(comparisons, completions, webSearch, log)
	share := handlers.NewShareHandler(os.Getenv("BASE_URL"), log)

	// Routes
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)
		api.POST("/chat", chat.Chat)
		api.POST("/share", share.Create)
		api.GET("/shared/:id", share.Get)
		api.GET("/shared/:id/pdf", share.Download)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("Hippo backend starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
