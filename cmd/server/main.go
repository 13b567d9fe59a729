package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"motorchat/internal/config"
	"motorchat/internal/handler"
	"motorchat/internal/repository"
	"motorchat/internal/service"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("🚗 Starting MotorChat Server %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer repo.Close()
	log.Println("✅ Connected to PostgreSQL")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := repo.EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatalf("❌ Failed to ensure schema: %v", err)
	}
	cancel()

	gen := buildGenerator(cfg)
	if gen == nil {
		log.Println("⚠️  No text-generation provider configured, replies use the deterministic fallback")
	} else {
		log.Printf("✅ Text-generation provider ready: %s (%s)", cfg.AI.Provider, cfg.AI.Model)
	}

	chatSvc := service.NewChatService(repo, gen, service.ChatOptions{
		MaxExamples:          cfg.Chat.MaxExamples,
		FallbackLimit:        cfg.Chat.FallbackLimit,
		HistoryWindow:        cfg.Chat.HistoryWindow,
		LargeResultThreshold: cfg.Chat.LargeResultThreshold,
		MaxSuggestions:       cfg.Chat.MaxSuggestions,
		PriceSampleCap:       cfg.Chat.PriceSampleCap,
		PriceBandWidth:       cfg.Chat.PriceBandWidth,
	})

	chatHandler := handler.NewChatHandler(chatSvc)
	vehicleHandler := handler.NewVehicleHandler(repo)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/chat", chatHandler.Chat)
		apiV1.GET("/vehicles", vehicleHandler.List)
		apiV1.GET("/vehicles/:vin", vehicleHandler.Get)
		apiV1.POST("/vehicles", vehicleHandler.Create)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Forced shutdown: %v", err)
	}
	log.Println("👋 Bye")
}

// buildGenerator selects the text-generation provider. Nil means the chat
// service runs fallback-only.
func buildGenerator(cfg *config.Config) service.TextGenerator {
	if !cfg.AI.Enabled {
		return nil
	}
	if cfg.AI.Provider == "gemini" {
		gen, err := service.NewGeminiGenerator(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Printf("⚠️  Gemini provider unavailable, falling back to deterministic replies: %v", err)
			return nil
		}
		return gen
	}
	return service.NewOpenAIGenerator(&cfg.AI)
}
