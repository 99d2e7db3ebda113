package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/jordanlanch/campaignforge/config"
	"github.com/jordanlanch/campaignforge/pkg/ai/llm"
	"github.com/jordanlanch/campaignforge/pkg/api/handlers"
	"github.com/jordanlanch/campaignforge/pkg/audit"
	"github.com/jordanlanch/campaignforge/pkg/auth"
	"github.com/jordanlanch/campaignforge/pkg/cache"
	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/conversation"
	"github.com/jordanlanch/campaignforge/pkg/database"
	"github.com/jordanlanch/campaignforge/pkg/intent"
	"github.com/jordanlanch/campaignforge/pkg/jobs"
	"github.com/jordanlanch/campaignforge/pkg/launch"
	"github.com/jordanlanch/campaignforge/pkg/logger"
	"github.com/jordanlanch/campaignforge/pkg/metrics"
	custommw "github.com/jordanlanch/campaignforge/pkg/middleware"
	"github.com/jordanlanch/campaignforge/pkg/reporting"
	"github.com/jordanlanch/campaignforge/pkg/user"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("configuration loaded", "environment", cfg.APIEnvironment)

	// Sentry error tracking
	var reporter reporting.Reporter = reporting.Noop()
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Warn("failed to initialize sentry", "error", err)
		} else {
			reporter = reporting.NewSentryReporter()
			defer sentry.Flush(2 * time.Second)
			log.Info("sentry initialized", "environment", cfg.SentryEnvironment)
		}
	}

	// Database
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	cancelMigrate()

	// Redis
	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// LLM client
	var llmClient llm.LLMClient
	switch cfg.LLMProvider {
	case "ollama":
		llmClient = llm.NewOllamaClient(llm.OllamaConfig{
			BaseURL: cfg.OllamaBaseURL,
			Model:   cfg.OllamaModel,
		}, log)
	default:
		llmClient = llm.NewOpenAIClient(llm.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		}, log)
	}

	// Repositories
	userRepo := user.NewSQLRepository(db)
	campaignRepo := campaign.NewCachedRepository(campaign.NewSQLRepository(db), redisClient, time.Minute, log)
	conversationRepo := conversation.NewSQLRepository(db)

	// Services
	auditLogger := audit.NewService(db, log)
	userService := user.NewService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours, log)
	parser := intent.NewParser(llmClient, reporter, log)
	generator := content.NewGenerator(llmClient, reporter, log)
	campaignService := campaign.NewService(campaignRepo, conversationRepo, parser, generator, reporter, log)

	// Launch providers. Email goes through SendGrid when a key is set,
	// otherwise it logs like the rest.
	var emailProvider launch.Provider
	if cfg.SendGridAPIKey != "" {
		emailProvider = launch.NewSendGridProvider(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName, log)
	} else {
		emailProvider = launch.NewLogProvider(intent.ChannelEmail, log)
	}
	launchService := launch.NewService(campaignRepo, []launch.Provider{
		emailProvider,
		launch.NewSMSProvider(cfg.SMSFromNumber, log),
		launch.NewLogProvider(intent.ChannelSocial, log),
		launch.NewLogProvider(intent.ChannelPPC, log),
	}, reporter, log)

	tokenBlacklist := auth.NewTokenBlacklist(redisClient)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, tokenBlacklist, auditLogger, cfg.JWTExpirationHours)
	chatHandler := handlers.NewChatHandler(campaignService, userService, auditLogger,
		time.Duration(cfg.LLMTimeoutSecs)*time.Second)
	campaignHandler := handlers.NewCampaignHandler(campaignService, launchService, auditLogger)
	conversationHandler := handlers.NewConversationHandler(conversationRepo)

	// Echo
	e := echo.New()
	e.HideBanner = true

	globalRateLimiter := custommw.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	chatRateLimiter := custommw.NewRateLimiter(cfg.ChatRateLimitPerMinute, cfg.ChatRateLimitBurst)
	authRateLimiter := custommw.NewRateLimiter(5, 2)

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogError:   true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				"method", c.Request().Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String())
			return nil
		},
	}))
	e.Use(echomw.Recover())
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))
	e.Use(echomw.Gzip())
	e.Use(custommw.SecurityHeaders())
	e.Use(globalRateLimiter.RateLimitMiddleware())

	// Public endpoints
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "CampaignForge API",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})
	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "down"
		}
		redisStatus := "up"
		if err := redisClient.Redis.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" || redisStatus == "down" {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, map[string]any{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
		})
	})
	e.GET("/metrics", metrics.Handler())

	v1 := e.Group("/api/v1")
	v1.Use(custommw.APIVersionMiddleware(custommw.CurrentAPIVersion))

	v1.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, custommw.VersionInfo(custommw.CurrentAPIVersion))
	})

	v1.POST("/auth/register", authHandler.Register, authRateLimiter.RateLimitMiddleware())
	v1.POST("/auth/login", authHandler.Login, authRateLimiter.RateLimitMiddleware())

	// Authenticated routes
	authed := v1.Group("", custommw.JWTAuth(cfg.JWTSecret, tokenBlacklist))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)
	authed.PUT("/auth/brand-voice", authHandler.SetBrandVoice)

	authed.POST("/chat", chatHandler.Chat, chatRateLimiter.RateLimitMiddleware())

	authed.GET("/campaigns", campaignHandler.List)
	authed.GET("/campaigns/:id", campaignHandler.Get)
	authed.PATCH("/campaigns/:id/status", campaignHandler.SetStatus)
	authed.POST("/campaigns/:id/launch", campaignHandler.Launch)
	authed.GET("/campaigns/:id/metrics", campaignHandler.Metrics)
	authed.DELETE("/campaigns/:id", campaignHandler.Delete)

	authed.GET("/conversations", conversationHandler.List)
	authed.GET("/conversations/:id/messages", conversationHandler.Messages)

	// Cron jobs
	cronManager := jobs.NewCronManager(launchService, campaignRepo, log)
	if err := cronManager.SetupJobs(); err != nil {
		log.Error("failed to set up cron jobs", "error", err)
		os.Exit(1)
	}
	cronManager.Start()

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Info("campaignforge api starting",
		"address", address,
		"llm_provider", cfg.LLMProvider,
		"rate_limit", cfg.RateLimitRequestsPerMinute)

	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	cronManager.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
