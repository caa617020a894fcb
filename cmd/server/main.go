package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/CreativeZee/local-hub-replicator/internal/auth"
	"github.com/CreativeZee/local-hub-replicator/internal/cache"
	"github.com/CreativeZee/local-hub-replicator/internal/config"
	"github.com/CreativeZee/local-hub-replicator/internal/database"
	"github.com/CreativeZee/local-hub-replicator/internal/geo"
	"github.com/CreativeZee/local-hub-replicator/internal/handlers"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/metrics"
	"github.com/CreativeZee/local-hub-replicator/internal/middleware"
	"github.com/CreativeZee/local-hub-replicator/internal/news"
)

func main() {
	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		os.Exit(1)
	}
	defer logger.Close()

	if cfg.JWTSecret == "" {
		logger.FatalWithFields("JWT_SECRET is required", nil)
	}

	if err := database.Initialize(cfg); err != nil {
		logger.FatalWithFields("database initialization failed", err)
	}
	defer database.Close()

	cache.Initialize(cfg)
	defer cache.Close()

	m := metrics.Initialize()

	authService := auth.NewService(database.Get(), cfg.JWTSecret)
	geocoder := geo.NewGeocoder(cfg.GeocoderBaseURL)
	newsClient := news.NewClient(cfg.NewsAPIBaseURL, cfg.NewsAPIKey, cfg.NewsCacheTTL)
	h := handlers.New(database.Get(), authService, geocoder, newsClient, cfg)

	router := setupRouter(cfg, h, m)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithFields("server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithFields("graceful shutdown failed", err)
	}
}

func setupRouter(cfg *config.Config, h *handlers.Handlers, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.GinLogger())
	router.Use(middleware.PrometheusMetrics())
	router.Use(middleware.RateLimit(300, time.Minute))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-auth-token", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	router.Static("/uploads", cfg.UploadDir)

	api := router.Group("/api/v1")
	api.Use(h.OptionalAuthMiddleware())

	// Public surface: browsing and auth need no token, but a supplied
	// token identifies the viewer for privacy checks. Auth gets a
	// tighter per-IP budget than the global limiter.
	authLimit := middleware.RateLimit(20, time.Minute)
	api.POST("/auth/register", authLimit, h.Register)
	api.POST("/auth/login", authLimit, h.Login)

	api.GET("/posts", h.ListPosts)
	api.GET("/posts/user/:userId", h.ListUserPosts)
	api.GET("/posts/:id", h.GetPost)
	api.GET("/marketplace", h.ListMarketplaceItems)
	api.GET("/marketplace/user/:userId", h.ListUserMarketplaceItems)
	api.GET("/marketplace/:id", h.GetMarketplaceItem)
	api.GET("/events", h.ListEvents)
	api.GET("/events/user/:userId", h.ListUserEvents)
	api.GET("/events/attending/:userId", h.ListAttendingEvents)
	api.GET("/events/:id", h.GetEvent)
	api.GET("/groups", h.ListGroups)
	api.GET("/groups/user/:userId", h.ListUserGroups)
	api.GET("/groups/created/:userId", h.ListCreatedGroups)
	api.GET("/groups/:id", h.GetGroup)
	api.GET("/services", h.ListServices)
	api.GET("/services/user/:userId", h.ListUserServices)
	api.GET("/services/:id", h.GetService)
	api.GET("/activities/business/:businessId", h.ListBusinessActivities)
	api.GET("/users", h.SearchUsers)
	api.GET("/users/:id", h.GetUser)
	api.GET("/users/:id/reviews", h.ListReviews)
	api.GET("/profile/certificates/:userId", h.GetUserCertificates)
	api.GET("/news", h.GetNews)

	// Everything that writes, plus the private profile surface.
	private := api.Group("")
	private.Use(h.AuthMiddleware())

	private.POST("/posts", h.CreatePost)
	private.DELETE("/posts/:id", h.DeletePost)
	private.POST("/posts/:id/like", h.LikePost)
	private.DELETE("/posts/:id/like", h.UnlikePost)
	private.POST("/posts/:id/comments", h.CreateComment)
	private.PUT("/posts/:id/comments/:commentId", h.UpdateComment)
	private.DELETE("/posts/:id/comments/:commentId", h.DeleteComment)

	private.POST("/marketplace", h.CreateMarketplaceItem)
	private.PUT("/marketplace/:id", h.UpdateMarketplaceItem)
	private.DELETE("/marketplace/:id", h.DeleteMarketplaceItem)

	private.POST("/events", h.CreateEvent)
	private.DELETE("/events/:id", h.DeleteEvent)
	private.POST("/events/:id/interest", h.MarkEventInterest)
	private.DELETE("/events/:id/interest", h.UnmarkEventInterest)
	private.POST("/events/:id/attend", h.AttendEvent)
	private.DELETE("/events/:id/attend", h.UnattendEvent)

	private.POST("/groups", h.CreateGroup)
	private.DELETE("/groups/:id", h.DeleteGroup)
	private.POST("/groups/:id/join", h.JoinGroup)
	private.POST("/groups/:id/leave", h.LeaveGroup)

	private.POST("/services", h.CreateService)
	private.PUT("/services/:id", h.UpdateService)
	private.DELETE("/services/:id", h.DeleteService)

	private.GET("/activities/client/:clientId", h.ListClientActivities)
	private.POST("/activities", h.CreateActivity)
	private.PUT("/activities/:activityId", h.UpdateActivity)
	private.DELETE("/activities/:activityId", h.DeleteActivity)

	private.POST("/users/:id/reviews", h.CreateReview)
	private.DELETE("/reviews/:id", h.DeleteReview)

	private.POST("/messages", h.SendDirectMessage)
	private.GET("/conversations", h.ListConversations)
	private.POST("/conversations", h.StartConversation)
	private.GET("/conversations/:id/messages", h.ListMessages)
	private.POST("/conversations/:id/messages", h.SendMessage)

	private.GET("/profile/me", h.GetMe)
	private.PUT("/profile", h.UpdateProfile)
	private.PUT("/profile/email", h.UpdateEmail)
	private.PUT("/profile/phone", h.UpdatePhone)
	private.PUT("/profile/notifications", h.UpdateNotificationSettings)
	private.PUT("/profile/privacy", h.UpdatePrivacySettings)
	private.PUT("/profile/feed-preferences", h.UpdateFeedPreferences)
	private.POST("/profile/gallery", h.AddGalleryImage)
	private.DELETE("/profile/gallery", h.RemoveGalleryImage)
	private.POST("/profile/certificates", h.AddCertificate)
	private.DELETE("/profile/certificates", h.RemoveCertificate)
	private.GET("/profile/blocked-users", h.GetBlockedUsers)
	private.POST("/profile/blocked", h.BlockUser)
	private.DELETE("/profile/blocked/:userId", h.UnblockUser)

	private.GET("/profile/favorites", h.ListFavorites)
	private.POST("/profile/favorites", h.AddFavorite)
	private.DELETE("/profile/favorites/:itemId", h.RemoveFavorite)

	private.POST("/upload", h.UploadImage)

	return router
}
