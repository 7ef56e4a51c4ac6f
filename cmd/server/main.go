package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/EcoTrackApp/ecotrack-go/internal/auth"
	"github.com/EcoTrackApp/ecotrack-go/internal/config"
	"github.com/EcoTrackApp/ecotrack-go/internal/database"
	"github.com/EcoTrackApp/ecotrack-go/internal/gamify"
	"github.com/EcoTrackApp/ecotrack-go/internal/handlers"
	"github.com/EcoTrackApp/ecotrack-go/internal/jobs"
	"github.com/EcoTrackApp/ecotrack-go/internal/middleware"
	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.NewPool(ctx, cfg)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer pool.Close()

	// Stores
	users := store.NewUsers(pool)
	bills := store.NewBills(pool)
	rewards := store.NewRewards(pool)
	posts := store.NewPosts(pool)
	reports := store.NewReports(pool)
	activity := store.NewActivity(pool)
	notifications := store.NewNotifications(pool)

	// Rule engine
	ledger := gamify.NewLedger(users)
	comparator := gamify.NewComparator(bills)
	oracle := gamify.NewOracle(users, activity)
	claims := gamify.NewClaims(users, rewards, oracle, notifications)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)

	scheduler, err := jobs.NewScheduler(notifications, cfg.NotificationRetentionDays)
	if err != nil {
		log.WithError(err).Fatal("Failed to create job scheduler")
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := database.Health(c.Request.Context(), pool); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "version": Version})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": Version, "service": "ecotrack-api"})
	})

	api := r.Group("/api")

	// Public
	api.POST("/auth/register", handlers.Register(users, jwtService))
	api.POST("/auth/login", handlers.Login(users, jwtService))

	// Authenticated
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(jwtService))
	{
		authed.GET("/users/:id", handlers.GetProfile(users))
		authed.PUT("/users/:id", handlers.UpdateProfile(users))
		authed.POST("/users/:id/follow", handlers.Follow(users))

		authed.POST("/bills/manual-entry", handlers.ManualEntry(bills, comparator, ledger, notifications))
		authed.GET("/bills/types", handlers.BillTypes())
		authed.GET("/bills/history/:id", handlers.BillHistory(bills))
		authed.GET("/bills/comparison/:id", handlers.UsageComparisonHandler(comparator))
		authed.GET("/bills/carbon-footprint/:id", handlers.CarbonFootprint(users, bills))
		authed.GET("/bills/analytics/:id", handlers.UsageAnalytics(bills))
		authed.GET("/bills/:id", handlers.GetBill(bills))
		authed.PUT("/bills/:id", handlers.UpdateBill(bills))
		authed.DELETE("/bills/:id", handlers.DeleteBill(bills))

		authed.GET("/rewards", handlers.ListRewards(users, rewards))
		authed.POST("/rewards/claim/:id", handlers.ClaimReward(claims))
		authed.GET("/rewards/progress/:id", handlers.RewardProgress(users, rewards, activity))
		authed.GET("/rewards/leaderboard", handlers.RewardsLeaderboard(users))

		authed.GET("/leaderboard/global", handlers.Leaderboard(users))
		authed.GET("/leaderboard/friends/:id", handlers.FriendsLeaderboard(users))

		authed.POST("/posts", handlers.CreatePost(posts, ledger))
		authed.GET("/posts", handlers.ListPosts(posts, users))
		authed.POST("/posts/:id/like", handlers.LikePost(posts, users, ledger, notifications))

		authed.POST("/reports", handlers.CreateReport(reports, ledger))
		authed.GET("/reports", handlers.ListReports(reports))
		authed.POST("/reports/:id/like", handlers.LikeReport(reports, users, ledger, notifications))
		authed.POST("/reports/:id/verify", handlers.VerifyReport(reports, ledger, notifications))

		authed.GET("/notifications/:id", handlers.ListNotifications(notifications))
		authed.POST("/notifications/:id/read", handlers.MarkNotificationRead(notifications))
		authed.POST("/notifications/:id/read-all", handlers.MarkAllNotificationsRead(notifications))
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(jwtService), middleware.RequireAdmin())
	{
		admin.POST("/rewards", handlers.CreateReward(rewards))
		admin.GET("/stats", handlers.PlatformStats(users, posts, reports, rewards))
		admin.GET("/users", handlers.ListUsers(users))
		admin.DELETE("/users/:id", handlers.DeleteUser(users, posts, reports))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
