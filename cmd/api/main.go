package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sivaji4829/attendance-backend/internal/academic"
	"github.com/Sivaji4829/attendance-backend/internal/attendance"
	"github.com/Sivaji4829/attendance-backend/internal/auth"
	"github.com/Sivaji4829/attendance-backend/internal/config"
	"github.com/Sivaji4829/attendance-backend/internal/httpmiddleware"
	"github.com/Sivaji4829/attendance-backend/internal/notify"
	"github.com/Sivaji4829/attendance-backend/internal/queue"
	"github.com/Sivaji4829/attendance-backend/internal/store"
	"github.com/Sivaji4829/attendance-backend/internal/student"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "attendance:absences")
	}

	userRepo := auth.NewRepository(db.Client)
	authSvc := auth.NewService(userRepo, cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL)
	if err := authSvc.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("warning: admin seed failed: %v", err)
	}

	attSvc := attendance.NewService(db.Client, cfg.AbsenceThreshold)
	studentRepo := student.NewRepository(db.Client)
	studentSvc := student.NewService(studentRepo, attSvc)
	academicRepo := academic.NewRepository(db.Client)
	smsClient := notify.New(cfg.SMSBaseURL, cfg.SMSAPIKey, cfg.SMSTimeout, cfg.SMSSkip)
	notifySvc := notify.NewService(smsClient, notify.NewRepository(db.Client), studentRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/health", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Client.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	authn := auth.Authenticate(cfg.JWTSigningKey, cfg.JWTIssuer)
	api := r.Group("/api")

	auth.NewHandler(authSvc).RegisterRoutes(api.Group("/auth"), authn)
	student.NewHandler(studentSvc).RegisterRoutes(api.Group("/students", authn))
	academic.NewHandler(academicRepo).RegisterRoutes(api.Group("/academic", authn))
	attendance.NewHandler(attSvc, q).RegisterRoutes(api.Group("/attendance", authn))
	notify.NewHandler(notifySvc).RegisterRoutes(api.Group("/sms", authn))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced shutdown: %v", err)
	}

	log.Println("server exited")
	return nil
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
