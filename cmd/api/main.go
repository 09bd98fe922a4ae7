package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"messagely/internal/config"
	"messagely/internal/handler"
	"messagely/internal/metrics"
	"messagely/internal/redis"
	"messagely/internal/repository"
	"messagely/internal/services"
	"messagely/pkg/database"
	"messagely/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l := logger.New(cfg.Server.Environment)
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		l.Errorf("Failed to connect to database: %v", err)
		return
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		l.Errorf("Failed to apply migrations: %v", err)
		return
	}

	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()
	if err := redis.Ping(ctx, redisClient); err != nil {
		l.Errorf("Failed to connect to redis: %v", err)
		return
	}
	limiter := redis.NewRateLimiter(redisClient, redis.DefaultRateLimitConfig())

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authSvc := services.NewAuthService(userRepo, cfg)
	userSvc := services.NewUserService(userRepo)
	messageSvc := services.NewMessageService(messageRepo)

	router := handler.NewRouter(handler.RouterDeps{
		Log:        l,
		AuthSvc:    authSvc,
		UserSvc:    userSvc,
		MessageSvc: messageSvc,
		Limiter:    limiter,
		Collector:  collector,
		Gatherer:   registry,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		l.Infof("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Errorf("Shutdown error: %v", err)
	}
	l.Infof("Server stopped")
}
