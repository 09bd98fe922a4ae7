package handler

import (
	"net/http"

	"messagely/internal/metrics"
	"messagely/internal/middleware"
	"messagely/internal/redis"
	"messagely/internal/services"
	"messagely/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps carries everything the router needs. Limiter and metrics are
// optional; routes are wired without them when nil.
type RouterDeps struct {
	Log        *logger.Logger
	AuthSvc    *services.AuthService
	UserSvc    *services.UserService
	MessageSvc *services.MessageService
	Limiter    *redis.RateLimiter
	Collector  *metrics.Collector
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(deps.Log))
	if deps.Collector != nil {
		r.Use(middleware.MetricsMiddleware(deps.Collector))
	}

	authHandler := NewAuthHandler(deps.AuthSvc, deps.Collector)
	userHandler := NewUserHandler(deps.UserSvc)
	messageHandler := NewMessageHandler(deps.MessageSvc, deps.Collector)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(deps.Gatherer)))
	}

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	if deps.Limiter != nil {
		auth.Use(middleware.AuthRateLimitMiddleware(deps.Limiter))
	}
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthSvc))

	protected.GET("/users", userHandler.List)
	protected.GET("/users/:username", userHandler.Get)
	protected.GET("/users/:username/messages/from", userHandler.MessagesFrom)
	protected.GET("/users/:username/messages/to", userHandler.MessagesTo)

	messages := protected.Group("/messages")
	messages.GET("/:id", messageHandler.Get)
	messages.POST("/:id/read", messageHandler.MarkRead)
	if deps.Limiter != nil {
		messages.POST("", middleware.MessageRateLimitMiddleware(deps.Limiter), messageHandler.Send)
	} else {
		messages.POST("", messageHandler.Send)
	}

	return r
}
