// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"messagely/internal/metrics"
	"messagely/internal/services"
	"messagely/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	service   *services.AuthService
	collector *metrics.Collector
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{service: service, collector: collector}
}

// Register handles user registration. A successful registration logs the
// user in and returns a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	token, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordRegistration()
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.TokenResponse{Token: token}))
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	token, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordLogin()
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.TokenResponse{Token: token}))
}

func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), errorCode(status)))
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}
