package handler

import (
	"net/http"
	"time"

	"messagely/internal/services"
	"messagely/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user directory HTTP endpoints.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a user handler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns basic info on all users.
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UsersResponse{Users: profiles}))
}

// Get returns one user's full profile.
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.service.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UserResponse{User: httpdto.UserDTO{
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		JoinAt:      u.JoinAt.Format(time.RFC3339),
		LastLoginAt: u.LastLoginAt.Format(time.RFC3339),
	}}))
}

// MessagesFrom returns messages sent by the user. Only that user may ask.
func (h *UserHandler) MessagesFrom(c *gin.Context) {
	username := c.Param("username")
	if !isCorrectUser(c, username) {
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
		return
	}

	msgs, err := h.service.MessagesFrom(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UserMessagesResponse{Messages: msgs}))
}

// MessagesTo returns messages received by the user. Only that user may ask.
func (h *UserHandler) MessagesTo(c *gin.Context) {
	username := c.Param("username")
	if !isCorrectUser(c, username) {
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
		return
	}

	msgs, err := h.service.MessagesTo(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UserMessagesResponse{Messages: msgs}))
}

func isCorrectUser(c *gin.Context, username string) bool {
	caller, ok := services.UsernameFromContext(c.Request.Context())
	return ok && caller == username
}
