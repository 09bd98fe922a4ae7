package handler

import (
	"net/http"
	"strconv"
	"time"

	"messagely/internal/metrics"
	"messagely/internal/services"
	"messagely/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles message HTTP endpoints.
type MessageHandler struct {
	service   *services.MessageService
	collector *metrics.Collector
}

// NewMessageHandler creates a message handler.
func NewMessageHandler(service *services.MessageService, collector *metrics.Collector) *MessageHandler {
	return &MessageHandler{service: service, collector: collector}
}

// Send creates a message from the caller to the requested recipient.
func (h *MessageHandler) Send(c *gin.Context) {
	caller, ok := services.UsernameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	m, err := h.service.Send(c.Request.Context(), caller, req.ToUsername, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordMessageSent()
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.MessageResponse{Message: m}))
}

// Get returns one message with both participants expanded. Only the sender
// or the recipient may see it.
func (h *MessageHandler) Get(c *gin.Context) {
	caller, ok := services.UsernameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	id, err := messageID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	m, err := h.service.Get(c.Request.Context(), id, caller)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.MessageDetailResponse{Message: m}))
}

// MarkRead stamps read_at on a message. Only the recipient may do so.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	caller, ok := services.UsernameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	id, err := messageID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	receipt, err := h.service.MarkRead(c.Request.Context(), id, caller)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ReadReceiptResponse{Message: httpdto.ReadReceiptDTO{
		ID:     receipt.ID,
		ReadAt: receipt.ReadAt.Format(time.RFC3339Nano),
	}}))
}

func messageID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
