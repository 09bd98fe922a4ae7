package httpdto

import "messagely/internal/domain"

// SendMessageRequest is used for POST /messages
type SendMessageRequest struct {
	ToUsername string `json:"to_username" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

// MessageResponse wraps a created message
type MessageResponse struct {
	Message domain.Message `json:"message"`
}

// MessageDetailResponse wraps a message with expanded participants
type MessageDetailResponse struct {
	Message domain.MessageDetail `json:"message"`
}

// ReadReceiptResponse is returned after marking a message read
type ReadReceiptResponse struct {
	Message ReadReceiptDTO `json:"message"`
}

// ReadReceiptDTO carries the mark-read result
type ReadReceiptDTO struct {
	ID     int64  `json:"id"`
	ReadAt string `json:"read_at"`
}
