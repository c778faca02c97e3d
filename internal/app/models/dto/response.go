package dto

import (
	"time"

	"github.com/nonso/acadport/internal/pkg/helpers"
)

// APIResponse is the standard success envelope.
type APIResponse struct {
	Data      interface{}   `json:"data,omitempty"`
	Message   string        `json:"message,omitempty"`
	Page      *helpers.Page `json:"pagination,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewResponse wraps data in the standard envelope.
func NewResponse(data interface{}) APIResponse {
	return APIResponse{Data: data, Timestamp: time.Now()}
}

// NewPagedResponse wraps a data page plus its pagination metadata.
func NewPagedResponse(data interface{}, page helpers.Page) APIResponse {
	return APIResponse{Data: data, Page: &page, Timestamp: time.Now()}
}

// NewMessageResponse wraps a bare status message.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{Message: message, Timestamp: time.Now()}
}
