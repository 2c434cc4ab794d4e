package dto

import "time"

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// APIResponse wraps a payload or an error detail
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Message   string       `json:"message,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse creates a success envelope around a payload
func NewAPIResponse(data interface{}) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewMessageResponse creates a success envelope carrying only a message
func NewMessageResponse(message string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// PagedResponse is the pagination envelope used by every list endpoint.
type PagedResponse struct {
	Data        interface{} `json:"data"`
	Total       int         `json:"total" example:"120"`
	PerPage     int         `json:"per_page" example:"15"`
	CurrentPage int         `json:"current_page" example:"1"`
	LastPage    int         `json:"last_page" example:"8"`
}

// NewPagedResponse creates a pagination envelope
func NewPagedResponse(data interface{}, total, perPage, currentPage, lastPage int) *PagedResponse {
	return &PagedResponse{
		Data:        data,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: currentPage,
		LastPage:    lastPage,
	}
}
