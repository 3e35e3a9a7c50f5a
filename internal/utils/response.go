package utils

import "time"

// APIResponse is the envelope every storefront endpoint returns. Cart and
// checkout payloads ride in Data; Error carries the underlying cause when
// Success is false.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func ErrorResponse(message, cause string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Error:     cause,
		Timestamp: time.Now(),
	}
}
