package dto

import "net/http"

// Messages returned in the error field of non-2xx responses
const (
	MsgMethodNotAllowed = "Method not allowed. Use GET."
	MsgNotFound         = "Not found"
	MsgInternal         = "Internal server error"
	MsgRateLimited      = "Too many requests. Please try again later."
	MsgBodyTooLarge     = "Request body exceeds maximum allowed size"
)

// ErrorResponse is the body of every error that carries no other payload
// @Description Error response
type ErrorResponse struct {
	Error string `json:"error" example:"Method not allowed. Use GET."`
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// MethodNotAllowed returns the status and body for a request with an
// unsupported method
func MethodNotAllowed() (int, ErrorResponse) {
	return http.StatusMethodNotAllowed, NewErrorResponse(MsgMethodNotAllowed)
}
