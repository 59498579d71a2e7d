package model

type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Error tags used in the response envelope. Clients dispatch on these,
// not on the message text.
const (
	TagAuthError       = "auth_error"
	TagValidationError = "validation_error"
	TagNotFound        = "not_found"
	TagForbidden       = "forbidden"
	TagConflict        = "conflict"
	TagRateLimited     = "rate_limited"
	TagServerError     = "server_error"
)
