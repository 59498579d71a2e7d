package apierror

import "fmt"

// APIError is an error that already knows how it should be presented:
// the machine-readable tag for the response envelope, a human-readable
// message, and the HTTP status to answer with.
type APIError struct {
	Tag        string `json:"error"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("%s: %s", e.Tag, e.Message)
}

func New(tag string, message string, status int) *APIError {
	return &APIError{Tag: tag, Message: message, HTTPStatus: status}
}
