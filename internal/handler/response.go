package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"instiwise-api/internal/model"
	"instiwise-api/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, message string, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// writeError maps service sentinels onto the envelope. Expired,
// malformed and revoked tokens all come out as the same message so the
// surface does not reveal why a token failed.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	tag := model.TagServerError
	message := "Something went wrong"

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		tag = apiErr.Tag
		message = apiErr.Message
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusBadRequest
		tag = model.TagAuthError
		message = "Invalid email or password"
	} else if errors.Is(err, model.ErrEmailTaken) {
		status = http.StatusBadRequest
		tag = model.TagAuthError
		message = "Email already in use"
	} else if errors.Is(err, model.ErrTokenMissing) ||
		errors.Is(err, model.ErrTokenExpired) ||
		errors.Is(err, model.ErrTokenMalformed) ||
		errors.Is(err, model.ErrTokenRevoked) {
		status = http.StatusUnauthorized
		tag = model.TagAuthError
		message = "Invalid token"
	} else if errors.Is(err, model.ErrNotActivated) {
		status = http.StatusForbidden
		tag = model.TagForbidden
		message = "Please set your username first"
	} else if errors.Is(err, model.ErrAlreadyActive) {
		status = http.StatusBadRequest
		tag = model.TagValidationError
		message = "Username already set"
	} else if errors.Is(err, model.ErrUsernameTaken) {
		status = http.StatusBadRequest
		tag = model.TagValidationError
		message = "Username already taken"
	} else if errors.Is(err, model.ErrUsernameTooShort) {
		status = http.StatusBadRequest
		tag = model.TagValidationError
		message = "Username must be at least 3 characters"
	} else if errors.Is(err, model.ErrWeakPassword) {
		status = http.StatusBadRequest
		tag = model.TagValidationError
		message = "Password must be at least 8 characters with an uppercase letter and a number"
	} else if errors.Is(err, model.ErrBadEventTime) {
		status = http.StatusBadRequest
		tag = model.TagValidationError
		message = "Invalid event date or time"
	} else if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
		tag = model.TagValidationError
		message = "Invalid input"
	} else if errors.Is(err, model.ErrProjectTitleTaken) {
		status = http.StatusConflict
		tag = model.TagConflict
		message = "A project with this title already exists"
	} else if errors.Is(err, model.ErrDuplicateDemoRequest) {
		status = http.StatusTooManyRequests
		tag = model.TagRateLimited
		message = "A demo request for this institute was already submitted recently"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		tag = model.TagNotFound
		message = "User not found"
	} else if errors.Is(err, model.ErrProjectNotFound) {
		status = http.StatusNotFound
		tag = model.TagNotFound
		message = "Project not found"
	} else if errors.Is(err, model.ErrNewsNotFound) {
		status = http.StatusNotFound
		tag = model.TagNotFound
		message = "News not found"
	} else if errors.Is(err, model.ErrEventNotFound) {
		status = http.StatusNotFound
		tag = model.TagNotFound
		message = "Event not found"
	} else if errors.Is(err, model.ErrDemoRequestNotFound) {
		status = http.StatusNotFound
		tag = model.TagNotFound
		message = "Demo request not found"
	} else if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		tag = model.TagForbidden
		message = "You are not authorized"
	} else if errors.Is(err, model.ErrUnauthorized) {
		status = http.StatusUnauthorized
		tag = model.TagAuthError
		message = "You are not authenticated"
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Message: message,
		Error:   tag,
	})
}

func writeBadJSON(w http.ResponseWriter) {
	writeError(w, apierror.New(model.TagValidationError, "Invalid JSON body", http.StatusBadRequest))
}
