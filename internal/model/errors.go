package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUsernameTooShort   = errors.New("username too short")
	ErrAlreadyActive      = errors.New("username already set")
	ErrNotActivated       = errors.New("account not activated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password too weak")

	// Token related errors
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenRevoked   = errors.New("token revoked")
	ErrTokenMissing   = errors.New("token missing")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Project related errors
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectTitleTaken = errors.New("project title already exists")

	// News related errors
	ErrNewsNotFound = errors.New("news not found")

	// Event related errors
	ErrEventNotFound = errors.New("event not found")
	ErrBadEventTime  = errors.New("invalid event date or time")

	// Demo request related errors
	ErrDemoRequestNotFound  = errors.New("demo request not found")
	ErrDuplicateDemoRequest = errors.New("demo request already submitted")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
