package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")

	// Content related errors
	ErrJobPostNotFound   = errors.New("job post not found")
	ErrThreadNotFound    = errors.New("community thread not found")
	ErrBlogPostNotFound  = errors.New("blog post not found")
	ErrChallengeNotFound = errors.New("challenge not found")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Trash related errors
	ErrTrashItemNotFound   = errors.New("trash item not found")
	ErrUnsupportedItemType = errors.New("unsupported item type")
	ErrRestoreConflict     = errors.New("restore conflict")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
