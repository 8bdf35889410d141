// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Auth-related errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPasswordTooWeak    = errors.New("password too weak")

	// Organization-related errors
	ErrOrganizationNotFound = errors.New("organization not found")

	// Contact-related errors
	ErrContactNotFound = errors.New("contact not found")

	// Business-unit-related errors
	ErrBusinessUnitNotFound      = errors.New("business unit not found")
	ErrDuplicateBusinessUnitCode = errors.New("business unit code already exists in organization")
	ErrUnknownBusinessUnit       = errors.New("one or more business units are invalid for this organization")

	// Channel-related errors
	ErrInvalidChannel        = errors.New("invalid channel")
	ErrChannelNotConfigured  = errors.New("channel is not configured")
	ErrBusinessUnitNotLinked = errors.New("preferences require contact to be linked to all provided business units")
	ErrInvalidChannelConfig  = errors.New("invalid channel configuration")
	ErrInvalidRelationship   = errors.New("invalid relationship type")

	// Installer-related errors
	ErrInstallerDisabled     = errors.New("installer is disabled")
	ErrInvalidInstallerToken = errors.New("invalid installer token")
)
