package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrShowNotFound indicates the requested show does not exist remotely
	ErrShowNotFound = errors.New("show not found")

	// ErrServiceUnavailable indicates the metadata service is unreachable
	ErrServiceUnavailable = errors.New("metadata service is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrNoPreferredShow indicates no show and/or season is set in preferences
	ErrNoPreferredShow = errors.New("no show and/or season is set in preferences")
)
