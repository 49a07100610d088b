package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNoTrailer indicates the videos endpoint returned no results
	ErrNoTrailer = errors.New("no trailer available")

	// ErrSuperseded indicates a newer lookup replaced this one before it finished
	ErrSuperseded = errors.New("lookup superseded by a newer request")

	// ErrServiceOffline indicates the metadata service is unreachable
	ErrServiceOffline = errors.New("metadata service is unreachable")

	// ErrUnauthorized indicates the API key was rejected
	ErrUnauthorized = errors.New("api key is invalid")

	// ErrNotFound indicates the requested show does not exist
	ErrNotFound = errors.New("show not found")
)
