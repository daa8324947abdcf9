// Package common defines sentinel errors shared by the repository, service
// and transport layers. Callers should match them with errors.Is; wrapped
// errors keep their original cause.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")

	// Service-level errors.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrResolution      = errors.New("image url resolution failure")
)
