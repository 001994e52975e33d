package otlink

import "errors"

var (
	// ErrNotFound covers missing, expired and consumed links alike.
	ErrNotFound    = errors.New("ot link invalid or expired")
	ErrInvalidData = errors.New("invalid ot link data")
)
