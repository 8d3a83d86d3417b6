package domain

import "errors"

// Sentinel errors for the point domain. Use errors.Is() to check these.
var (
	// ErrPointNotFound indicates the requested collection point does not exist.
	ErrPointNotFound = errors.New("point not found")

	// ErrInvalidItemIDs indicates the items list is empty or holds a non-integer id.
	ErrInvalidItemIDs = errors.New("invalid item ids")

	// ErrImageRequired indicates a creation request arrived without an image file.
	ErrImageRequired = errors.New("image is required")

	// ErrInvalidPoint indicates the point violates domain constraints.
	ErrInvalidPoint = errors.New("invalid point")
)
