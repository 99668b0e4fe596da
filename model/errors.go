package model

import "errors"

var (
	// ErrNotFound represents the error for the cases when some entity is not found.
	ErrNotFound = errors.New("not found")
	// ErrBadInput represents the error for the cases when the user input is invalid.
	ErrBadInput = errors.New("bad input")
	// ErrUnauthorized represents the error for the cases when the authorization is required.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEmptyGeometry represents the error for the case when the submitted geometry has no coordinates.
	ErrEmptyGeometry = errors.New("geometry is empty: draw a valid polygon")
	// ErrInvalidGeometry represents the error for the case when the submitted geometry fails the validity checks.
	ErrInvalidGeometry = errors.New("geometry is invalid: simplify or redraw and avoid self intersections and holes")
	// ErrUnknownFormat represents the error for the case when the requested export format is not supported.
	ErrUnknownFormat = errors.New("unknown export format")
)
