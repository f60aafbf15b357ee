package myerrors

import "errors"

var (
	// ErrNotFound means the referenced bus/route/record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoAssignment means the reporting driver has no bus assigned.
	// Terminal for the session until an admin reassigns.
	ErrNoAssignment = errors.New("no bus assigned to driver")

	// ErrLowAccuracy means the sample was filtered out. The client is
	// expected to retry on its next cadence tick.
	ErrLowAccuracy = errors.New("location accuracy too low")

	// ErrInvalidCoordinates means lat/lng were missing or not finite.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	ErrEmailRegistered = errors.New("email already in use")
	ErrUnknownEmail    = errors.New("unknown email")
	ErrPasswordUnknown = errors.New("unknown password")
)
