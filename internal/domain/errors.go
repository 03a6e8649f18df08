package domain

import "errors"

var (
	// ErrInvalidSnapshot tour payload violates snapshot invariants
	ErrInvalidSnapshot = errors.New("domain: invalid tour snapshot")

	// ErrTourUnavailable the booking form cannot be built for this tour
	ErrTourUnavailable = errors.New("domain: tour is not available for booking")

	// ErrInvalidInput client-side validation failed
	ErrInvalidInput = errors.New("domain: invalid input")

	// ErrSubmissionInProgress a submission for the same form is already running
	ErrSubmissionInProgress = errors.New("domain: submission already in progress")

	// ErrAlreadySubmitted the form was already submitted successfully
	ErrAlreadySubmitted = errors.New("domain: form already submitted")
)
