package domain

import "errors"

var (
	// ErrNoCredential means no API credential is configured. Fatal for text
	// analysis; image and audio silently degrade instead.
	ErrNoCredential = errors.New("no API credential configured")

	// ErrEmptyResponse means the generation backend returned no payload.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrBadAnalysis means the structured output was malformed or incomplete.
	// Partial results are never valid.
	ErrBadAnalysis = errors.New("malformed analysis result")

	// ErrInvalidInput rejects an intake submission that fails validation.
	ErrInvalidInput = errors.New("invalid user input")

	// ErrSessionInFlight rejects a submission while a pipeline is running.
	ErrSessionInFlight = errors.New("a session is already in flight")

	// ErrIllegalTransition rejects an intent the current phase does not allow.
	ErrIllegalTransition = errors.New("illegal phase transition")

	// ErrNoCurrentResult guards phases that require a completed analysis.
	ErrNoCurrentResult = errors.New("no current analysis result")
)
