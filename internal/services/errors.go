package services

import "errors"

// Failure classes surfaced by the analysis pipeline. Handlers map these
// onto HTTP statuses; anything else is treated as an internal error.
var (
	ErrResumeNotFound        = errors.New("resume not found")
	ErrUpstreamUnavailable   = errors.New("model invocation failed")
	ErrInvalidUpstreamOutput = errors.New("model response could not be decoded")
	ErrExtractionFailed      = errors.New("no text content found in PDF")
)
