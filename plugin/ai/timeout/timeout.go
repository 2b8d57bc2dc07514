// Package timeout defines centralized timeout constants for AI operations.
package timeout

import "time"

const (
	// InferenceTimeout is the timeout for a single date-inference call.
	// The resolver falls back to "no candidate" when it expires.
	InferenceTimeout = 15 * time.Second

	// ChatTimeout is the timeout for a raw chat completion round trip.
	ChatTimeout = 30 * time.Second

	// MaxInferenceResponseLength is the maximum response length accepted
	// from the inference collaborator before hardening gives up.
	MaxInferenceResponseLength = 512
)
