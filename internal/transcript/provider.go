package transcript

import "context"

// Provider fetches the transcript text for a completed call.
//
// Contract:
// - Fetch must not fail just because no transcript exists; absence is
//   reported through placeholder text so call logging still proceeds.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, callID string, durationSeconds int) (string, error)
}

// PlaceholderText is returned when the vendor has no transcript for a call.
const PlaceholderText = "Transcript not available (No URI found)."
