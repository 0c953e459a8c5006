package transcript

import (
	"context"
	"fmt"
)

// Simulated synthesizes a transcript without any data source. Used in
// sandbox deployments and anywhere transcription is not licensed.
type Simulated struct{}

func NewSimulated() *Simulated { return &Simulated{} }

func (p *Simulated) Name() string { return "simulated" }

func (p *Simulated) Fetch(_ context.Context, callID string, durationSeconds int) (string, error) {
	minutes := float64(durationSeconds) / 60.0
	return fmt.Sprintf(
		"Simulated transcript for call %s.\n"+
			"The conversation lasted %.1f minutes.\n\n"+
			"AI-generated insight: the customer discussed their account and a follow-up was agreed. "+
			"Sentiment was positive throughout the call.",
		callID, minutes,
	), nil
}
