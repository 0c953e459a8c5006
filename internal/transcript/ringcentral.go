package transcript

import (
	"context"
	"fmt"
	"log/slog"

	"callbridge/internal/ringcentral"
)

// RingCentral fetches transcripts through the vendor call-log API.
//
// The client is constructed per fetch from stored credentials, matching the
// request-scoped lifecycle of the webhook handler.
type RingCentral struct {
	cfg ringcentral.Config
	log *slog.Logger

	// connect is swappable for tests.
	connect func(ringcentral.Config, *slog.Logger) (ringcentral.Client, error)
}

func NewRingCentral(cfg ringcentral.Config, log *slog.Logger) *RingCentral {
	if log == nil {
		log = slog.Default()
	}
	return &RingCentral{cfg: cfg, log: log, connect: ringcentral.Connect}
}

func (p *RingCentral) Name() string { return "ringcentral" }

func (p *RingCentral) Fetch(ctx context.Context, callID string, _ int) (string, error) {
	client, err := p.connect(p.cfg, p.log)
	if err != nil {
		return "", fmt.Errorf("transcript: connect: %w", err)
	}

	rec, err := client.GetCallLogRecord(ctx, callID)
	if err != nil {
		return "", fmt.Errorf("transcript: call log lookup: %w", err)
	}

	if rec.TranscriptURI == "" {
		// Missing transcript is not an error; log and keep the record useful.
		p.log.Warn("transcript uri missing", "call_id", callID)
		return PlaceholderText, nil
	}

	text, err := client.DownloadTranscript(ctx, rec.TranscriptURI)
	if err != nil {
		return "", fmt.Errorf("transcript: download: %w", err)
	}
	return text, nil
}
