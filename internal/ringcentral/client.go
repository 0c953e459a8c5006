package ringcentral

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Client is the vendor API surface this service depends on.
//
// Rules:
// - No vendor SDK calls outside this package.
// - Construct a client per request from stored credentials; never hold a
//   module-global instance.
type Client interface {
	// GetCallLogRecord fetches the call-log entry for a completed call.
	GetCallLogRecord(ctx context.Context, callID string) (CallLogRecord, error)

	// DownloadTranscript fetches transcript text from a call-log URI.
	DownloadTranscript(ctx context.Context, uri string) (string, error)
}

// CallLogRecord is the subset of the vendor call-log payload we consume.
type CallLogRecord struct {
	CallID          string `json:"call_id"`
	DurationSeconds int    `json:"duration_seconds"`

	// TranscriptURI is empty when transcription was not enabled for the call.
	TranscriptURI string `json:"transcript_uri,omitempty"`
}

// Config holds the credentials and environment used to authenticate.
type Config struct {
	ClientID     string
	ClientSecret string

	// Environment is "sandbox" or "production".
	Environment string
}

var ErrMissingCredentials = errors.New("ringcentral: client id and secret are required")

// Connect authenticates against the vendor API and returns a client.
//
// The returned client is a stand-in: it performs no network calls and serves
// canned responses shaped like the real API. Swapping in the real SDK only
// touches this constructor.
func Connect(cfg Config, log *slog.Logger) (Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if log == nil {
		log = slog.Default()
	}

	// Vendor URL segment differs between environments.
	host := "platform.ringcentral.com"
	if cfg.Environment == "sandbox" {
		host = "platform.devtest.ringcentral.com"
	}

	log.Debug("ringcentral client initialized", "env", cfg.Environment, "host", host)
	return &mockClient{host: host, log: log}, nil
}

// mockClient serves API-shaped responses without network access.
type mockClient struct {
	host string
	log  *slog.Logger
}

func (c *mockClient) GetCallLogRecord(ctx context.Context, callID string) (CallLogRecord, error) {
	if err := ctx.Err(); err != nil {
		return CallLogRecord{}, err
	}
	if callID == "" {
		return CallLogRecord{}, errors.New("ringcentral: call id is required")
	}
	c.log.Debug("fetching call log record", "call_id", callID)
	return CallLogRecord{
		CallID:          callID,
		DurationSeconds: 120,
		TranscriptURI:   fmt.Sprintf("https://%s/restapi/v1.0/account/~/call-log/%s/transcript-content", c.host, callID),
	}, nil
}

func (c *mockClient) DownloadTranscript(ctx context.Context, uri string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if uri == "" {
		return "", errors.New("ringcentral: transcript uri is required")
	}
	c.log.Debug("downloading transcript", "uri", uri)
	return fmt.Sprintf(
		"**RingCentral Call Transcript**\nSource: %s\n\n"+
			"Agent: Thank you for calling. I see you're interested in the new Pro-Plan. Can I confirm your account details?\n"+
			"Customer: Yes, that's correct. My number is the one on file.\n"+
			"Agent: Excellent. I'll send over the quote immediately.\n",
		uri,
	), nil
}
