package transcript

import (
	"context"
	"strings"
	"testing"
)

func TestSimulated_EmbedsCallIDAndMinutes(t *testing.T) {
	p := NewSimulated()
	txt, err := p.Fetch(context.Background(), "evt-123", 120)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(txt, "evt-123") {
		t.Fatalf("expected call id in transcript: %s", txt)
	}
	if !strings.Contains(txt, "2.0 minutes") {
		t.Fatalf("expected \"2.0 minutes\" in transcript: %s", txt)
	}
}

func TestSimulated_FractionalMinutes(t *testing.T) {
	p := NewSimulated()
	txt, err := p.Fetch(context.Background(), "evt-9", 90)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(txt, "1.5 minutes") {
		t.Fatalf("expected \"1.5 minutes\" in transcript: %s", txt)
	}
}
