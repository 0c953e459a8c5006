package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+1 (555) 123-4567", "15551234567"},
		{"5551234567", "5551234567"},
		{"ext. 101", "101"},
		{"", ""},
		{"anonymous", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOrgNumberSet_Contains(t *testing.T) {
	set := NewOrgNumberSet([]string{"+1 555-000-1111", "101", ""})
	if set.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", set.Len())
	}
	if !set.Contains("15550001111") {
		t.Fatalf("expected formatted entry to match digits")
	}
	if !set.Contains("+1 (555) 000-1111") {
		t.Fatalf("expected matching to ignore formatting")
	}
	if set.Contains("") {
		t.Fatalf("empty number must not match")
	}
	if set.Contains("999") {
		t.Fatalf("unexpected match")
	}
}

func TestClassify(t *testing.T) {
	set := NewOrgNumberSet([]string{"+15550001111"})

	dir, customer := set.Classify("+15559998888", "+15550001111")
	if dir != DirectionIncoming {
		t.Fatalf("expected incoming, got %q", dir)
	}
	if customer != "+15559998888" {
		t.Fatalf("expected caller as customer phone, got %q", customer)
	}

	dir, customer = set.Classify("+15550001111", "+15559998888")
	if dir != DirectionOutgoing {
		t.Fatalf("expected outgoing, got %q", dir)
	}
	if customer != "+15559998888" {
		t.Fatalf("expected dialed number as customer phone, got %q", customer)
	}
}
