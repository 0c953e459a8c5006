package crm

import (
	"context"
	"testing"
)

func TestResolveByPhone_ViaLinkedContact(t *testing.T) {
	repo := NewMemoryRepo()
	repo.AddCustomer(Customer{ID: "cust-1", Name: "Acme Corp"})
	repo.AddContact(Contact{ID: "con-1", Name: "Jane", PrimaryContactNo: "555-123-4567"})
	repo.LinkContactToCustomer("con-1", "cust-1")

	r := NewResolver(repo)
	cu, ok, err := r.ResolveByPhone(context.Background(), "+1 (555) 123-4567")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
	if cu.ID != "cust-1" {
		t.Fatalf("expected cust-1, got %q", cu.ID)
	}
}

func TestResolveByPhone_FallsBackToCustomerPhone(t *testing.T) {
	repo := NewMemoryRepo()
	repo.AddCustomer(Customer{ID: "cust-2", Name: "Beta LLC", Phone: "5559876543"})

	r := NewResolver(repo)
	cu, ok, err := r.ResolveByPhone(context.Background(), "555 987 6543")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ok || cu.ID != "cust-2" {
		t.Fatalf("expected cust-2 fallback match, got %+v ok=%v", cu, ok)
	}
}

func TestResolveByPhone_UnlinkedContactFallsThrough(t *testing.T) {
	repo := NewMemoryRepo()
	repo.AddContact(Contact{ID: "con-9", Name: "Orphan", PrimaryContactNo: "5550001111"})
	repo.AddCustomer(Customer{ID: "cust-3", Name: "Gamma", Phone: "5550001111"})

	r := NewResolver(repo)
	cu, ok, err := r.ResolveByPhone(context.Background(), "5550001111")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ok || cu.ID != "cust-3" {
		t.Fatalf("expected direct customer match, got %+v ok=%v", cu, ok)
	}
}

func TestResolveByPhone_EmptyAfterNormalization(t *testing.T) {
	repo := NewMemoryRepo()
	repo.AddCustomer(Customer{ID: "cust-1", Name: "Acme", Phone: "5551234567"})

	r := NewResolver(repo)
	for _, in := range []string{"", "anonymous", "+-() "} {
		_, ok, err := r.ResolveByPhone(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if ok {
			t.Fatalf("expected no match for %q", in)
		}
	}
}

func TestResolveByPhone_NoMatch(t *testing.T) {
	repo := NewMemoryRepo()
	repo.AddCustomer(Customer{ID: "cust-1", Name: "Acme", Phone: "5551234567"})

	r := NewResolver(repo)
	_, ok, err := r.ResolveByPhone(context.Background(), "+44 20 7946 0000")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok {
		t.Fatalf("expected no match")
	}
}

func TestDigitsMatch_TwoWayContainment(t *testing.T) {
	if !digitsMatch("5551234567", "15551234567") {
		t.Fatalf("stored national form must match query with country prefix")
	}
	if !digitsMatch("15551234567", "5551234567") {
		t.Fatalf("stored international form must match national query")
	}
	if digitsMatch("", "555") || digitsMatch("555", "") {
		t.Fatalf("empty side must never match")
	}
}
