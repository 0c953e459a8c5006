package crm

import (
	"context"

	"callbridge/internal/phone"
)

// Resolver finds the customer behind a phone number.
//
// Lookup order:
//  1. contact by primary contact number, then the customer linked to it
//  2. customer by its own phone field
//
// First match wins; no ranking among multiple matches is attempted.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveByPhone returns (customer, true) when a match exists. A number that
// normalizes to the empty string never matches.
func (r *Resolver) ResolveByPhone(ctx context.Context, rawPhone string) (Customer, bool, error) {
	digits := phone.Normalize(rawPhone)
	if digits == "" {
		return Customer{}, false, nil
	}

	contact, ok, err := r.repo.FindContactByPhone(ctx, digits)
	if err != nil {
		return Customer{}, false, err
	}
	if ok {
		cu, ok, err := r.repo.CustomerForContact(ctx, contact.ID)
		if err != nil {
			return Customer{}, false, err
		}
		if ok {
			return cu, true, nil
		}
		// Contact exists but is not linked to a customer; fall through to the
		// direct customer lookup.
	}

	cu, ok, err := r.repo.FindCustomerByPhone(ctx, digits)
	if err != nil {
		return Customer{}, false, err
	}
	return cu, ok, nil
}
