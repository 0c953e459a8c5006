package crm

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("crm: not found")

// Repository is the persistence contract for CRM lookups and communication
// writes. Phone arguments are pre-normalized digit strings.
//
// Matching rule for phone lookups: a stored number matches when its digit
// form contains the query digits or the query digits contain it. This keeps
// matching insensitive to country prefixes and stored formatting.
type Repository interface {
	// FindContactByPhone returns the first contact whose primary contact
	// number matches. Ordering among multiple matches is unspecified.
	FindContactByPhone(ctx context.Context, digits string) (Contact, bool, error)

	// CustomerForContact resolves the customer linked to a contact via the
	// generic link relation.
	CustomerForContact(ctx context.Context, contactID string) (Customer, bool, error)

	// FindCustomerByPhone returns the first customer whose own phone field
	// matches.
	FindCustomerByPhone(ctx context.Context, digits string) (Customer, bool, error)

	// CreateCommunication persists a communication record.
	CreateCommunication(ctx context.Context, c Communication) error

	// GetCommunication fetches one record by id.
	GetCommunication(ctx context.Context, id string) (Communication, error)

	// ListCommunications returns records newest-first.
	ListCommunications(ctx context.Context, limit, offset int) ([]Communication, error)
}

// digitsMatch implements the shared phone matching rule on already-normalized
// digit strings.
func digitsMatch(stored, query string) bool {
	if stored == "" || query == "" {
		return false
	}
	return strings.Contains(stored, query) || strings.Contains(query, stored)
}
