package crm

import (
	"context"
	"sort"
	"sync"

	"callbridge/internal/phone"
)

// MemoryRepo is a simple in-memory repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu             sync.Mutex
	customers      []Customer
	contacts       []Contact
	links          []ContactLink
	communications []Communication
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) AddCustomer(c Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = append(r.customers, c)
}

func (r *MemoryRepo) AddContact(c Contact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts = append(r.contacts, c)
}

func (r *MemoryRepo) LinkContactToCustomer(contactID, customerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links = append(r.links, ContactLink{ContactID: contactID, LinkType: LinkTypeCustomer, LinkID: customerID})
}

func (r *MemoryRepo) FindContactByPhone(_ context.Context, digits string) (Contact, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.contacts {
		if digitsMatch(phone.Normalize(c.PrimaryContactNo), digits) {
			return c, true, nil
		}
	}
	return Contact{}, false, nil
}

func (r *MemoryRepo) CustomerForContact(_ context.Context, contactID string) (Customer, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.links {
		if l.ContactID == contactID && l.LinkType == LinkTypeCustomer {
			for _, cu := range r.customers {
				if cu.ID == l.LinkID {
					return cu, true, nil
				}
			}
		}
	}
	return Customer{}, false, nil
}

func (r *MemoryRepo) FindCustomerByPhone(_ context.Context, digits string) (Customer, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cu := range r.customers {
		if digitsMatch(phone.Normalize(cu.Phone), digits) {
			return cu, true, nil
		}
	}
	return Customer{}, false, nil
}

func (r *MemoryRepo) CreateCommunication(_ context.Context, c Communication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.communications = append(r.communications, c)
	return nil
}

func (r *MemoryRepo) GetCommunication(_ context.Context, id string) (Communication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.communications {
		if c.ID == id {
			return c, nil
		}
	}
	return Communication{}, ErrNotFound
}

func (r *MemoryRepo) ListCommunications(_ context.Context, limit, offset int) ([]Communication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Communication, len(r.communications))
	copy(out, r.communications)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CommunicationDate.After(out[j].CommunicationDate)
	})
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Communications returns a copy of all stored records, in insert order.
func (r *MemoryRepo) Communications() []Communication {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Communication, len(r.communications))
	copy(out, r.communications)
	return out
}
