package crm

import "time"

// Customer is the CRM entity a call gets attached to.
type Customer struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Phone is the customer's own number; contacts carry their numbers
	// separately. Stored formatting is not trusted, matching is digit-based.
	Phone string `json:"phone,omitempty" db:"phone"`
}

// Contact is a person linked to zero or more CRM entities via ContactLink.
type Contact struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	PrimaryContactNo string `json:"primary_contact_no,omitempty" db:"primary_contact_no"`
}

// ContactLink is the generic link relation between a contact and another
// entity. Only "customer" links are consulted here, but the shape stays
// generic so suppliers or leads can reuse it.
type ContactLink struct {
	ContactID string `json:"contact_id" db:"contact_id"`
	LinkType  string `json:"link_type" db:"link_type"`
	LinkID    string `json:"link_id" db:"link_id"`
}

const LinkTypeCustomer = "customer"

// Communication is the persisted record of a logged interaction.
//
// Invariants:
// - A communication row is created only if a customer was resolved.
// - Type and Status are fixed for phone logging ("Phone"/"Closed").
type Communication struct {
	ID      string `json:"id" db:"id"`
	Subject string `json:"subject" db:"subject"`

	Type   CommunicationType   `json:"type" db:"type"`
	Status CommunicationStatus `json:"status" db:"status"`

	// Content holds the call transcript.
	Content string `json:"content" db:"content"`

	CustomerID string `json:"customer_id" db:"customer_id"`

	// CallID is the external (vendor) event identifier, kept for traceability.
	CallID string `json:"call_id" db:"call_id"`

	DurationSeconds int `json:"duration_seconds" db:"duration_seconds"`

	CommunicationDate time.Time `json:"communication_date" db:"communication_date"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

type CommunicationType string

type CommunicationStatus string

const (
	CommunicationTypePhone CommunicationType = "Phone"

	CommunicationStatusOpen   CommunicationStatus = "Open"
	CommunicationStatusClosed CommunicationStatus = "Closed"
)
