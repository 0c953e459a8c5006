package phone

import "strings"

// Normalize strips all non-digit runes from a phone number or extension.
// Matching against stored numbers is done on the digit string only, so
// "+1 (555) 123-4567" and "5551234567" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Direction classifies a call relative to the organization.
type Direction string

const (
	DirectionIncoming Direction = "Incoming Call"
	DirectionOutgoing Direction = "Outgoing Call"
)

// OrgNumberSet is the set of phone numbers and extensions that belong to the
// organization, held in normalized form.
type OrgNumberSet struct {
	numbers map[string]struct{}
}

// NewOrgNumberSet builds the set from configured numbers. Entries that
// normalize to the empty string are dropped.
func NewOrgNumberSet(numbers []string) OrgNumberSet {
	set := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		if d := Normalize(n); d != "" {
			set[d] = struct{}{}
		}
	}
	return OrgNumberSet{numbers: set}
}

// Contains reports whether the number belongs to the organization.
func (s OrgNumberSet) Contains(number string) bool {
	d := Normalize(number)
	if d == "" {
		return false
	}
	_, ok := s.numbers[d]
	return ok
}

func (s OrgNumberSet) Len() int { return len(s.numbers) }

// Classify determines call direction from the dialed number alone: a call is
// incoming iff the "to" side is an organization number. The non-organization
// side is treated as the customer phone.
func (s OrgNumberSet) Classify(from, to string) (Direction, string) {
	if s.Contains(to) {
		return DirectionIncoming, from
	}
	return DirectionOutgoing, to
}
