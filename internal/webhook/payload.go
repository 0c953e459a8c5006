package webhook

// Payload is the vendor call-completion webhook body.
//
// Shape (vendor-defined, do not rename fields):
//
//	{uuid, event, body: {from: {phoneNumber|extensionNumber}, to: {...}, duration}}
type Payload struct {
	// UUID is the vendor's event identifier; doubles as the external call id.
	UUID  string `json:"uuid"`
	Event string `json:"event"`
	Body  Body   `json:"body"`
}

type Body struct {
	From Party `json:"from"`
	To   Party `json:"to"`

	// Duration is the call duration in seconds.
	Duration int `json:"duration"`
}

// Party is one side of the call. External parties carry a phone number,
// internal extensions may carry only an extension number.
type Party struct {
	PhoneNumber     string `json:"phoneNumber"`
	ExtensionNumber string `json:"extensionNumber"`
}

// Number returns the phone number, falling back to the extension number.
func (p Party) Number() string {
	if p.PhoneNumber != "" {
		return p.PhoneNumber
	}
	return p.ExtensionNumber
}
