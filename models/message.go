package models

// Status is the triage state of an inbound message.
type Status string

const (
	StatusUnread   Status = "unread"
	StatusRead     Status = "read"
	StatusArchived Status = "archived"
)

// Text wraps the message body the same way the Graph webhook does, so
// snapshots serialize into the shape the dashboard client already consumes.
type Text struct {
	Body string `json:"body"`
}

// Message is a single inbound WhatsApp message plus the metadata the operator
// adds while triaging it. ID comes from the provider and is the lookup key
// for all mutations.
type Message struct {
	ID                    string `json:"id"`
	From                  string `json:"from"`
	Text                  Text   `json:"text"`
	Timestamp             int64  `json:"timestamp"`
	Status                Status `json:"status"`
	Notes                 string `json:"notes"`
	BusinessPhoneNumberID string `json:"business_phone_number_id,omitempty"`
}
