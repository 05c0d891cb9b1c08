// Package models provides data model definitions for the ContactDeck backend.
package models

// Change event types delivered to real-time subscribers.
const (
	EventContactCreated = "contact.created"
	EventContactUpdated = "contact.updated"
	EventContactDeleted = "contact.deleted"
)

// ChangeEvent is a transient notification about a contact mutation. It is
// never persisted; it exists only in flight between the mutation pipeline and
// connected subscribers. Contact is set for created/updated events, ContactID
// alone for deleted events.
type ChangeEvent struct {
	Type      string
	Contact   *Contact
	ContactID int64
}

// Payload returns the wire payload for the event: the full contact
// representation for created/updated, or {"id": n} for deleted.
func (e *ChangeEvent) Payload() interface{} {
	if e.Contact != nil {
		return e.Contact
	}
	return map[string]int64{"id": e.ContactID}
}

// CreatedEvent builds a contact.created event.
func CreatedEvent(c *Contact) *ChangeEvent {
	return &ChangeEvent{Type: EventContactCreated, Contact: c, ContactID: c.ID}
}

// UpdatedEvent builds a contact.updated event.
func UpdatedEvent(c *Contact) *ChangeEvent {
	return &ChangeEvent{Type: EventContactUpdated, Contact: c, ContactID: c.ID}
}

// DeletedEvent builds a contact.deleted event carrying only the identifier.
func DeletedEvent(id int64) *ChangeEvent {
	return &ChangeEvent{Type: EventContactDeleted, ContactID: id}
}
