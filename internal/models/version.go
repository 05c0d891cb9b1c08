// Package models provides data model definitions for the ContactDeck backend.
package models

import "time"

// Version reasons recorded with every snapshot.
const (
	ReasonCreated        = "created"
	ReasonUpdated        = "updated"
	ReasonExternalUpdate = "external_update"
)

// Version is an immutable snapshot of a contact's fields at the moment of a
// mutation. Versions are only ever appended; they are removed en masse when
// the owning contact is deleted.
type Version struct {
	ID           int64  `db:"id" json:"id"`
	ContactID    int64  `db:"contact_id" json:"contact"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"phone" json:"phone"`
	EditedAt     int64  `db:"edited_at" json:"edited_at"`
	EditedReason string `db:"edited_reason" json:"edited_reason"`
}

// TableName returns the table name for Version.
func (Version) TableName() string {
	return "contact_versions"
}

// EditedAtTime returns the EditedAt as time.Time.
func (v *Version) EditedAtTime() time.Time {
	return time.Unix(v.EditedAt, 0)
}

// Snapshot captures the given contact's current fields into a Version with
// the supplied reason. The ID and EditedAt are assigned on insert.
func Snapshot(c *Contact, reason string) *Version {
	return &Version{
		ContactID:    c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		EditedReason: reason,
	}
}
