// Package models provides data model definitions for the ContactDeck backend.
package models

import (
	"net/mail"
	"strings"
	"time"
)

// Contact represents the current state of a stored contact.
type Contact struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
	UpdatedAt int64  `db:"updated_at" json:"updated_at"`
}

// TableName returns the table name for Contact.
func (Contact) TableName() string {
	return "contacts"
}

// CreatedAtTime returns the CreatedAt as time.Time.
func (c *Contact) CreatedAtTime() time.Time {
	return time.Unix(c.CreatedAt, 0)
}

// UpdatedAtTime returns the UpdatedAt as time.Time.
func (c *Contact) UpdatedAtTime() time.Time {
	return time.Unix(c.UpdatedAt, 0)
}

// Touch updates the UpdatedAt timestamp.
func (c *Contact) Touch() {
	c.UpdatedAt = time.Now().Unix()
}

// ContactFields carries the mutable attributes of a contact. Pointer fields
// distinguish "not supplied" from "supplied but empty" for partial updates.
type ContactFields struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// FieldErrors maps field names to a human readable problem description.
type FieldErrors map[string]string

// Validate checks the supplied fields. When partial is false every mandatory
// field must be present and non-empty; when partial is true only supplied
// fields are checked. Returns nil when everything supplied is acceptable.
func (f ContactFields) Validate(partial bool) FieldErrors {
	errs := FieldErrors{}

	check := func(name string, value *string) {
		if value == nil {
			if !partial {
				errs[name] = "This field is required."
			}
			return
		}
		if strings.TrimSpace(*value) == "" {
			errs[name] = "This field may not be blank."
		}
	}

	check("first_name", f.FirstName)
	check("last_name", f.LastName)
	check("email", f.Email)
	check("phone", f.Phone)

	if f.Email != nil && errs["email"] == "" {
		if _, err := mail.ParseAddress(*f.Email); err != nil {
			errs["email"] = "Enter a valid email address."
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ApplyTo merges the supplied fields into an existing contact.
func (f ContactFields) ApplyTo(c *Contact) {
	if f.FirstName != nil {
		c.FirstName = *f.FirstName
	}
	if f.LastName != nil {
		c.LastName = *f.LastName
	}
	if f.Email != nil {
		c.Email = *f.Email
	}
	if f.Phone != nil {
		c.Phone = *f.Phone
	}
}
