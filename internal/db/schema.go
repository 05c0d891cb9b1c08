// Package db provides database schema bootstrap.
package db

import (
	"database/sql"
	"fmt"
)

// Schema is the full DDL for the contact store. Contact versions reference
// their contact with ON DELETE CASCADE so deleting a contact removes its
// entire history in the same statement.
const Schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL CHECK(length(first_name) > 0),
	last_name TEXT NOT NULL CHECK(length(last_name) > 0),
	email TEXT NOT NULL UNIQUE CHECK(length(email) > 0),
	phone TEXT NOT NULL CHECK(length(phone) > 0),
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_updated_at ON contacts(updated_at DESC);

CREATE TABLE IF NOT EXISTS contact_versions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id INTEGER NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	edited_at INTEGER NOT NULL,
	edited_reason TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_contact_versions_contact_edited
	ON contact_versions(contact_id, edited_at DESC);
`

// EnsureSchema creates all tables and indexes if they do not exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
