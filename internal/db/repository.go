// Package db provides CRUD repository operations for ContactDeck data models.
package db

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"

	"github.com/contactdeck/backend/internal/errors"
	"github.com/contactdeck/backend/internal/models"
)

// SQLite extended result code for UNIQUE constraint violations.
const sqliteConstraintUnique = 2067

// Queryer is the subset of database/sql used by repository operations.
// Both *sql.DB and *sql.Tx satisfy it.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Repository provides CRUD operations for contacts and their versions.
// A Repository is bound either to the database itself or, inside WithTx,
// to an open transaction so that multi-statement mutations stay atomic.
type Repository struct {
	q  Queryer
	db *sql.DB
}

// NewRepository creates a new Repository instance.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{q: db, db: db}
}

// WithTx runs fn with a Repository bound to a single transaction. If fn
// returns an error the transaction is rolled back and the error is returned
// unchanged; otherwise the transaction is committed.
func (r *Repository) WithTx(fn func(txr *Repository) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(&Repository{q: tx, db: r.db}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to commit transaction", err)
	}
	return nil
}

// =====================================================
// Contact Operations
// =====================================================

// CreateContact inserts a new contact and assigns its identifier and
// timestamps. A colliding email surfaces as DUPLICATE_EMAIL.
func (r *Repository) CreateContact(c *models.Contact) error {
	now := time.Now().Unix()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
	INSERT INTO contacts (first_name, last_name, email, phone, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.q.Exec(query, c.FirstName, c.LastName, c.Email, c.Phone,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.DuplicateEmail(c.Email)
		}
		return errors.Wrap(errors.ErrDatabase, "failed to insert contact", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to read contact id", err)
	}
	c.ID = id
	return nil
}

// GetContact retrieves a contact by ID.
func (r *Repository) GetContact(id int64) (*models.Contact, error) {
	query := `
	SELECT id, first_name, last_name, email, phone, created_at, updated_at
	FROM contacts WHERE id = ?
	`
	var c models.Contact
	err := r.q.QueryRow(query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(errors.ErrContactNotFound,
				fmt.Sprintf("contact not found: %d", id))
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to query contact", err)
	}
	return &c, nil
}

// ListContacts returns contacts ordered by most recently updated first,
// with ties broken by identifier so pagination stays stable.
func (r *Repository) ListContacts(limit, offset int) ([]*models.Contact, error) {
	query := `
	SELECT id, first_name, last_name, email, phone, created_at, updated_at
	FROM contacts
	ORDER BY updated_at DESC, id DESC
	LIMIT ? OFFSET ?
	`
	rows, err := r.q.Query(query, limit, offset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to list contacts", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		var c models.Contact
		err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to scan contact", err)
		}
		contacts = append(contacts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to iterate contacts", err)
	}
	return contacts, nil
}

// CountContacts returns the total number of contacts.
func (r *Repository) CountContacts() (int, error) {
	var count int
	if err := r.q.QueryRow(`SELECT COUNT(*) FROM contacts`).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "failed to count contacts", err)
	}
	return count, nil
}

// EmailInUse reports whether the given email belongs to a contact other than
// excludeID. Pass excludeID 0 when creating.
func (r *Repository) EmailInUse(email string, excludeID int64) (bool, error) {
	var id int64
	err := r.q.QueryRow(`SELECT id FROM contacts WHERE email = ? AND id != ?`,
		email, excludeID).Scan(&id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "failed to check email", err)
	}
	return true, nil
}

// UpdateContact persists the contact's current fields and refreshes its
// updated_at timestamp.
func (r *Repository) UpdateContact(c *models.Contact) error {
	c.Touch()
	query := `
	UPDATE contacts
	SET first_name = ?, last_name = ?, email = ?, phone = ?, updated_at = ?
	WHERE id = ?
	`
	result, err := r.q.Exec(query, c.FirstName, c.LastName, c.Email, c.Phone,
		c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.DuplicateEmail(c.Email)
		}
		return errors.Wrap(errors.ErrDatabase, "failed to update contact", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.New(errors.ErrContactNotFound,
			fmt.Sprintf("contact not found: %d", c.ID))
	}
	return nil
}

// DeleteContact removes a contact. The version history cascades with it.
func (r *Repository) DeleteContact(id int64) error {
	result, err := r.q.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to delete contact", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.New(errors.ErrContactNotFound,
			fmt.Sprintf("contact not found: %d", id))
	}
	return nil
}

// =====================================================
// Version Operations
// =====================================================

// AppendVersion inserts an immutable snapshot row. Content is validated by
// the time it reaches here; only storage failures are possible.
func (r *Repository) AppendVersion(v *models.Version) error {
	v.EditedAt = time.Now().Unix()

	query := `
	INSERT INTO contact_versions (contact_id, first_name, last_name, email, phone, edited_at, edited_reason)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.q.Exec(query, v.ContactID, v.FirstName, v.LastName, v.Email,
		v.Phone, v.EditedAt, v.EditedReason)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to append version", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to read version id", err)
	}
	v.ID = id
	return nil
}

// ListVersions returns all versions for a contact, newest first. Snapshots
// written in the same second keep insertion order via the id tiebreak.
func (r *Repository) ListVersions(contactID int64) ([]*models.Version, error) {
	query := `
	SELECT id, contact_id, first_name, last_name, email, phone, edited_at, edited_reason
	FROM contact_versions
	WHERE contact_id = ?
	ORDER BY edited_at DESC, id DESC
	`
	rows, err := r.q.Query(query, contactID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to list versions", err)
	}
	defer rows.Close()

	var versions []*models.Version
	for rows.Next() {
		var v models.Version
		err := rows.Scan(&v.ID, &v.ContactID, &v.FirstName, &v.LastName,
			&v.Email, &v.Phone, &v.EditedAt, &v.EditedReason)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to scan version", err)
		}
		versions = append(versions, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to iterate versions", err)
	}
	return versions, nil
}

// CountVersions returns the number of versions recorded for a contact.
func (r *Repository) CountVersions(contactID int64) (int, error) {
	var count int
	err := r.q.QueryRow(`SELECT COUNT(*) FROM contact_versions WHERE contact_id = ?`,
		contactID).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "failed to count versions", err)
	}
	return count, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if stderrors.As(err, &se) {
		return se.Code() == sqliteConstraintUnique
	}
	return false
}
