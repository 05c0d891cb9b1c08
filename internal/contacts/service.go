// Package contacts implements the mutation pipeline: every create, update,
// delete, or external update persists the contact change and its version
// snapshot in one transaction, then notifies real-time subscribers.
package contacts

import (
	"github.com/rs/zerolog"

	"github.com/contactdeck/backend/internal/broadcast"
	"github.com/contactdeck/backend/internal/db"
	"github.com/contactdeck/backend/internal/errors"
	"github.com/contactdeck/backend/internal/logging"
	"github.com/contactdeck/backend/internal/metrics"
	"github.com/contactdeck/backend/internal/models"
)

// Service coordinates contact mutations. All writers go through it; nothing
// else writes to the contact or version tables. Events are published only
// after the transaction committed, so subscribers never observe state that
// failed to persist.
type Service struct {
	repo   *db.Repository
	broker *broadcast.Broker
	log    zerolog.Logger
}

// NewService creates a new Service.
func NewService(repo *db.Repository, broker *broadcast.Broker) *Service {
	return &Service{
		repo:   repo,
		broker: broker,
		log:    logging.WithComponent("contacts"),
	}
}

// Create validates the fields, inserts the contact together with its
// "created" version snapshot, and broadcasts contact.created.
func (s *Service) Create(fields models.ContactFields) (*models.Contact, error) {
	if errs := fields.Validate(false); errs != nil {
		return nil, errors.Validation(errs)
	}

	contact := &models.Contact{}
	fields.ApplyTo(contact)

	err := s.repo.WithTx(func(txr *db.Repository) error {
		inUse, err := txr.EmailInUse(contact.Email, 0)
		if err != nil {
			return err
		}
		if inUse {
			return errors.DuplicateEmail(contact.Email)
		}
		if err := txr.CreateContact(contact); err != nil {
			return err
		}
		return txr.AppendVersion(models.Snapshot(contact, models.ReasonCreated))
	})
	if err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("create").Inc()
	s.log.Info().Int64("contact_id", contact.ID).Msg("contact created")
	s.publish(models.CreatedEvent(contact))
	return contact, nil
}

// Update applies a full or partial update, appends an "updated" version
// snapshot in the same transaction, and broadcasts contact.updated.
// A partial update that changes no field values still appends a version.
func (s *Service) Update(id int64, fields models.ContactFields, partial bool) (*models.Contact, error) {
	contact, err := s.apply(id, fields, partial, models.ReasonUpdated)
	if err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("update").Inc()
	s.log.Info().Int64("contact_id", contact.ID).Bool("partial", partial).Msg("contact updated")
	s.publish(models.UpdatedEvent(contact))
	return contact, nil
}

// ExternalUpdate mutates a contact on behalf of a trusted caller outside the
// primary API. It runs the exact same persistence path as Update; only the
// recorded reason differs. The broadcast event is contact.updated — the
// version history alone records the external provenance.
func (s *Service) ExternalUpdate(id int64, fields models.ContactFields) (*models.Contact, error) {
	contact, err := s.apply(id, fields, true, models.ReasonExternalUpdate)
	if err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("external_update").Inc()
	s.log.Info().Int64("contact_id", contact.ID).Msg("contact updated externally")
	s.publish(models.UpdatedEvent(contact))
	return contact, nil
}

// apply is the shared update path: load, merge, uniqueness check, write, and
// version append, all inside one transaction.
func (s *Service) apply(id int64, fields models.ContactFields, partial bool, reason string) (*models.Contact, error) {
	if errs := fields.Validate(partial); errs != nil {
		return nil, errors.Validation(errs)
	}

	var contact *models.Contact
	err := s.repo.WithTx(func(txr *db.Repository) error {
		existing, err := txr.GetContact(id)
		if err != nil {
			return err
		}
		fields.ApplyTo(existing)

		inUse, err := txr.EmailInUse(existing.Email, existing.ID)
		if err != nil {
			return err
		}
		if inUse {
			return errors.DuplicateEmail(existing.Email)
		}

		if err := txr.UpdateContact(existing); err != nil {
			return err
		}
		if err := txr.AppendVersion(models.Snapshot(existing, reason)); err != nil {
			return err
		}
		contact = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes the contact and, via cascade, its whole version history,
// then broadcasts contact.deleted with just the identifier.
func (s *Service) Delete(id int64) error {
	err := s.repo.WithTx(func(txr *db.Repository) error {
		return txr.DeleteContact(id)
	})
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Int64("contact_id", id).Msg("contact deleted")
	s.publish(models.DeletedEvent(id))
	return nil
}

// Get returns a single contact.
func (s *Service) Get(id int64) (*models.Contact, error) {
	return s.repo.GetContact(id)
}

// List returns a page of contacts ordered most-recently-updated first,
// together with the total count for pagination.
func (s *Service) List(limit, offset int) ([]*models.Contact, int, error) {
	contacts, err := s.repo.ListContacts(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.CountContacts()
	if err != nil {
		return nil, 0, err
	}
	return contacts, count, nil
}

// History returns the contact's versions newest first. Unknown identifiers
// surface CONTACT_NOT_FOUND rather than an empty history.
func (s *Service) History(id int64) ([]*models.Version, error) {
	if _, err := s.repo.GetContact(id); err != nil {
		return nil, err
	}
	return s.repo.ListVersions(id)
}

func (s *Service) publish(event *models.ChangeEvent) {
	s.broker.Publish(event)
	metrics.EventsPublishedTotal.Inc()
}
