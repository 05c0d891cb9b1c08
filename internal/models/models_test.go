// Package models provides unit tests for model validation and snapshots.
package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateFullRequiresAllFields(t *testing.T) {
	fields := ContactFields{
		FirstName: strPtr("Ada"),
		Email:     strPtr("ada@example.com"),
	}

	errs := fields.Validate(false)
	if errs == nil {
		t.Fatal("expected validation errors for missing fields")
	}
	if _, ok := errs["last_name"]; !ok {
		t.Error("expected last_name to be reported as required")
	}
	if _, ok := errs["phone"]; !ok {
		t.Error("expected phone to be reported as required")
	}
	if _, ok := errs["first_name"]; ok {
		t.Error("first_name was supplied, should not be reported")
	}
}

func TestValidatePartialIgnoresMissingFields(t *testing.T) {
	fields := ContactFields{Phone: strPtr("+1-555-1000")}

	if errs := fields.Validate(true); errs != nil {
		t.Fatalf("expected no errors for partial update, got %v", errs)
	}
}

func TestValidateRejectsBlankSuppliedField(t *testing.T) {
	fields := ContactFields{
		FirstName: strPtr("   "),
	}

	errs := fields.Validate(true)
	if errs == nil {
		t.Fatal("expected error for blank first_name")
	}
	if _, ok := errs["first_name"]; !ok {
		t.Errorf("expected first_name error, got %v", errs)
	}
}

func TestValidateRejectsMalformedEmail(t *testing.T) {
	for _, email := range []string{"not-an-email", "a@", "@b.com"} {
		fields := ContactFields{Email: strPtr(email)}
		errs := fields.Validate(true)
		if errs == nil {
			t.Errorf("expected error for email %q", email)
			continue
		}
		if _, ok := errs["email"]; !ok {
			t.Errorf("expected email error for %q, got %v", email, errs)
		}
	}
}

func TestValidateAcceptsCompleteFields(t *testing.T) {
	fields := ContactFields{
		FirstName: strPtr("Ada"),
		LastName:  strPtr("Lovelace"),
		Email:     strPtr("ada@example.com"),
		Phone:     strPtr("+1-555-1000"),
	}

	if errs := fields.Validate(false); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestApplyToMergesOnlySuppliedFields(t *testing.T) {
	contact := &Contact{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+1-555-1000",
	}

	fields := ContactFields{Phone: strPtr("+1-555-2000")}
	fields.ApplyTo(contact)

	if contact.Phone != "+1-555-2000" {
		t.Errorf("expected phone to be updated, got %s", contact.Phone)
	}
	if contact.FirstName != "Ada" || contact.Email != "ada@example.com" {
		t.Error("fields that were not supplied must not change")
	}
}

func TestSnapshotCopiesContactFields(t *testing.T) {
	contact := &Contact{
		ID:        7,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+1-555-1000",
	}

	version := Snapshot(contact, ReasonCreated)

	if version.ContactID != 7 {
		t.Errorf("expected contact id 7, got %d", version.ContactID)
	}
	if version.FirstName != "Ada" || version.Email != "ada@example.com" {
		t.Error("snapshot must copy the contact's field values")
	}
	if version.EditedReason != ReasonCreated {
		t.Errorf("expected reason %q, got %q", ReasonCreated, version.EditedReason)
	}
}

func TestChangeEventPayload(t *testing.T) {
	contact := &Contact{ID: 3, FirstName: "Ada"}

	created := CreatedEvent(contact)
	if created.Type != EventContactCreated {
		t.Errorf("unexpected type %s", created.Type)
	}
	if created.Payload() != contact {
		t.Error("created event payload must be the contact itself")
	}

	deleted := DeletedEvent(3)
	payload, ok := deleted.Payload().(map[string]int64)
	if !ok {
		t.Fatalf("expected id map payload, got %T", deleted.Payload())
	}
	if payload["id"] != 3 {
		t.Errorf("expected id 3, got %d", payload["id"])
	}
}

func TestContactTouchRefreshesUpdatedAt(t *testing.T) {
	contact := &Contact{UpdatedAt: 1}
	contact.Touch()

	if contact.UpdatedAt == 1 {
		t.Error("expected UpdatedAt to be refreshed")
	}
	if time.Since(contact.UpdatedAtTime()) > time.Minute {
		t.Error("UpdatedAt should be close to now")
	}
}
