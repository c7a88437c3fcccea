package record

import (
	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// CreateInput holds the caller-supplied fields for creating a record.
// Nil name/phone are coerced to empty strings; nil age stays NULL.
// Field contents are deliberately not validated beyond that — the entity
// is free text plus an unbounded age by design.
type CreateInput struct {
	Name  *string
	Phone *string
	Age   *float64
}

// Draft converts the input into a domain.RecordDraft, applying the
// null-coercion rules.
func (i CreateInput) Draft() domain.RecordDraft {
	draft := domain.RecordDraft{Age: i.Age}
	if i.Name != nil {
		draft.Name = *i.Name
	}
	if i.Phone != nil {
		draft.Phone = *i.Phone
	}
	return draft
}

// UpdateInput holds the parameters for a partial record update.
type UpdateInput struct {
	ID    domain.ID
	Patch domain.RecordPatch
}

// Validate checks that a target id was supplied.
func (i UpdateInput) Validate() error {
	if i.ID == 0 {
		return domain.NewValidationError("id", "required")
	}
	return nil
}

// DeleteInput holds the parameters for deleting a record.
type DeleteInput struct {
	ID domain.ID
}

// Validate checks that a target id was supplied.
func (i DeleteInput) Validate() error {
	if i.ID == 0 {
		return domain.NewValidationError("id", "required")
	}
	return nil
}
