package orchestrator

import (
	"fmt"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// BeginCreate opens the creation form. The create and edit forms are
// mutually exclusive, so an open edit form is discarded. Calling while a
// creation is already being edited is a no-op.
func (o *Orchestrator) BeginCreate() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	create := o.slots[SlotCreate]
	switch create.state {
	case StateSettling:
		return fmt.Errorf("create slot: %w", ErrSettling)
	case StateEditing:
		return nil
	}

	if edit := o.slots[SlotEdit]; edit.state == StateEditing {
		*edit = slot{}
	}

	create.state = StateEditing
	return nil
}

// BeginEdit opens the edit form for an existing record, snapshotting its
// current values as the form seed. Discards an open creation form.
func (o *Orchestrator) BeginEdit(id domain.ID) error {
	rec, ok := o.store.Get(id)
	if !ok {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	edit := o.slots[SlotEdit]
	if edit.state == StateSettling {
		return fmt.Errorf("edit slot: %w", ErrSettling)
	}

	if create := o.slots[SlotCreate]; create.state == StateEditing {
		*create = slot{}
	}

	edit.state = StateEditing
	edit.targetID = id
	edit.seed = rec
	return nil
}

// EditSeed returns the snapshot the open edit form was seeded with.
func (o *Orchestrator) EditSeed() (domain.Record, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	edit := o.slots[SlotEdit]
	if edit.state != StateEditing {
		return domain.Record{}, false
	}
	return edit.seed, true
}
