package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// RequestDelete opens the confirmation dialog for a record. A second
// request while confirming retargets the dialog.
func (o *Orchestrator) RequestDelete(id domain.ID) error {
	if _, ok := o.store.Get(id); !ok {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	del := o.slots[SlotDelete]
	if del.state == StateSettling {
		return fmt.Errorf("delete slot: %w", ErrSettling)
	}

	del.state = StateConfirming
	del.targetID = id
	return nil
}

// DeleteTarget returns the record id awaiting deletion confirmation.
func (o *Orchestrator) DeleteTarget() (domain.ID, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	del := o.slots[SlotDelete]
	if del.state != StateConfirming {
		return 0, false
	}
	return del.targetID, true
}

// ConfirmDelete commits the confirmed deletion. Unlike create and edit,
// deletion is not speculative: the record stays in the store through
// Settling and leaves only once the server confirms, so a refused delete
// never perturbs what the user sees.
func (o *Orchestrator) ConfirmDelete(ctx context.Context) (*Intent, error) {
	o.mu.Lock()
	del := o.slots[SlotDelete]
	if del.state != StateConfirming {
		o.mu.Unlock()
		return nil, fmt.Errorf("delete slot is %s: %w", del.state, ErrInvalidState)
	}

	id := del.targetID
	if _, ok := o.store.Get(id); !ok {
		// Gone since confirmation opened; nothing left to delete.
		*del = slot{}
		o.mu.Unlock()
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	in := o.newIntent(KindDelete)
	del.state = StateSettling
	del.intent = in
	o.mu.Unlock()

	go o.settleDelete(ctx, in, id)
	return in, nil
}

func (o *Orchestrator) settleDelete(ctx context.Context, in *Intent, id domain.ID) {
	err := o.gw.Delete(ctx, id)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.rollbackSlot(SlotDelete, in)
		o.log.Error("delete settlement failed",
			slog.String("record_id", id.String()),
			slog.String("error", err.Error()),
		)
		in.complete(err)
		return
	}

	if o.claimKey(id.String(), in) {
		o.store.Remove(id)
	}
	in.complete(nil)
}
