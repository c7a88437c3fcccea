package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// SubmitCreate sends the creation form. A provisional record appears in
// the store immediately under a synthetic key; the server response swaps
// it for the persisted row, and a failure removes it.
func (o *Orchestrator) SubmitCreate(ctx context.Context, draft domain.RecordDraft) (*Intent, error) {
	o.mu.Lock()
	create := o.slots[SlotCreate]
	if create.state != StateEditing {
		o.mu.Unlock()
		return nil, fmt.Errorf("create slot is %s: %w", create.state, ErrInvalidState)
	}

	in := o.newIntent(KindCreate)
	create.state = StateSettling
	create.intent = in

	key := "pending-" + in.id.String()
	o.claimKey(key, in)

	name, phone := draft.Name, draft.Phone
	o.store.PutKeyed(key, domain.Record{
		Name:      &name,
		Phone:     &phone,
		Age:       draft.Age,
		CreatedAt: time.Now(),
	})
	o.mu.Unlock()

	go o.settleCreate(ctx, in, key, draft)
	return in, nil
}

func (o *Orchestrator) settleCreate(ctx context.Context, in *Intent, key string, draft domain.RecordDraft) {
	rec, err := o.gw.Create(ctx, draft)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		if o.ownsKey(key, in) {
			o.store.RemoveKey(key)
		}
		o.rollbackSlot(SlotCreate, in)
		o.log.Error("create settlement failed",
			slog.String("intent_id", in.id.String()),
			slog.String("error", err.Error()),
		)
		in.complete(err)
		return
	}

	if o.ownsKey(key, in) {
		o.store.RemoveKey(key)
	}
	if o.claimKey(rec.ID.String(), in) {
		o.store.Upsert(*rec)
	}
	in.complete(nil)
}

// SubmitEdit sends the edit form. The patch applies to the local record
// immediately; the server response replaces it with the persisted row,
// and a failure restores the pre-patch values.
func (o *Orchestrator) SubmitEdit(ctx context.Context, patch domain.RecordPatch) (*Intent, error) {
	o.mu.Lock()
	edit := o.slots[SlotEdit]
	if edit.state != StateEditing {
		o.mu.Unlock()
		return nil, fmt.Errorf("edit slot is %s: %w", edit.state, ErrInvalidState)
	}

	id := edit.targetID
	prev, ok := o.store.Get(id)
	if !ok {
		prev = edit.seed
	}

	in := o.newIntent(KindUpdate)
	edit.state = StateSettling
	edit.intent = in

	o.claimKey(id.String(), in)
	o.store.Upsert(patch.Apply(prev))
	o.mu.Unlock()

	go o.settleUpdate(ctx, in, id, prev, patch)
	return in, nil
}

func (o *Orchestrator) settleUpdate(ctx context.Context, in *Intent, id domain.ID, prev domain.Record, patch domain.RecordPatch) {
	rec, err := o.gw.Update(ctx, id, patch)

	o.mu.Lock()
	defer o.mu.Unlock()

	key := id.String()
	if err != nil {
		if o.ownsKey(key, in) {
			o.store.Upsert(prev)
		}
		o.rollbackSlot(SlotEdit, in)
		o.log.Error("update settlement failed",
			slog.String("record_id", key),
			slog.String("error", err.Error()),
		)
		in.complete(err)
		return
	}

	if o.ownsKey(key, in) {
		o.store.Upsert(*rec)
	}
	in.complete(nil)
}
