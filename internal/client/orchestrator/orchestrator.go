// Package orchestrator coordinates optimistic mutations against the
// record collection. Each user-facing action occupies one of three slots
// (create form, edit form, delete confirmation); a slot walks
// Idle -> Editing/Confirming -> Settling -> Idle. Creations and edits
// apply to the local store before the server answers and roll back if the
// server refuses; deletions wait for the server's confirmation before the
// record leaves the store.
//
// Store observers registered by the view layer may read the store from
// their callback but must not call back into the Orchestrator.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/heartmarshall/userdir-backend/internal/client/store"
	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// Slot names one of the mutually independent pending-action lanes.
type Slot string

const (
	SlotCreate Slot = "create"
	SlotEdit   Slot = "edit"
	SlotDelete Slot = "delete-confirm"
)

// SlotState is the lifecycle position of a slot.
type SlotState int

const (
	StateIdle SlotState = iota
	StateEditing
	StateConfirming
	StateSettling
)

func (s SlotState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateConfirming:
		return "confirming"
	case StateSettling:
		return "settling"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidState signals an operation applied to a slot in the
	// wrong lifecycle position.
	ErrInvalidState = errors.New("invalid slot state")
	// ErrSettling signals an operation that cannot interrupt an
	// in-flight settlement.
	ErrSettling = errors.New("operation is settling")
)

// Gateway is the remote capability the Orchestrator settles against.
type Gateway interface {
	FetchAll(ctx context.Context) ([]domain.Record, error)
	Create(ctx context.Context, draft domain.RecordDraft) (*domain.Record, error)
	Update(ctx context.Context, id domain.ID, patch domain.RecordPatch) (*domain.Record, error)
	Delete(ctx context.Context, id domain.ID) error
}

type slot struct {
	state    SlotState
	targetID domain.ID     // edit / delete target
	seed     domain.Record // snapshot taken when editing began
	intent   *Intent       // current non-terminal intent, nil otherwise
}

// Orchestrator owns the slot state machine and reconciles gateway
// responses into the store.
type Orchestrator struct {
	mu    sync.Mutex
	store *store.Store
	gw    Gateway
	log   *slog.Logger

	slots map[Slot]*slot

	// seq grows with every intent and store-resetting sync. written
	// remembers, per store key, the sequence of the latest writer; a
	// settling response touches a key only if no later intent already
	// wrote it.
	seq     uint64
	written map[string]uint64
}

// New creates an Orchestrator over the given store and gateway.
func New(st *store.Store, gw Gateway, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store: st,
		gw:    gw,
		log:   logger.With("component", "orchestrator"),
		slots: map[Slot]*slot{
			SlotCreate: {},
			SlotEdit:   {},
			SlotDelete: {},
		},
		written: make(map[string]uint64),
	}
}

// Store returns the underlying record store.
func (o *Orchestrator) Store() *store.Store {
	return o.store
}

// State returns the current lifecycle position of a slot.
func (o *Orchestrator) State(s Slot) SlotState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.slots[s].state
}

// nextSeq allocates a sequence number. Caller holds o.mu.
func (o *Orchestrator) nextSeq() uint64 {
	o.seq++
	return o.seq
}

// claimKey marks in as the latest writer of key unless a later intent
// got there first, and reports whether the claim succeeded.
// Caller holds o.mu.
func (o *Orchestrator) claimKey(key string, in *Intent) bool {
	if o.written[key] > in.seq {
		return false
	}
	o.written[key] = in.seq
	return true
}

// ownsKey reports whether in is still the latest writer of key.
// Caller holds o.mu.
func (o *Orchestrator) ownsKey(key string, in *Intent) bool {
	return o.written[key] == in.seq
}

// rollbackSlot returns the slot to Idle, but only if in is still its
// current intent; a newer action may have taken the slot over since.
// Caller holds o.mu.
func (o *Orchestrator) rollbackSlot(s Slot, in *Intent) {
	sl := o.slots[s]
	if sl.intent != in {
		return
	}
	*sl = slot{}
}
