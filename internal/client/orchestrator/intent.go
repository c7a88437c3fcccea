package orchestrator

import (
	"context"

	"github.com/google/uuid"
)

// Kind is the mutation an Intent carries.
type Kind int

const (
	KindCreate Kind = iota
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Intent is one pending user action on its way to the server. The caller
// may wait on Done to learn the outcome, or ignore it entirely: the
// Orchestrator reconciles the store either way.
type Intent struct {
	id   uuid.UUID
	kind Kind
	seq  uint64
	done chan struct{}
	err  error
}

// newIntent allocates an intent with the next sequence number.
// Caller holds o.mu.
func (o *Orchestrator) newIntent(kind Kind) *Intent {
	return &Intent{
		id:   uuid.New(),
		kind: kind,
		seq:  o.nextSeq(),
		done: make(chan struct{}),
	}
}

// ID returns the intent's unique identifier.
func (in *Intent) ID() uuid.UUID {
	return in.id
}

// Kind returns the mutation the intent carries.
func (in *Intent) Kind() Kind {
	return in.kind
}

// Done is closed when the intent has settled, successfully or not.
func (in *Intent) Done() <-chan struct{} {
	return in.done
}

// Err returns the settlement outcome. Valid only after Done is closed.
func (in *Intent) Err() error {
	return in.err
}

// Wait blocks until the intent settles or ctx expires.
func (in *Intent) Wait(ctx context.Context) error {
	select {
	case <-in.done:
		return in.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// complete records the outcome and releases waiters.
func (in *Intent) complete(err error) {
	in.err = err
	close(in.done)
}
