package orchestrator

import "fmt"

// Cancel abandons the pending action in a slot and returns it to Idle.
// Settling cannot be cancelled: the request is already on the wire.
// Cancelling an Idle slot is a no-op.
func (o *Orchestrator) Cancel(s Slot) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	sl := o.slots[s]
	if sl.state == StateSettling {
		return fmt.Errorf("%s slot: %w", s, ErrSettling)
	}

	*sl = slot{}
	return nil
}

// DismissSettled acknowledges a settlement indicator and returns the slot
// to Idle. No-op in any other state, so callers may invoke it blindly.
func (o *Orchestrator) DismissSettled(s Slot) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sl := o.slots[s]
	if sl.state != StateSettling {
		return
	}

	*sl = slot{}
}
