package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// Hydrate seeds the store from a serialized record array, typically a
// snapshot embedded in the initially served page.
func (o *Orchestrator) Hydrate(snapshot []byte) error {
	var recs []domain.Record
	if err := json.Unmarshal(snapshot, &recs); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	o.reset(recs)
	return nil
}

// Refresh reloads the full collection from the server and replaces the
// store contents. Settlements already in flight are older than the
// refresh and will not overwrite refreshed records.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	recs, err := o.gw.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	o.reset(recs)
	return nil
}

func (o *Orchestrator) reset(recs []domain.Record) {
	o.mu.Lock()
	defer o.mu.Unlock()

	seq := o.nextSeq()
	o.written = make(map[string]uint64, len(recs))
	for _, rec := range recs {
		o.written[rec.ID.String()] = seq
	}
	o.store.ReplaceAll(recs)
}
