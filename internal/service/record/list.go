package record

import (
	"context"
	"fmt"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// List returns all records. The result is never nil: an empty table yields
// an empty slice so the transport layer serializes a JSON array, not null.
func (s *Service) List(ctx context.Context) ([]domain.Record, error) {
	recs, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	if recs == nil {
		recs = []domain.Record{}
	}

	return recs, nil
}
