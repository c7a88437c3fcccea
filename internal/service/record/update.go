package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// Update applies a partial update to a record and returns the updated row.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Record, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.records.Update(ctx, input.ID, input.Patch)
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}

	s.log.InfoContext(ctx, "record updated",
		slog.String("record_id", rec.ID.String()),
	)

	return rec, nil
}
