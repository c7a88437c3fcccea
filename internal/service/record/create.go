package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// Create inserts a new record. The server assigns id and created_at.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Record, error) {
	rec, err := s.records.Create(ctx, input.Draft())
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.log.InfoContext(ctx, "record created",
		slog.String("record_id", rec.ID.String()),
	)

	return rec, nil
}
