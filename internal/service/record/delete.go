package record

import (
	"context"
	"fmt"
	"log/slog"
)

// Delete removes a record by id.
func (s *Service) Delete(ctx context.Context, input DeleteInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.records.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.log.InfoContext(ctx, "record deleted",
		slog.String("record_id", input.ID.String()),
	)

	return nil
}
