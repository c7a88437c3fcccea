// Package record implements the application service for the demo user
// records: list, create, partial update, and delete over a single table.
package record

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

type recordRepo interface {
	List(ctx context.Context) ([]domain.Record, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Record, error)
	Create(ctx context.Context, draft domain.RecordDraft) (*domain.Record, error)
	Update(ctx context.Context, id domain.ID, patch domain.RecordPatch) (*domain.Record, error)
	Delete(ctx context.Context, id domain.ID) error
}

// Service provides record management operations.
type Service struct {
	records recordRepo
	log     *slog.Logger
}

// NewService creates a new record service.
func NewService(log *slog.Logger, records recordRepo) *Service {
	return &Service{
		records: records,
		log:     log.With("service", "record"),
	}
}
