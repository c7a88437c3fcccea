package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/userdir-backend/internal/domain"
	"github.com/heartmarshall/userdir-backend/internal/service/record"
)

// recordService defines the minimal interface needed by RecordHandler.
type recordService interface {
	List(ctx context.Context) ([]domain.Record, error)
	Create(ctx context.Context, input record.CreateInput) (*domain.Record, error)
	Update(ctx context.Context, input record.UpdateInput) (*domain.Record, error)
	Delete(ctx context.Context, input record.DeleteInput) error
}

// RecordHandler serves the record CRUD endpoints under /api/tests.
// Error shapes are fixed: a missing id is 400 {"error":"ID is required"};
// everything else collapses to 500 with a per-operation message. Consumers
// only distinguish 2xx from everything else.
type RecordHandler struct {
	svc recordService
	log *slog.Logger
}

// NewRecordHandler creates a RecordHandler.
func NewRecordHandler(svc recordService, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{svc: svc, log: logger.With("handler", "records")}
}

type createRequest struct {
	Name  *string  `json:"name"`
	Phone *string  `json:"phone"`
	Age   *float64 `json:"age"`
}

type updateRequest struct {
	ID    string                `json:"id"`
	Name  domain.Field[string]  `json:"name"`
	Phone domain.Field[string]  `json:"phone"`
	Age   domain.Field[float64] `json:"age"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// List handles GET /api/tests.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.List(r.Context())
	if err != nil {
		h.handleError(w, r, err, "Failed to load records")
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// Create handles POST /api/tests.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Create(r.Context(), record.CreateInput{
		Name:  req.Name,
		Phone: req.Phone,
		Age:   req.Age,
	})
	if err != nil {
		h.handleError(w, r, err, "Failed to create record")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// Update handles PUT /api/tests. Only fields present in the body are
// written; an explicit null clears the column.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "ID is required")
		return
	}

	id, err := domain.ParseID(req.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID is required")
		return
	}

	rec, err := h.svc.Update(r.Context(), record.UpdateInput{
		ID: id,
		Patch: domain.RecordPatch{
			Name:  req.Name,
			Phone: req.Phone,
			Age:   req.Age,
		},
	})
	if err != nil {
		h.handleError(w, r, err, "Failed to update record")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/tests?id=<id>.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "ID is required")
		return
	}

	id, err := domain.ParseID(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), record.DeleteInput{ID: id}); err != nil {
		h.handleError(w, r, err, "Failed to delete record")
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Success: true})
}

// handleError maps service errors to the fixed wire shapes: validation is
// 400 with the validation message, everything else (not-found included) is
// 500 with the fixed per-operation message.
func (h *RecordHandler) handleError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, domain.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, message)
}
