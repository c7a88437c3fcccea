package rest

import "net/http"

// NewRouter builds the HTTP routing table for the API and the health probes.
func NewRouter(records *RecordHandler, health *HealthHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/tests", records.List)
	mux.HandleFunc("POST /api/tests", records.Create)
	mux.HandleFunc("PUT /api/tests", records.Update)
	mux.HandleFunc("DELETE /api/tests", records.Delete)

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)

	return mux
}
