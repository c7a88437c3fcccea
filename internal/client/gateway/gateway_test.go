package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchAll(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/tests", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","name":"Kim Minji","phone":"010-1234","age":29,"created_at":"2025-06-01T12:00:00Z"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testLogger())

	recs, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.ID(1), recs[0].ID)
	assert.Equal(t, "Kim Minji", *recs[0].Name)
	assert.Equal(t, 29.0, *recs[0].Age)
}

func TestCreate_SendsNullAge(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, `"Lee Junho"`, string(body["name"]))
		assert.Equal(t, `null`, string(body["age"]))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"7","name":"Lee Junho","phone":"010-9876","age":null,"created_at":"2025-06-01T12:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testLogger())

	rec, err := c.Create(context.Background(), domain.RecordDraft{Name: "Lee Junho", Phone: "010-9876"})
	require.NoError(t, err)
	assert.Equal(t, domain.ID(7), rec.ID)
	assert.Nil(t, rec.Age)
}

func TestUpdate_SendsOnlySetFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, `"3"`, string(body["id"]))
		assert.Equal(t, `"renamed"`, string(body["name"]))
		assert.Equal(t, `null`, string(body["age"]))
		_, hasPhone := body["phone"]
		assert.False(t, hasPhone, "absent field must stay off the wire")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"3","name":"renamed","phone":"010-0003","age":null,"created_at":"2025-06-01T12:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testLogger())

	patch := domain.RecordPatch{
		Name: domain.NewField("renamed"),
		Age:  domain.NullField[float64](),
	}

	rec, err := c.Update(context.Background(), domain.ID(3), patch)
	require.NoError(t, err)
	assert.Equal(t, "renamed", *rec.Name)
	assert.Nil(t, rec.Age)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "5", r.URL.Query().Get("id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testLogger())

	require.NoError(t, c.Delete(context.Background(), domain.ID(5)))
}

func TestDelete_ServerReportedFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testLogger())

	err := c.Delete(context.Background(), domain.ID(5))

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "delete", terr.Op)
}

func TestNon2xxBecomesTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to load records"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testLogger())

	_, err := c.FetchAll(context.Background())

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusInternalServerError, terr.Status)
	assert.Contains(t, errors.Unwrap(terr).Error(), "Failed to load records")
}

func TestNetworkFailureBecomesTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, nil, testLogger())

	_, err := c.FetchAll(context.Background())

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Zero(t, terr.Status)
}
