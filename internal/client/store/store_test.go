package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

func newRecord(id int64, name string) domain.Record {
	return domain.Record{
		ID:        domain.ID(id),
		Name:      &name,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStore_UpsertAndGet(t *testing.T) {
	t.Parallel()

	s := New()
	s.Upsert(newRecord(1, "Kim Minji"))

	got, ok := s.Get(domain.ID(1))
	require.True(t, ok)
	assert.Equal(t, "Kim Minji", *got.Name)

	// Replacing under the same id does not grow the store.
	s.Upsert(newRecord(1, "Kim Minji (updated)"))
	assert.Equal(t, 1, s.Len())

	got, ok = s.Get(domain.ID(1))
	require.True(t, ok)
	assert.Equal(t, "Kim Minji (updated)", *got.Name)
}

func TestStore_ListKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	s := New()
	s.Upsert(newRecord(3, "third"))
	s.Upsert(newRecord(1, "first"))
	s.Upsert(newRecord(2, "second"))

	recs := s.List()
	require.Len(t, recs, 3)
	assert.Equal(t, domain.ID(3), recs[0].ID)
	assert.Equal(t, domain.ID(1), recs[1].ID)
	assert.Equal(t, domain.ID(2), recs[2].ID)
}

func TestStore_ProvisionalKey(t *testing.T) {
	t.Parallel()

	s := New()
	s.PutKeyed("pending-abc", domain.Record{Name: strPtr("draft")})
	assert.Equal(t, 1, s.Len())

	// A provisional entry is invisible to id lookups.
	_, ok := s.Get(domain.ID(0))
	assert.False(t, ok)

	s.RemoveKey("pending-abc")
	assert.Equal(t, 0, s.Len())
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	t.Parallel()

	s := New()
	var calls int
	s.OnChange(func() { calls++ })

	s.Remove(domain.ID(42))
	assert.Equal(t, 0, calls)
}

func TestStore_ReplaceAll(t *testing.T) {
	t.Parallel()

	s := New()
	s.Upsert(newRecord(1, "old"))
	s.PutKeyed("pending-xyz", domain.Record{Name: strPtr("draft")})

	s.ReplaceAll([]domain.Record{newRecord(10, "a"), newRecord(11, "b")})

	assert.Equal(t, 2, s.Len())
	_, ok := s.Get(domain.ID(1))
	assert.False(t, ok)
	_, ok = s.Get(domain.ID(10))
	assert.True(t, ok)
}

func TestStore_ObserversFireOnEveryMutation(t *testing.T) {
	t.Parallel()

	s := New()
	var calls int
	s.OnChange(func() { calls++ })

	s.Upsert(newRecord(1, "a"))
	s.Upsert(newRecord(1, "a2"))
	s.Remove(domain.ID(1))
	s.ReplaceAll(nil)

	assert.Equal(t, 4, calls)
}

func TestStore_ObserverMayReadStore(t *testing.T) {
	t.Parallel()

	s := New()
	var seen int
	s.OnChange(func() { seen = s.Len() })

	s.Upsert(newRecord(1, "a"))
	assert.Equal(t, 1, seen)
}

func strPtr(s string) *string { return &s }
