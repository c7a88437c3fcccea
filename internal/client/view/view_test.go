package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func record(id int64, name, phone string, createdOffset time.Duration) domain.Record {
	return domain.Record{
		ID:        domain.ID(id),
		Name:      &name,
		Phone:     &phone,
		CreatedAt: baseTime.Add(createdOffset),
	}
}

func TestProject_SortsByCreatedAtDescending(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		record(1, "T1", "010-0001", 0),
		record(3, "T3", "010-0003", 2*time.Hour),
		record(2, "T2", "010-0002", time.Hour),
	}

	p := Project(records, Params{Page: 1, PageSize: 10})

	require.Len(t, p.Records, 3)
	assert.Equal(t, domain.ID(3), p.Records[0].ID)
	assert.Equal(t, domain.ID(2), p.Records[1].ID)
	assert.Equal(t, domain.ID(1), p.Records[2].ID)
}

func TestProject_SortIsStableForEqualTimestamps(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		record(1, "a", "1", 0),
		record(2, "b", "2", 0),
		record(3, "c", "3", 0),
	}

	p := Project(records, Params{Page: 1, PageSize: 10})

	require.Len(t, p.Records, 3)
	assert.Equal(t, domain.ID(1), p.Records[0].ID)
	assert.Equal(t, domain.ID(2), p.Records[1].ID)
	assert.Equal(t, domain.ID(3), p.Records[2].ID)
}

func TestProject_FilterMatchesNameOrPhone(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		record(1, "Kim Minji", "010-1234-5678", 0),
		record(2, "Lee Junho", "010-9876-5432", time.Minute),
		record(3, "Park Seoyeon", "010-1234-0000", 2*time.Minute),
	}

	p := Project(records, Params{SearchTerm: "KIM", Page: 1, PageSize: 10})
	require.Len(t, p.Records, 1)
	assert.Equal(t, domain.ID(1), p.Records[0].ID)

	p = Project(records, Params{SearchTerm: "010-1234", Page: 1, PageSize: 10})
	assert.Equal(t, 2, p.TotalMatching)
}

func TestProject_NilFieldsNeverMatch(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{ID: 1, CreatedAt: baseTime},
		record(2, "named", "010-0002", time.Minute),
	}

	p := Project(records, Params{SearchTerm: "named", Page: 1, PageSize: 10})
	require.Len(t, p.Records, 1)
	assert.Equal(t, domain.ID(2), p.Records[0].ID)
}

func TestProject_Pagination(t *testing.T) {
	t.Parallel()

	records := make([]domain.Record, 0, 25)
	for i := 1; i <= 25; i++ {
		records = append(records, record(int64(i), fmt.Sprintf("user %d", i), "010", time.Duration(i)*time.Minute))
	}

	p := Project(records, Params{Page: 1, PageSize: 10})
	assert.Equal(t, 3, p.TotalPages)
	assert.Len(t, p.Records, 10)
	assert.Equal(t, 25, p.TotalMatching)

	p = Project(records, Params{Page: 3, PageSize: 10})
	assert.Len(t, p.Records, 5)
}

func TestProject_OutOfRangePageIsClamped(t *testing.T) {
	t.Parallel()

	records := make([]domain.Record, 0, 25)
	for i := 1; i <= 25; i++ {
		records = append(records, record(int64(i), fmt.Sprintf("user %d", i), "010", time.Duration(i)*time.Minute))
	}

	p := Project(records, Params{Page: 5, PageSize: 10})
	assert.Equal(t, 3, p.Page)
	assert.Len(t, p.Records, 5)

	p = Project(records, Params{Page: 0, PageSize: 10})
	assert.Equal(t, 1, p.Page)
}

func TestProject_NoMatches(t *testing.T) {
	t.Parallel()

	records := []domain.Record{record(1, "Kim", "010", 0)}

	p := Project(records, Params{SearchTerm: "nothing", Page: 2, PageSize: 10})
	assert.Equal(t, 0, p.Page, "an empty result set reads page 0 of 0")
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 0, p.TotalMatching)
	assert.Empty(t, p.Records)
}

func TestProject_UnknownPageSizeFallsBack(t *testing.T) {
	t.Parallel()

	records := make([]domain.Record, 0, 15)
	for i := 1; i <= 15; i++ {
		records = append(records, record(int64(i), "u", "010", time.Duration(i)*time.Minute))
	}

	p := Project(records, Params{Page: 1, PageSize: 7})
	assert.Len(t, p.Records, DefaultPageSize)
	assert.Equal(t, 2, p.TotalPages)
}

func TestState_SearchChangeResetsPage(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.SetPage(4)
	require.Equal(t, 4, s.Params().Page)

	s.SetSearchTerm("kim")
	assert.Equal(t, 1, s.Params().Page)
	assert.Equal(t, "kim", s.Params().SearchTerm)

	// Setting the same term again keeps the page.
	s.SetPage(2)
	s.SetSearchTerm("kim")
	assert.Equal(t, 2, s.Params().Page)
}

func TestState_PageSizeChangeResetsPage(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.SetPage(3)
	s.SetPageSize(25)

	assert.Equal(t, 1, s.Params().Page)
	assert.Equal(t, 25, s.Params().PageSize)
}
