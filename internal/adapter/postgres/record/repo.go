// Package record implements the Record repository using PostgreSQL.
// Queries are built with squirrel and scanned with scany; the single
// dynamic statement (partial UPDATE) is why the queries are hand-written
// rather than generated.
package record

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/userdir-backend/internal/adapter/postgres"
	"github.com/heartmarshall/userdir-backend/internal/domain"
)

const table = "tests"

var columns = []string{"id", "name", "phone", "age", "created_at"}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new record repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns all records ordered by primary key. Display ordering
// (created_at descending) is a presentation concern handled by callers.
func (r *Repo) List(ctx context.Context) ([]domain.Record, error) {
	sql, args, err := psql.Select(columns...).From(table).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var recs []domain.Record
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &recs, sql, args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return recs, nil
}

// GetByID returns a record by primary key.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) GetByID(ctx context.Context, id domain.ID) (*domain.Record, error) {
	sql, args, err := psql.Select(columns...).From(table).
		Where(squirrel.Eq{"id": int64(id)}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var rec domain.Record
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rec, sql, args...); err != nil {
		return nil, postgres.MapError(err, "record", id)
	}

	return &rec, nil
}

// Create inserts a new record and returns the persisted row with the
// server-assigned id and created_at.
func (r *Repo) Create(ctx context.Context, draft domain.RecordDraft) (*domain.Record, error) {
	sql, args, err := psql.Insert(table).
		Columns("name", "phone", "age").
		Values(draft.Name, draft.Phone, draft.Age).
		Suffix("RETURNING id, name, phone, age, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	var rec domain.Record
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rec, sql, args...); err != nil {
		return nil, postgres.MapError(err, "record", 0)
	}

	return &rec, nil
}

// Update applies the set fields of patch to the record with the given id
// and returns the updated row. id and created_at are never modified.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) Update(ctx context.Context, id domain.ID, patch domain.RecordPatch) (*domain.Record, error) {
	if patch.IsZero() {
		// Nothing to write; return the row unchanged.
		return r.GetByID(ctx, id)
	}

	ub := psql.Update(table).Where(squirrel.Eq{"id": int64(id)})
	if patch.Name.Set {
		ub = ub.Set("name", patch.Name.Ptr())
	}
	if patch.Phone.Set {
		ub = ub.Set("phone", patch.Phone.Ptr())
	}
	if patch.Age.Set {
		ub = ub.Set("age", patch.Age.Ptr())
	}

	sql, args, err := ub.Suffix("RETURNING id, name, phone, age, created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	var rec domain.Record
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rec, sql, args...); err != nil {
		return nil, postgres.MapError(err, "record", id)
	}

	return &rec, nil
}

// Delete removes a record by primary key.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) Delete(ctx context.Context, id domain.ID) error {
	sql, args, err := psql.Delete(table).Where(squirrel.Eq{"id": int64(id)}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "record", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
