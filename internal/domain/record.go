package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ID is the primary key of a Record. It is a 64-bit integer in the domain
// and the database, but always travels as a decimal string on the wire
// (JavaScript consumers cannot represent the full int64 range as a number).
type ID int64

// ParseID parses a decimal-string identifier.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q is not a decimal integer: %w", s, ErrValidation)
	}
	return ID(n), nil
}

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// MarshalJSON encodes the ID as a quoted decimal string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON decodes an ID from a quoted decimal string.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Record is the managed entity: a demo user row.
// ID and CreatedAt are server-assigned; CreatedAt never changes after
// creation. Name and phone are nullable free text; age is a nullable
// non-negative number that is not validated in this scope.
type Record struct {
	ID        ID        `json:"id" db:"id"`
	Name      *string   `json:"name" db:"name"`
	Phone     *string   `json:"phone" db:"phone"`
	Age       *float64  `json:"age" db:"age"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RecordDraft carries the caller-supplied fields for creation.
// Absent name/phone are stored as empty strings, not NULL; an absent age
// stays NULL.
type RecordDraft struct {
	Name  string
	Phone string
	Age   *float64
}

// Field is a tri-state value for partial updates: absent, explicit null,
// or set. Plain pointers cannot distinguish absent from null after JSON
// decoding, and the update contract treats them differently.
type Field[T any] struct {
	Set   bool
	Valid bool // false with Set means explicit null
	Value T
}

// NewField returns a set, non-null Field.
func NewField[T any](v T) Field[T] { return Field[T]{Set: true, Valid: true, Value: v} }

// NullField returns a set Field carrying an explicit null.
func NullField[T any]() Field[T] { return Field[T]{Set: true} }

// Ptr returns the value as a pointer; nil for null or absent.
func (f Field[T]) Ptr() *T {
	if !f.Set || !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// UnmarshalJSON marks the field as set and records whether it was null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Valid = false
		var zero T
		f.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// MarshalJSON encodes null for a null field and the value otherwise.
// Absent fields must be omitted by the caller; encoding/json cannot do
// that for struct fields, so patches are assembled field by field on the
// client side.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// RecordPatch is a partial update of a Record. Only set fields are written;
// a set-null field clears the column.
type RecordPatch struct {
	Name  Field[string]  `json:"name"`
	Phone Field[string]  `json:"phone"`
	Age   Field[float64] `json:"age"`
}

// IsZero reports whether the patch carries no fields at all.
func (p RecordPatch) IsZero() bool {
	return !p.Name.Set && !p.Phone.Set && !p.Age.Set
}

// Apply returns a copy of rec with the patch applied. ID and CreatedAt are
// never touched.
func (p RecordPatch) Apply(rec Record) Record {
	if p.Name.Set {
		rec.Name = p.Name.Ptr()
	}
	if p.Phone.Set {
		rec.Phone = p.Phone.Ptr()
	}
	if p.Age.Set {
		rec.Age = p.Age.Ptr()
	}
	return rec
}
