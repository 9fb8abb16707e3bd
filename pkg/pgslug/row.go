package pgslug

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

// Row adapts a row decoded by pgx.RowToMap to sluggable.MutableRecord.
// Get renders uuid columns as canonical text and driver.Valuer values such as
// pgtype.Numeric through Value, so placeholders read what psql prints.
type Row sluggable.Map

func (r Row) Get(name string) (any, bool) {
	v, ok := r[name]
	return textValue(v), ok
}

func (r Row) Set(name string, value any) {
	r[name] = value
}

// textValue converts the non-text Go types pgx decodes into their PostgreSQL
// text form. Other values are returned unchanged.
func textValue(v any) any {
	switch x := v.(type) {
	case [16]byte:
		return uuid.UUID(x).String()
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return nil
		}
		return dv
	}
	return v
}

// raw returns the stored value of a column without conversion, so keys are
// sent back to PostgreSQL in the type they were read in.
func raw(rec sluggable.Record, name string) (any, bool) {
	if r, ok := rec.(Row); ok {
		v, ok := r[name]
		return v, ok
	}
	return rec.Get(name)
}

// EncodeRecord serializes a row for pkg/slugcache with every value in its
// text form.
func (t *Table) EncodeRecord(rec sluggable.Map) ([]byte, error) {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = textValue(v)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return b, nil
}

// DecodeRecord restores a row written by EncodeRecord. Numbers come back as
// strings: pgx sends string arguments in text format, so a decoded key still
// addresses its row in Save.
func (t *Table) DecodeRecord(b []byte) (sluggable.Map, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	for k, v := range m {
		if n, ok := v.(json.Number); ok {
			m[k] = n.String()
		}
	}
	return sluggable.Map(m), nil
}
