package sluggable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// Record provides read access to named fields.
type Record interface {
	// Get returns the value of the named field and whether it exists.
	Get(name string) (any, bool)
}

// MutableRecord is a Record whose fields can be assigned.
type MutableRecord interface {
	Record
	Set(name string, value any)
}

// Map is a Record backed by a plain map. Database rows and documents decode
// into this shape directly.
type Map map[string]any

func (m Map) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Set assigns a field. It panics on a nil Map, like any map write.
func (m Map) Set(name string, value any) {
	m[name] = value
}

// RecordFunc adapts a lookup function to Record.
type RecordFunc func(name string) (any, bool)

func (f RecordFunc) Get(name string) (any, bool) {
	return f(name)
}

// FromStruct projects v onto a Map through its JSON encoding, so field names
// follow `json` tags. Numbers keep their exact textual form.
func FromStruct(v any) (Map, error) {
	if v == nil {
		return Map{}, nil
	}
	if m, ok := v.(Map); ok {
		return m, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrInvalidRecord, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Join(ErrInvalidRecord, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return Map(m), nil
}

// FieldString returns the string form of a field, or "" when it is absent or null.
func FieldString(rec Record, name string) string {
	if rec == nil {
		return ""
	}
	v, ok := rec.Get(name)
	if !ok {
		return ""
	}
	return stringify(v)
}

// stringify renders scalar field values the way they appear in a slug.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return stringify(rv.Elem().Interface())
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
