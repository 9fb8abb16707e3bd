package mongoslug

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

// Document adapts a decoded BSON document to sluggable.MutableRecord.
// Object IDs read through Get are rendered as hex so ":_id" placeholders
// produce plain identifiers.
type Document bson.M

func (d Document) Get(name string) (any, bool) {
	v, ok := d[name]
	if id, isID := v.(bson.ObjectID); isID {
		return id.Hex(), ok
	}
	return v, ok
}

func (d Document) Set(name string, value any) {
	d[name] = value
}

// raw returns the stored value of a field without conversion.
func raw(rec sluggable.Record, name string) (any, bool) {
	if d, ok := rec.(Document); ok {
		v, ok := d[name]
		return v, ok
	}
	return rec.Get(name)
}

// EncodeRecord serializes a document for pkg/slugcache as BSON, so a cache
// hit returns the same types as a read from the collection.
func (c *Collection) EncodeRecord(rec sluggable.Map) ([]byte, error) {
	b, err := bson.Marshal(bson.M(rec))
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return b, nil
}

// DecodeRecord restores a document written by EncodeRecord.
func (c *Collection) DecodeRecord(b []byte) (sluggable.Map, error) {
	var doc bson.M
	if err := bson.Unmarshal(b, &doc); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return sluggable.Map(doc), nil
}
