package mongoslug

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

// lazyCollection returns a collection handle; the driver does not dial until
// the first operation.
func lazyCollection(t *testing.T) *mongo.Collection {
	t.Helper()
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("test").Collection("articles")
}

func newTestCollection(t *testing.T, pattern string, opts ...Option) *Collection {
	t.Helper()
	b, err := sluggable.NewBehavior(sluggable.NewConfig(sluggable.WithPattern(pattern)))
	require.NoError(t, err)
	c, err := New(lazyCollection(t), b, opts...)
	require.NoError(t, err)
	return c
}

func TestFilters(t *testing.T) {
	c := newTestCollection(t, ":title", WithDisplay("title"))

	assert.Equal(t, bson.D{{Key: "slug", Value: "dr-who"}}, c.bySlug("dr-who"))
	assert.Equal(t,
		bson.D{{Key: "$set", Value: bson.D{{Key: "slug", Value: "dr-who"}}}},
		c.setSlug("dr-who"))
	assert.Equal(t,
		bson.D{{Key: "slug", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}},
		c.hasSlug())
	assert.Equal(t,
		bson.D{{Key: "slug", Value: 1}, {Key: "title", Value: 1}},
		c.listProjection())
}

func TestBackfillProjection(t *testing.T) {
	c := newTestCollection(t, ":_id-:title-:title-:slug")
	assert.Equal(t,
		bson.D{{Key: "_id", Value: 1}, {Key: "slug", Value: 1}, {Key: "title", Value: 1}},
		c.backfillProjection())
}

func TestNewValidation(t *testing.T) {
	b, err := sluggable.NewBehavior(sluggable.NewConfig())
	require.NoError(t, err)

	_, err = New(nil, b)
	assert.ErrorIs(t, err, ErrInvalidCollection)

	_, err = New(lazyCollection(t), nil)
	assert.ErrorIs(t, err, ErrInvalidCollection)

	_, err = New(lazyCollection(t), b, WithDisplay(""))
	assert.ErrorIs(t, err, ErrInvalidCollection)
}

func TestSaveMissingKey(t *testing.T) {
	c := newTestCollection(t, ":title")
	err := c.Save(context.Background(), Document{"slug": "x"})
	assert.ErrorIs(t, err, sluggable.ErrMissingKey)
}

func TestDocument(t *testing.T) {
	id := bson.NewObjectID()
	doc := Document{"_id": id, "title": "Dr Who"}

	v, ok := doc.Get("_id")
	require.True(t, ok)
	assert.Equal(t, id.Hex(), v)

	rawID, ok := raw(doc, "_id")
	require.True(t, ok)
	assert.Equal(t, id, rawID)

	rawTitle, ok := raw(sluggable.Map{"title": "x"}, "title")
	require.True(t, ok)
	assert.Equal(t, "x", rawTitle)

	assert.Equal(t, id.Hex()+"-dr-who", sluggable.Generate(":_id-:title", doc, "-"))

	doc.Set("slug", "dr-who")
	assert.Equal(t, "dr-who", doc["slug"])
}

func TestRecordCodecKeepsBSONTypes(t *testing.T) {
	c := newTestCollection(t, ":title")
	id := bson.NewObjectID()

	b, err := c.EncodeRecord(sluggable.Map{
		"_id":   id,
		"title": "Dr Who",
		"views": int32(7),
		"size":  int64(1 << 40),
		"slug":  "dr-who",
	})
	require.NoError(t, err)

	rec, err := c.DecodeRecord(b)
	require.NoError(t, err)
	assert.Equal(t, sluggable.Map{
		"_id":   id,
		"title": "Dr Who",
		"views": int32(7),
		"size":  int64(1 << 40),
		"slug":  "dr-who",
	}, rec)

	// Save filters on the decoded key, which must still be an ObjectID.
	key, ok := raw(rec, "_id")
	require.True(t, ok)
	assert.IsType(t, bson.ObjectID{}, key)
	assert.Equal(t, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: c.key, Value: key}})

	_, err = c.DecodeRecord([]byte("garbage"))
	assert.ErrorIs(t, err, ErrQueryFailed)
}
