package mongoslug

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sluggable/pkg/logger"
	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

// Collection binds slug generation to a MongoDB collection.
type Collection struct {
	coll     *mongo.Collection
	behavior *sluggable.Behavior
	log      *slog.Logger
	key      string
	display  string
}

// Option configures a Collection.
type Option func(*Collection)

// WithKey sets the field used to address documents. Default "_id".
func WithKey(field string) Option {
	return func(c *Collection) { c.key = field }
}

// WithDisplay sets the field listed next to each slug by SluggedList. Default "name".
func WithDisplay(field string) Option {
	return func(c *Collection) { c.display = field }
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.log = l
		}
	}
}

// New binds behavior to coll.
func New(coll *mongo.Collection, behavior *sluggable.Behavior, opts ...Option) (*Collection, error) {
	if coll == nil || behavior == nil {
		return nil, errors.Join(ErrInvalidCollection, errors.New("collection and behavior are required"))
	}

	c := &Collection{
		coll:     coll,
		behavior: behavior,
		log:      logger.Discard(),
		key:      "_id",
		display:  "name",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.key == "" || c.display == "" {
		return nil, errors.Join(ErrInvalidCollection, errors.New("key and display fields are required"))
	}
	c.log = c.log.With(logger.Table(coll.Name()))
	return c, nil
}

func (c *Collection) field() string {
	return c.behavior.Config().Field
}

// Save sets the slug field of the document addressed by rec's key.
func (c *Collection) Save(ctx context.Context, rec sluggable.MutableRecord) error {
	key, ok := raw(rec, c.key)
	if !ok || key == nil {
		return sluggable.ErrMissingKey
	}

	res, err := c.coll.UpdateOne(ctx, bson.D{{Key: c.key, Value: key}}, c.setSlug(sluggable.FieldString(rec, c.field())))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Join(ErrDuplicateSlug, err)
		}
		return errors.Join(ErrQueryFailed, err)
	}
	if res.MatchedCount == 0 {
		return sluggable.ErrNotFound
	}
	return nil
}

// FindBySlug returns the first document whose slug field equals slug.
func (c *Collection) FindBySlug(ctx context.Context, slug string) (sluggable.Map, error) {
	var doc bson.M
	if err := c.coll.FindOne(ctx, c.bySlug(slug)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sluggable.ErrNotFound
		}
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return sluggable.Map(doc), nil
}

// SluggedList returns slug/display pairs sorted by the display field.
func (c *Collection) SluggedList(ctx context.Context) ([]sluggable.Entry, error) {
	opts := options.Find().
		SetProjection(c.listProjection()).
		SetSort(bson.D{{Key: c.display, Value: 1}, {Key: c.field(), Value: 1}})

	cur, err := c.coll.Find(ctx, c.hasSlug(), opts)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	defer cur.Close(ctx)

	var entries []sluggable.Entry
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		d := Document(doc)
		entries = append(entries, sluggable.Entry{
			Slug: sluggable.FieldString(d, c.field()),
			Name: sluggable.FieldString(d, c.display),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return entries, nil
}

// Backfill runs the save hook for every document and returns how many got a
// new slug. Only the key, the slug field and the fields named in the pattern
// are loaded.
func (c *Collection) Backfill(ctx context.Context) (int, error) {
	opts := options.Find().
		SetProjection(c.backfillProjection()).
		SetSort(bson.D{{Key: c.key, Value: 1}})

	cur, err := c.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}

	updated := 0
	for _, doc := range docs {
		rec := Document(doc)
		before := sluggable.FieldString(rec, c.field())
		if err := c.behavior.AfterSave(ctx, rec, c); err != nil {
			return updated, err
		}
		if after := sluggable.FieldString(rec, c.field()); after != before {
			updated++
			key, _ := rec.Get(c.key)
			c.log.DebugContext(ctx, "slug backfilled", logger.Key(key), logger.Slug(after))
		}
	}

	c.log.InfoContext(ctx, "backfill finished", logger.Count(updated))
	return updated, nil
}

func (c *Collection) setSlug(slug string) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{{Key: c.field(), Value: slug}}}}
}

func (c *Collection) bySlug(slug string) bson.D {
	return bson.D{{Key: c.field(), Value: slug}}
}

func (c *Collection) hasSlug() bson.D {
	return bson.D{{Key: c.field(), Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}}
}

func (c *Collection) listProjection() bson.D {
	return bson.D{{Key: c.field(), Value: 1}, {Key: c.display, Value: 1}}
}

func (c *Collection) backfillProjection() bson.D {
	fields := []string{c.key, c.field()}
	fields = append(fields, sluggable.Placeholders(c.behavior.Config().Pattern)...)

	proj := bson.D{}
	seen := map[string]struct{}{}
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		proj = append(proj, bson.E{Key: f, Value: 1})
	}
	return proj
}
