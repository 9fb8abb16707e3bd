package sluggable

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/sluggable/pkg/logger"
)

// Saver persists a record. Storage bindings implement it so that AfterSave
// can write back a slug that was assigned after the first save.
type Saver interface {
	Save(ctx context.Context, rec MutableRecord) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, rec MutableRecord) error

func (f SaverFunc) Save(ctx context.Context, rec MutableRecord) error {
	return f(ctx, rec)
}

// Behavior hooks slug generation into a save pipeline.
type Behavior struct {
	gen *Generator
	log *slog.Logger
}

// BehaviorOption configures a Behavior.
type BehaviorOption func(*Behavior)

// WithLogger sets the logger used for slug assignments. Nil is ignored.
func WithLogger(l *slog.Logger) BehaviorOption {
	return func(b *Behavior) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBehavior validates cfg and returns a Behavior for it.
func NewBehavior(cfg Config, opts ...BehaviorOption) (*Behavior, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	b := &Behavior{
		gen: gen,
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With(logger.Component("sluggable"), logger.Field(cfg.Field))
	return b, nil
}

// Generator returns the Generator used by the hooks.
func (b *Behavior) Generator() *Generator {
	return b.gen
}

// Config returns the slug configuration of the Behavior.
func (b *Behavior) Config() Config {
	return b.gen.cfg
}

// BeforeSave assigns the slug field in place before the record is written,
// so a single save persists it. It reports whether the field changed.
func (b *Behavior) BeforeSave(rec MutableRecord) bool {
	field := b.gen.cfg.Field
	previous := FieldString(rec, field)
	next := b.gen.Generate(rec)
	if next == previous {
		return false
	}
	rec.Set(field, next)
	b.log.Debug("slug assigned", logger.Slug(next), logger.PreviousSlug(previous))
	return true
}

type resaveKey struct{}

// AfterSave runs once a record has been saved. If the generated slug differs
// from the stored one, it assigns the field and saves the record again. The
// nested save may trigger AfterSave once more; that call finds the slug
// unchanged and returns without writing.
func (b *Behavior) AfterSave(ctx context.Context, rec MutableRecord, saver Saver) error {
	if ctx.Value(resaveKey{}) != nil {
		return nil
	}
	if !b.BeforeSave(rec) {
		return nil
	}

	if err := saver.Save(context.WithValue(ctx, resaveKey{}, true), rec); err != nil {
		b.log.ErrorContext(ctx, "slug save failed", logger.Slug(FieldString(rec, b.gen.cfg.Field)), logger.Error(err))
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}
