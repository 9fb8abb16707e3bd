package pgslug

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/sluggable/pkg/logger"
	"github.com/dmitrymomot/sluggable/pkg/pg"
	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx used by Table.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Table binds slug generation to a PostgreSQL table.
type Table struct {
	q        Querier
	behavior *sluggable.Behavior
	log      *slog.Logger
	name     pgx.Identifier
	key      string
	display  string
}

// Option configures a Table.
type Option func(*Table)

// WithKey sets the primary key column used to address rows. Default "id".
func WithKey(column string) Option {
	return func(t *Table) { t.key = column }
}

// WithDisplay sets the column listed next to each slug by SluggedList. Default "name".
func WithDisplay(column string) Option {
	return func(t *Table) { t.display = column }
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.log = l
		}
	}
}

// New binds behavior to table, which may be schema-qualified ("public.articles").
func New(q Querier, table string, behavior *sluggable.Behavior, opts ...Option) (*Table, error) {
	if q == nil || behavior == nil {
		return nil, errors.Join(ErrInvalidTable, errors.New("querier and behavior are required"))
	}
	name, err := parseIdentifier(table)
	if err != nil {
		return nil, err
	}

	t := &Table{
		q:        q,
		behavior: behavior,
		log:      logger.Discard(),
		name:     name,
		key:      "id",
		display:  "name",
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.key == "" || t.display == "" {
		return nil, errors.Join(ErrInvalidTable, errors.New("key and display columns are required"))
	}
	t.log = t.log.With(logger.Table(table))
	return t, nil
}

func parseIdentifier(table string) (pgx.Identifier, error) {
	parts := strings.Split(table, ".")
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, errors.Join(ErrInvalidTable, fmt.Errorf("bad table name %q", table))
		}
	}
	return pgx.Identifier(parts), nil
}

func (t *Table) field() string {
	return t.behavior.Config().Field
}

// Save writes the slug column of rec, addressed by its key column.
func (t *Table) Save(ctx context.Context, rec sluggable.MutableRecord) error {
	key, ok := raw(rec, t.key)
	if !ok || key == nil {
		return sluggable.ErrMissingKey
	}

	tag, err := t.q.Exec(ctx, t.updateSQL(), sluggable.FieldString(rec, t.field()), key)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return errors.Join(ErrDuplicateSlug, err)
		}
		return errors.Join(ErrQueryFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return sluggable.ErrNotFound
	}
	return nil
}

// FindBySlug returns the first row whose slug column equals slug.
func (t *Table) FindBySlug(ctx context.Context, slug string) (sluggable.Map, error) {
	rows, err := t.q.Query(ctx, t.findSQL(), slug)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, sluggable.ErrNotFound
		}
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return sluggable.Map(row), nil
}

// SluggedList returns slug/display pairs ordered by the display column.
func (t *Table) SluggedList(ctx context.Context) ([]sluggable.Entry, error) {
	rows, err := t.q.Query(ctx, t.listSQL())
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (sluggable.Entry, error) {
		var e sluggable.Entry
		err := row.Scan(&e.Slug, &e.Name)
		return e, err
	})
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return entries, nil
}

// Backfill runs the save hook for every row of the table and returns how many
// rows got a new slug. Rows are read before any update is issued, so it also
// works inside a single-connection transaction.
func (t *Table) Backfill(ctx context.Context) (int, error) {
	rows, err := t.q.Query(ctx, t.selectAllSQL())
	if err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}
	all, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}

	updated := 0
	for _, row := range all {
		rec := Row(row)
		before := sluggable.FieldString(rec, t.field())
		if err := t.behavior.AfterSave(ctx, rec, t); err != nil {
			return updated, err
		}
		if after := sluggable.FieldString(rec, t.field()); after != before {
			updated++
			t.log.DebugContext(ctx, "slug backfilled", logger.Key(textValue(row[t.key])), logger.Slug(after))
		}
	}

	t.log.InfoContext(ctx, "backfill finished", logger.Count(updated))
	return updated, nil
}

func (t *Table) updateSQL() string {
	return fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = $2",
		t.name.Sanitize(), quote(t.field()), quote(t.key))
}

func (t *Table) findSQL() string {
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 LIMIT 1",
		t.name.Sanitize(), quote(t.field()))
}

func (t *Table) listSQL() string {
	field := quote(t.field())
	display := quote(t.display)
	return fmt.Sprintf("SELECT %s::text, COALESCE(%s::text, '') FROM %s WHERE %s IS NOT NULL AND %s <> '' ORDER BY %s, %s",
		field, display, t.name.Sanitize(), field, field, display, field)
}

func (t *Table) selectAllSQL() string {
	return fmt.Sprintf("SELECT * FROM %s ORDER BY %s", t.name.Sanitize(), quote(t.key))
}

func quote(column string) string {
	return pgx.Identifier{column}.Sanitize()
}
