package pgslug

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

var articleID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

func TestRowRendersColumnTypes(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"uuid column", [16]byte(articleID), "550e8400-e29b-41d4-a716-446655440000-abc"},
		{"uuid.UUID", articleID, "550e8400-e29b-41d4-a716-446655440000-abc"},
		{"pgtype.UUID", pgtype.UUID{Bytes: articleID, Valid: true}, "550e8400-e29b-41d4-a716-446655440000-abc"},
		{"numeric", pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true}, "12-50-abc"},
		{"negative numeric", pgtype.Numeric{Int: big.NewInt(-7), Exp: 0, Valid: true}, "7-abc"},
		{"null numeric", pgtype.Numeric{}, "abc"},
		{"int8", int64(42), "42-abc"},
		{"text", "Dr Who", "dr-who-abc"},
		{"null", nil, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Row{"id": tt.value, "name": "abc"}
			assert.Equal(t, tt.want, sluggable.Generate(":id-:name", rec, "-"))
		})
	}
}

func TestRowSaveKeepsKeyType(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}
	b, err := sluggable.NewBehavior(sluggable.NewConfig(sluggable.WithPattern(":id")))
	require.NoError(t, err)
	tbl, err := New(q, "articles", b)
	require.NoError(t, err)

	rec := Row{"id": [16]byte(articleID)}
	require.NoError(t, b.AfterSave(context.Background(), rec, tbl))
	require.Len(t, q.execs, 1)
	assert.Equal(t, []any{articleID.String(), [16]byte(articleID)}, q.execs[0].args)
}

func TestRecordCodec(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}
	tbl := newTestTable(t, q, "articles")

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	encoded, err := tbl.EncodeRecord(sluggable.Map{
		"id":      [16]byte(articleID),
		"price":   pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true},
		"views":   int32(7),
		"title":   "Dr Who",
		"created": created,
		"slug":    "dr-who",
	})
	require.NoError(t, err)

	rec, err := tbl.DecodeRecord(encoded)
	require.NoError(t, err)
	assert.Equal(t, sluggable.Map{
		"id":      articleID.String(),
		"price":   "12.50",
		"views":   "7",
		"title":   "Dr Who",
		"created": "2025-03-01T12:00:00Z",
		"slug":    "dr-who",
	}, rec)

	// A decoded row still addresses its row by key.
	rec["slug"] = "dr-who-2"
	require.NoError(t, tbl.Save(context.Background(), rec))
	assert.Equal(t, []any{"dr-who-2", articleID.String()}, q.execs[0].args)

	_, err = tbl.DecodeRecord([]byte("{"))
	assert.ErrorIs(t, err, ErrQueryFailed)
}
