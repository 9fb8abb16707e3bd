package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Table records a table or collection name under the key "table".
func Table(name string) slog.Attr {
	return slog.String("table", name)
}

// Field records the slug field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Slug records a slug value under the key "slug".
func Slug(value string) slog.Attr {
	return slog.String("slug", value)
}

// PreviousSlug records the value a slug replaced under the key "previous_slug".
func PreviousSlug(value string) slog.Attr {
	return slog.String("previous_slug", value)
}

// Key records a record's primary key under the key "key".
// If key is nil, it returns an empty Attr.
func Key(key any) slog.Attr {
	if key == nil {
		return slog.Attr{}
	}
	return slog.Any("key", key)
}

// Count records a number of processed items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
