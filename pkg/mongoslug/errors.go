package mongoslug

import "errors"

var (
	ErrInvalidCollection = errors.New("invalid collection binding")
	ErrDuplicateSlug     = errors.New("slug already used by another document")
	ErrQueryFailed       = errors.New("slug query failed")
)
