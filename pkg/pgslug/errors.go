package pgslug

import "errors"

var (
	ErrInvalidTable  = errors.New("invalid table binding")
	ErrDuplicateSlug = errors.New("slug already used by another row")
	ErrQueryFailed   = errors.New("slug query failed")
)
