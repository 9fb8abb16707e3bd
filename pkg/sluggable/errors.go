package sluggable

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid slug configuration")
	ErrInvalidRecord = errors.New("value cannot be used as a record")
	ErrSaveFailed    = errors.New("failed to save record after slug update")
	ErrNotFound      = errors.New("no record with this slug")
	ErrMissingKey    = errors.New("record has no primary key value")
)
