package slugcache

import "errors"

var (
	// ErrMiss is returned by a Backend when the key is absent or expired.
	ErrMiss          = errors.New("slugcache: cache miss")
	ErrInvalidCache  = errors.New("slugcache: invalid cache")
	ErrBackendFailed = errors.New("slugcache: backend failed")
)
