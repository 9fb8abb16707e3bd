package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrEmptyConnectionURL     = errors.New("empty mongo connection url, use MONGODB_URL env var")
	ErrEmptyDatabase          = errors.New("empty mongo database name, use MONGODB_DATABASE env var")
)
