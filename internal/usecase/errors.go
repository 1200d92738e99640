package usecase

import "github.com/cockroachdb/errors"

var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
