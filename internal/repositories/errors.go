package repositories

import "github.com/pkg/errors"

// ErrNotFound is returned, wrapped, when no record matches the requested identifier.
var ErrNotFound = errors.New("record not found")
