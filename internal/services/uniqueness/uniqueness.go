// Package uniqueness guards unique fields (newsletter email, blog slug).
// The lookup is a fast path; the unique index in the database is what
// actually decides, so a lost race surfaces through FromStorage as the same
// conflict.
package uniqueness

import (
	"context"
	"errors"
	"fmt"

	"psycenter/internal/lib/apperr"
	"psycenter/internal/storage"
)

// Lookup fetches a record by its unique key and returns storage.ErrNotFound
// when there is none.
type Lookup func(ctx context.Context) error

// Ensure returns conflict when lookup finds a record.
func Ensure(ctx context.Context, lookup Lookup, conflict *apperr.Error) error {
	const op = "uniqueness.Ensure"

	err := lookup(ctx)
	switch {
	case err == nil:
		return conflict
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// FromStorage turns a unique index rejection into conflict and leaves any
// other error untouched.
func FromStorage(err error, conflict *apperr.Error) error {
	if errors.Is(err, storage.ErrAlreadyExists) {
		return apperr.Wrap(conflict.Kind, conflict.Message, err)
	}
	return err
}
