// Package users holds the user-row model and the repository that reads and
// updates rows in the external relational store.
package users

import "context"

// Repository is the read/update contract with the external user store.
//
// Implementations keep every operation self-contained: a connection is
// acquired, one statement runs, and the connection is released before the
// call returns. Transport failures are reported as errors wrapping
// common.ErrStoreUnavailable.
type Repository interface {
	// FindByUsername returns the single row whose username equals the
	// argument, or common.ErrNotFound if no row matches.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// SearchByUsername returns every row whose username contains the
	// fragment, case-insensitively, in store order.
	SearchByUsername(ctx context.Context, fragment string) ([]*User, error)

	// ListAll returns every row in store order.
	ListAll(ctx context.Context) ([]*User, error)

	// Count returns the total number of rows.
	Count(ctx context.Context) (int64, error)

	// UpdatePasswordHash writes newHash for the identified row and reports
	// how many rows were affected. Anything other than exactly one row is a
	// failed update; the caller decides how to log it.
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) (int64, error)
}
