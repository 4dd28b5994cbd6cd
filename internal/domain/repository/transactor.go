package repository

import "context"

// Transactor runs fn inside a single database transaction. Repositories
// resolve the transaction handle from the context, so every repository call
// made within fn shares one transaction: if fn returns an error, nothing it
// wrote survives.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
