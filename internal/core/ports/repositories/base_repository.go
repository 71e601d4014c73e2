package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside a single storage transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, writer TransactionWriter) error) error
}
