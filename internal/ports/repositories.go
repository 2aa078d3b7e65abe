package ports

import (
	"context"

	"github.com/ledgerlite/core/internal/domain/entities"
)

// TransactionRepository defines the interface for transaction persistence.
// Implementations own the authoritative record list and must keep the
// backing store synchronized with it: every successful mutation completes
// a full rewrite of the persisted state before returning.
type TransactionRepository interface {
	// List returns a snapshot of all transactions in stored order.
	List(ctx context.Context) ([]entities.Transaction, error)

	// GetByID returns the transaction with the given id, or
	// entities.ErrTransactionNotFound.
	GetByID(ctx context.Context, id int) (*entities.Transaction, error)

	// Create assigns tx.ID (max existing id + 1, or 1 when empty),
	// appends the record and persists.
	Create(ctx context.Context, tx *entities.Transaction) error

	// Update overwrites the date and amount of the record with tx.ID and
	// persists. Returns entities.ErrTransactionNotFound when the id is
	// absent; nothing is written in that case.
	Update(ctx context.Context, tx *entities.Transaction) error

	// Delete removes the record with the given id. A missing id is a
	// silent no-op and does not touch the backing store.
	Delete(ctx context.Context, id int) error

	// Count returns the number of stored transactions.
	Count(ctx context.Context) (int, error)

	// Reset discards all records and rewrites the default seed list.
	Reset(ctx context.Context) error

	// HealthCheck verifies the backing store is readable and valid.
	HealthCheck(ctx context.Context) error
}
