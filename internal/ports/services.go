package ports

import (
	"context"

	"github.com/ledgerlite/core/internal/domain/entities"
)

// TransactionService interface for transaction CRUD operations
type TransactionService interface {
	ListTransactions(ctx context.Context) ([]entities.Transaction, error)
	GetTransaction(ctx context.Context, id int) (*entities.Transaction, error)
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*entities.Transaction, error)
	UpdateTransaction(ctx context.Context, id int, req UpdateTransactionRequest) (*entities.Transaction, error)
	DeleteTransaction(ctx context.Context, id int) error
}

// CreateTransactionRequest carries caller-supplied fields for a new
// transaction. Amount is left untyped: HTML forms deliver strings and the
// JSON API delivers numbers, and the service coerces either to float64.
// No required tag on Amount: zero is a legitimate value, and missing or
// unconvertible amounts are rejected by the service's coercion.
type CreateTransactionRequest struct {
	Date   string      `json:"date" form:"date" validate:"required"`
	Amount interface{} `json:"amount" form:"amount"`
}

// UpdateTransactionRequest carries replacement fields for an existing
// transaction. Both fields are overwritten on a successful update.
type UpdateTransactionRequest struct {
	Date   string      `json:"date" form:"date" validate:"required"`
	Amount interface{} `json:"amount" form:"amount"`
}
