package services

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"github.com/ledgerlite/core/internal/domain/entities"
	"github.com/ledgerlite/core/internal/infrastructure/logger"
	"github.com/ledgerlite/core/internal/ports"
)

// TransactionService handles transaction CRUD operations
type TransactionService struct {
	repo   ports.TransactionRepository
	logger *logger.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo ports.TransactionRepository, appLogger *logger.Logger) *TransactionService {
	return &TransactionService{
		repo:   repo,
		logger: appLogger,
	}
}

// ListTransactions returns all transactions in stored order.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]entities.Transaction, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return records, nil
}

// GetTransaction retrieves a transaction by id.
func (s *TransactionService) GetTransaction(ctx context.Context, id int) (*entities.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// CreateTransaction validates the request, assigns an id and persists the
// new record. An amount that cannot be converted to a number fails with
// entities.ErrInvalidAmount and nothing is written.
func (s *TransactionService) CreateTransaction(ctx context.Context, req ports.CreateTransactionRequest) (*entities.Transaction, error) {
	amount, err := coerceAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	tx := &entities.Transaction{
		Date:   req.Date,
		Amount: amount,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.logger.Infow("Transaction created", "transaction_id", tx.ID, "date", tx.Date, "amount", tx.Amount)
	return tx, nil
}

// UpdateTransaction overwrites the date and amount of an existing record.
// A missing id returns entities.ErrTransactionNotFound without a write.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id int, req ports.UpdateTransactionRequest) (*entities.Transaction, error) {
	amount, err := coerceAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	tx := &entities.Transaction{
		ID:     id,
		Date:   req.Date,
		Amount: amount,
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Infow("Transaction updated", "transaction_id", tx.ID, "date", tx.Date, "amount", tx.Amount)
	return tx, nil
}

// DeleteTransaction removes a transaction by id. Deleting a nonexistent
// id is a no-op, not an error.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.Infow("Transaction deleted", "transaction_id", id)
	return nil
}

// coerceAmount converts the caller-supplied amount to a float64. HTML
// forms deliver strings, the JSON API delivers numbers; both are
// accepted. Empty or unconvertible values fail with ErrInvalidAmount.
func coerceAmount(value interface{}) (float64, error) {
	if value == nil {
		return 0, entities.ErrInvalidAmount
	}
	if str, ok := value.(string); ok && str == "" {
		return 0, entities.ErrInvalidAmount
	}

	amount, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, entities.ErrInvalidAmount
	}
	return amount, nil
}
