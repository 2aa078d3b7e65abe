package entities

import "errors"

// Common errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount is not a valid number")
	ErrInvalidID           = errors.New("invalid transaction id")
)

// Transaction represents a single ledger entry. The date is a free-form
// string supplied by the caller; no format is enforced beyond being a
// string. The sign of the amount carries no enforced meaning.
type Transaction struct {
	ID     int     `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// IsDebit reports whether the amount is negative.
func (t *Transaction) IsDebit() bool {
	return t.Amount < 0
}

// IsCredit reports whether the amount is zero or positive.
func (t *Transaction) IsCredit() bool {
	return !t.IsDebit()
}

// DefaultTransactions returns the fixed seed list written whenever no
// valid persisted state exists. Callers receive a fresh slice and may
// mutate it freely.
func DefaultTransactions() []Transaction {
	return []Transaction{
		{ID: 1, Date: "2023-06-01", Amount: 100},
		{ID: 2, Date: "2023-06-02", Amount: -200},
		{ID: 3, Date: "2023-06-03", Amount: 300},
	}
}
