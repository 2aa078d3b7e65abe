package services

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ledgerlite/core/internal/adapters/repository"
	"github.com/ledgerlite/core/internal/domain/entities"
	"github.com/ledgerlite/core/internal/infrastructure/logger"
	"github.com/ledgerlite/core/internal/ports"
)

func newTestService(t *testing.T) *TransactionService {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transactions.json")
	repo, err := repository.NewFileTransactionRepository(path, logger.NewNop())
	if err != nil {
		t.Fatalf("NewFileTransactionRepository: %v", err)
	}
	return NewTransactionService(repo, logger.NewNop())
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    float64
		wantErr bool
	}{
		{"float", 50.5, 50.5, false},
		{"int", 42, 42, false},
		{"numeric string", "12.25", 12.25, false},
		{"negative string", "-250", -250, false},
		{"integer string", "300", 300, false},
		{"word", "fifty", 0, true},
		{"empty string", "", 0, true},
		{"nil", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceAmount(tt.value)
			if tt.wantErr {
				if !errors.Is(err, entities.ErrInvalidAmount) {
					t.Fatalf("coerceAmount(%v) err = %v, want ErrInvalidAmount", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("coerceAmount(%v): %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("coerceAmount(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestCreateTransactionInvalidAmount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTransaction(ctx, ports.CreateTransactionRequest{
		Date:   "2023-07-01",
		Amount: "not a number",
	})
	if !errors.Is(err, entities.ErrInvalidAmount) {
		t.Fatalf("CreateTransaction err = %v, want ErrInvalidAmount", err)
	}

	// Nothing may have been stored.
	records, err := svc.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if !reflect.DeepEqual(records, entities.DefaultTransactions()) {
		t.Errorf("records changed after rejected create: %+v", records)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateTransaction(context.Background(), 42, ports.UpdateTransactionRequest{
		Date:   "2023-07-01",
		Amount: "5",
	})
	if !errors.Is(err, entities.ErrTransactionNotFound) {
		t.Fatalf("UpdateTransaction err = %v, want ErrTransactionNotFound", err)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetTransaction(context.Background(), 99)
	if !errors.Is(err, entities.ErrTransactionNotFound) {
		t.Fatalf("GetTransaction err = %v, want ErrTransactionNotFound", err)
	}
}

func TestEndToEndScenario(t *testing.T) {
	// Starting from the default seed: create appends id 4, update rewrites
	// record 2 in place, delete removes record 1.
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, ports.CreateTransactionRequest{
		Date:   "2023-07-01",
		Amount: "50",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	want := entities.Transaction{ID: 4, Date: "2023-07-01", Amount: 50}
	if *created != want {
		t.Fatalf("created = %+v, want %+v", *created, want)
	}

	if _, err := svc.UpdateTransaction(ctx, 2, ports.UpdateTransactionRequest{
		Date:   "2023-06-02",
		Amount: "-250",
	}); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}

	if err := svc.DeleteTransaction(ctx, 1); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	records, err := svc.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}

	wantList := []entities.Transaction{
		{ID: 2, Date: "2023-06-02", Amount: -250},
		{ID: 3, Date: "2023-06-03", Amount: 300},
		{ID: 4, Date: "2023-07-01", Amount: 50},
	}
	if !reflect.DeepEqual(records, wantList) {
		t.Errorf("final records = %+v, want %+v", records, wantList)
	}
}

func TestDeleteTransactionMissingIDIsNoOp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.DeleteTransaction(ctx, 1234); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	records, err := svc.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("record count = %d, want 3", len(records))
	}
}
