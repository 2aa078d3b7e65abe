package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cast"

	"github.com/ledgerlite/core/internal/domain/entities"
	"github.com/ledgerlite/core/internal/infrastructure/logger"
)

// FileTransactionRepository keeps the authoritative transaction list in
// memory and mirrors it to a JSON file on disk. A single mutex serializes
// all list access and file I/O within the process; concurrent writers in
// other processes are not coordinated.
type FileTransactionRepository struct {
	path   string
	logger *logger.Logger

	mu      sync.Mutex
	records []entities.Transaction
}

// NewFileTransactionRepository opens (or creates) the data file at path
// and loads its contents. Malformed persisted state never fails the open:
// unreadable or invalid content degrades to the default seed list, and
// individually broken records are dropped. Only real I/O errors (missing
// permissions, full disk) are returned.
func NewFileTransactionRepository(path string, appLogger *logger.Logger) (*FileTransactionRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &FileTransactionRepository{
		path:   path,
		logger: appLogger.WithComponent("transaction_repository"),
	}

	if err := repo.load(); err != nil {
		return nil, err
	}

	return repo, nil
}

// load reads the data file and rebuilds the in-memory list. Each recovery
// path is handled and logged separately: file absent, empty file, invalid
// JSON, wrong top-level shape, and per-record coercion failures.
func (r *FileTransactionRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Infow("Data file absent, seeding defaults", "path", r.path)
		return r.seedLocked()
	}
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		r.logger.Infow("Data file empty, seeding defaults", "path", r.path)
		return r.seedLocked()
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		if json.Valid(data) {
			r.logger.Warnw("Data file is not a JSON array, seeding defaults", "path", r.path)
		} else {
			r.logger.Warnw("Data file is not valid JSON, seeding defaults", "path", r.path, "error", err)
		}
		return r.seedLocked()
	}
	// A top-level "null" decodes into a nil slice without an error; it is
	// not an array and gets the same wrong-shape recovery.
	if raw == nil {
		r.logger.Warnw("Data file is not a JSON array, seeding defaults", "path", r.path)
		return r.seedLocked()
	}

	records, dropped := normalizeRecords(raw)
	r.records = records

	if dropped > 0 {
		r.logger.Warnw("Dropped malformed records from data file",
			"path", r.path,
			"dropped", dropped,
			"kept", len(records),
		)
	}

	// Rewrite whenever the cleaned list differs from what was read, so
	// the file always holds exactly the canonical record set.
	canonical, err := marshalTransactions(records)
	if err != nil {
		return fmt.Errorf("failed to serialize transactions: %w", err)
	}
	if !bytes.Equal(canonical, data) {
		if err := r.persistLocked(); err != nil {
			return err
		}
	}

	r.logger.Infow("Transactions loaded", "path", r.path, "count", len(records))
	return nil
}

// seedLocked replaces the in-memory list with the default seed and
// persists it. Caller must hold the mutex.
func (r *FileTransactionRepository) seedLocked() error {
	r.records = entities.DefaultTransactions()
	return r.persistLocked()
}

// persistLocked writes the full record list to a temporary file in the
// data directory, forces it to durable storage, then atomically renames
// it over the target path. A crash mid-write leaves the previous file
// intact; readers never observe a partial write. Caller must hold the
// mutex.
func (r *FileTransactionRepository) persistLocked() error {
	data, err := marshalTransactions(r.records)
	if err != nil {
		return fmt.Errorf("failed to serialize transactions: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".transactions-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set data file permissions: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	r.logger.Debugw("Transactions persisted", "path", r.path, "count", len(r.records))
	return nil
}

// marshalTransactions renders the canonical on-disk form: a pretty-printed
// JSON array with HTML escaping off so non-ASCII text is preserved as-is.
// A nil slice is written as an empty array, never null.
func marshalTransactions(records []entities.Transaction) ([]byte, error) {
	if records == nil {
		records = []entities.Transaction{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeRecords coerces each raw array element into a valid
// transaction. Elements that are not objects, miss a required field, or
// hold values that cannot be converted are dropped. Returns the cleaned
// list and how many elements were dropped.
func normalizeRecords(raw []json.RawMessage) ([]entities.Transaction, int) {
	records := make([]entities.Transaction, 0, len(raw))
	dropped := 0

	for _, element := range raw {
		tx, ok := normalizeRecord(element)
		if !ok {
			dropped++
			continue
		}
		records = append(records, tx)
	}

	return records, dropped
}

// normalizeRecord coerces a single raw element: id to a positive integer,
// date to a string, amount to a float64. cast handles the cross-type
// conversions the same way viper does for configuration values.
func normalizeRecord(raw json.RawMessage) (entities.Transaction, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return entities.Transaction{}, false
	}

	idVal, ok := obj["id"]
	if !ok || idVal == nil {
		return entities.Transaction{}, false
	}
	dateVal, ok := obj["date"]
	if !ok || dateVal == nil {
		return entities.Transaction{}, false
	}
	amountVal, ok := obj["amount"]
	if !ok || amountVal == nil {
		return entities.Transaction{}, false
	}

	id, err := cast.ToIntE(idVal)
	if err != nil || id < 1 {
		return entities.Transaction{}, false
	}
	date, err := cast.ToStringE(dateVal)
	if err != nil {
		return entities.Transaction{}, false
	}
	amount, err := cast.ToFloat64E(amountVal)
	if err != nil {
		return entities.Transaction{}, false
	}

	return entities.Transaction{ID: id, Date: date, Amount: amount}, true
}

// nextIDLocked derives the next id as one greater than the current
// maximum, or 1 for an empty list. Deleting the highest-id record makes
// its id eligible for reuse; that matches the store's historical behavior
// and is relied on by callers. Caller must hold the mutex.
func (r *FileTransactionRepository) nextIDLocked() int {
	maxID := 0
	for i := range r.records {
		if r.records[i].ID > maxID {
			maxID = r.records[i].ID
		}
	}
	return maxID + 1
}

// List returns a snapshot copy of all transactions in stored order.
func (r *FileTransactionRepository) List(ctx context.Context) ([]entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]entities.Transaction, len(r.records))
	copy(snapshot, r.records)
	return snapshot, nil
}

// GetByID returns the transaction with the given id.
func (r *FileTransactionRepository) GetByID(ctx context.Context, id int) (*entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			tx := r.records[i]
			return &tx, nil
		}
	}
	return nil, entities.ErrTransactionNotFound
}

// Create assigns a new id, appends the record and persists the full list.
// On a persist failure the append is rolled back so memory and disk stay
// consistent.
func (r *FileTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = r.nextIDLocked()
	r.records = append(r.records, *tx)

	if err := r.persistLocked(); err != nil {
		r.records = r.records[:len(r.records)-1]
		return err
	}
	return nil
}

// Update overwrites the date and amount of the stored record with tx.ID
// and persists. A missing id returns entities.ErrTransactionNotFound
// without touching the file.
func (r *FileTransactionRepository) Update(ctx context.Context, tx *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID != tx.ID {
			continue
		}

		previous := r.records[i]
		r.records[i].Date = tx.Date
		r.records[i].Amount = tx.Amount

		if err := r.persistLocked(); err != nil {
			r.records[i] = previous
			return err
		}
		return nil
	}

	return entities.ErrTransactionNotFound
}

// Delete removes the record with the given id and persists. A missing id
// is a silent no-op; the file is rewritten only when a removal occurred.
func (r *FileTransactionRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID != id {
			continue
		}

		removed := r.records[i]
		r.records = append(r.records[:i], r.records[i+1:]...)

		if err := r.persistLocked(); err != nil {
			r.records = append(r.records[:i], append([]entities.Transaction{removed}, r.records[i:]...)...)
			return err
		}
		return nil
	}

	return nil
}

// Count returns the number of stored transactions.
func (r *FileTransactionRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

// Reset discards all records and rewrites the default seed list.
func (r *FileTransactionRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seedLocked()
}

// HealthCheck verifies the data file exists and holds a valid JSON array.
func (r *FileTransactionRepository) HealthCheck(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("data file unreadable: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("data file corrupted: %w", err)
	}
	return nil
}

// Path returns the location of the backing data file.
func (r *FileTransactionRepository) Path() string {
	return r.path
}
