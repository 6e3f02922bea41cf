package reservation

import (
	"context"
	"errors"
	"sync"

	"b200/internal/domain"
)

var errDiskFull = errors.New("disk full")

// memoryStore is an in-memory RowStore. failAfter > 0 makes the append
// numbered failAfter+1 (counted from the first call) fail.
type memoryStore struct {
	mu          sync.Mutex
	rows        []domain.Record
	appendCalls int
	failAfter   int
	loadErr     error
}

func (m *memoryStore) LoadAll(ctx context.Context) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.Record(nil), m.rows...), nil
}

func (m *memoryStore) Append(ctx context.Context, rec domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendCalls++
	if m.failAfter > 0 && m.appendCalls > m.failAfter {
		return errDiskFull
	}
	m.rows = append(m.rows, rec)
	return nil
}

// batchStore adds an all-or-nothing AppendAll to memoryStore.
type batchStore struct {
	memoryStore
	batchCalls int
	batchErr   error
}

func (b *batchStore) AppendAll(ctx context.Context, recs []domain.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.batchCalls++
	if b.batchErr != nil {
		return b.batchErr
	}
	b.rows = append(b.rows, recs...)
	return nil
}
