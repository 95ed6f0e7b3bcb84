package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wealthmate/wealthmate/internal/domain"
)

// Memory is an in-memory TransactionStore, safe for concurrent use. Data is
// lost on restart; it backs tests and database-less development runs.
type Memory struct {
	mu  sync.RWMutex
	txs map[string]domain.Transaction
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{txs: make(map[string]domain.Transaction)}
}

// Insert implements TransactionStore.
func (m *Memory) Insert(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	if tx.ID == "" {
		return domain.Transaction{}, fmt.Errorf("memory store: transaction id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.txs[tx.ID]; exists {
		return domain.Transaction{}, fmt.Errorf("memory store: duplicate transaction id %s", tx.ID)
	}
	m.txs[tx.ID] = tx
	return tx, nil
}

// ListByOwner implements TransactionStore.
func (m *Memory) ListByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []domain.Transaction
	for _, tx := range m.txs {
		if tx.OwnerID == ownerID {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete implements TransactionStore.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.txs[id]; !exists {
		return ErrNotFound
	}
	delete(m.txs, id)
	return nil
}

// PurgeOwner implements TransactionStore.
func (m *Memory) PurgeOwner(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, tx := range m.txs {
		if tx.OwnerID == ownerID {
			delete(m.txs, id)
		}
	}
	return nil
}

// Ensure Memory implements TransactionStore.
var _ TransactionStore = (*Memory)(nil)
