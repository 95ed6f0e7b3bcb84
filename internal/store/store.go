// Package store is the engine's persistence boundary. The ingestion engine
// never holds persistence state itself; it depends on this interface and on
// nothing else about where transactions live.
package store

import (
	"context"
	"errors"

	"github.com/wealthmate/wealthmate/internal/domain"
)

// ErrNotFound is returned when a transaction id does not exist.
var ErrNotFound = errors.New("store: transaction not found")

// TransactionStore is the external transaction-store collaborator. The
// engine depends only on Insert succeeding-or-failing per call; it does not
// require atomic multi-row transactions from the store.
type TransactionStore interface {
	// Insert commits one transaction and returns it as stored.
	Insert(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)

	// ListByOwner returns the owner's transactions, newest date first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error)

	// Delete removes one transaction by id.
	Delete(ctx context.Context, id string) error

	// PurgeOwner removes every transaction belonging to the owner.
	PurgeOwner(ctx context.Context, ownerID string) error
}
