package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthmate/wealthmate/internal/domain"
)

// Postgres is a TransactionStore backed by a Postgres pool.
//
// Expected schema:
//
//	CREATE TABLE transactions (
//	    id          uuid PRIMARY KEY,
//	    owner_id    text NOT NULL,
//	    description text NOT NULL,
//	    amount      numeric NOT NULL CHECK (amount > 0),
//	    category    text NOT NULL,
//	    date        date NOT NULL,
//	    kind        text NOT NULL
//	);
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool for the given DSN and pings it.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres store: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres store: ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the underlying pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Insert implements TransactionStore.
func (p *Postgres) Insert(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	query := sq.Insert("transactions").
		Columns("id", "owner_id", "description", "amount", "category", "date", "kind").
		Values(tx.ID, tx.OwnerID, tx.Description, tx.Amount, tx.Category, tx.Date, string(tx.Kind)).
		PlaceholderFormat(sq.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("postgres store: build insert: %w", err)
	}
	if _, err := p.pool.Exec(ctx, sql, args...); err != nil {
		return domain.Transaction{}, fmt.Errorf("postgres store: insert: %w", err)
	}
	return tx, nil
}

// ListByOwner implements TransactionStore.
func (p *Postgres) ListByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	query := sq.Select("id", "owner_id", "description", "amount", "category", "date", "kind").
		From("transactions").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("date DESC", "id").
		PlaceholderFormat(sq.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres store: build select: %w", err)
	}

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres store: select: %w", err)
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var kind string
		if err := rows.Scan(&tx.ID, &tx.OwnerID, &tx.Description, &tx.Amount, &tx.Category, &tx.Date, &kind); err != nil {
			return nil, fmt.Errorf("postgres store: scan: %w", err)
		}
		tx.Kind = domain.Kind(kind)
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres store: rows: %w", err)
	}
	return result, nil
}

// Delete implements TransactionStore.
func (p *Postgres) Delete(ctx context.Context, id string) error {
	query := sq.Delete("transactions").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("postgres store: build delete: %w", err)
	}
	tag, err := p.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("postgres store: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeOwner implements TransactionStore.
func (p *Postgres) PurgeOwner(ctx context.Context, ownerID string) error {
	query := sq.Delete("transactions").
		Where(sq.Eq{"owner_id": ownerID}).
		PlaceholderFormat(sq.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("postgres store: build purge: %w", err)
	}
	if _, err := p.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("postgres store: purge: %w", err)
	}
	return nil
}

// Ensure Postgres implements TransactionStore.
var _ TransactionStore = (*Postgres)(nil)
