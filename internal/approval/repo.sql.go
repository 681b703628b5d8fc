package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altanbooks/altanbooks/internal/finance"
	"github.com/altanbooks/altanbooks/internal/shared"
)

// PgRepository persists approval decisions via pgx.
type PgRepository struct {
	pool        *pgxpool.Pool
	financeRepo *finance.PgRepository
}

// NewPgRepository constructs the repository, delegating transaction reads to
// the finance repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool, financeRepo: finance.NewPgRepository(pool)}
}

// Transaction loads a transaction owned by the caller.
func (r *PgRepository) Transaction(ctx context.Context, userID, id uuid.UUID) (finance.Transaction, error) {
	if r == nil || r.financeRepo == nil {
		return finance.Transaction{}, fmt.Errorf("approval repo not initialised")
	}
	return r.financeRepo.Transaction(ctx, userID, id)
}

// SetStatus records the decision on the transaction row. A zero-row update
// means the transaction disappeared between read and write.
func (r *PgRepository) SetStatus(ctx context.Context, userID, id uuid.UUID, status, decidedBy string, decidedAt time.Time) error {
	if r == nil || r.pool == nil {
		return fmt.Errorf("approval repo not initialised")
	}
	const query = `
		UPDATE transactions
		SET status = $1, approved_by = $2, approved_at = $3
		WHERE user_id = $4 AND id = $5`
	tag, err := r.pool.Exec(ctx, query, status, decidedBy, decidedAt, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ProfileName resolves the caller's display name.
func (r *PgRepository) ProfileName(ctx context.Context, userID uuid.UUID) (string, error) {
	if r == nil || r.pool == nil {
		return "", fmt.Errorf("approval repo not initialised")
	}
	const query = `SELECT COALESCE(full_name, '') FROM profiles WHERE id = $1`
	var name string
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return name, nil
}
