package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/altanbooks/altanbooks/internal/shared"
)

// PgRepository is the pgx-backed transaction and settings source.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository constructs the repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// TransactionsInRange loads the caller's transactions for the inclusive
// window, category names joined in, ordered by date ascending.
func (r *PgRepository) TransactionsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]Transaction, error) {
	if r == nil || r.pool == nil {
		return nil, fmt.Errorf("finance repo not initialised")
	}
	const query = `
		SELECT t.id, t.date, t.type, t.amount::text, t.category_id,
		       COALESCE(c.name, ''), COALESCE(t.account, ''),
		       COALESCE(t.document_no, ''), COALESCE(t.description, ''),
		       COALESCE(t.status, '')
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date ASC, t.created_at ASC`
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		var (
			tx     Transaction
			txType string
			amount string
		)
		if err := rows.Scan(&tx.ID, &tx.Date, &txType, &amount, &tx.CategoryID,
			&tx.CategoryName, &tx.Account, &tx.DocumentNo, &tx.Description, &tx.Status); err != nil {
			return nil, err
		}
		tx.Type = TransactionType(txType)
		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount for %s: %w", tx.ID, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// CompanySettings loads the caller's tax profile.
func (r *PgRepository) CompanySettings(ctx context.Context, userID uuid.UUID) (CompanySettings, error) {
	if r == nil || r.pool == nil {
		return CompanySettings{}, fmt.Errorf("finance repo not initialised")
	}
	const query = `
		SELECT COALESCE(company_name, ''), COALESCE(registration_number, ''),
		       COALESCE(tax_number, ''), COALESCE(vat_registered, FALSE),
		       COALESCE(vat_rate, 0)::text, COALESCE(income_tax_rate, 0)::text,
		       COALESCE(ebarimt_test_mode, TRUE), COALESCE(ebarimt_api_key, '')
		FROM company_settings
		WHERE user_id = $1`
	var (
		settings      CompanySettings
		vatRate       string
		incomeTaxRate string
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&settings.CompanyName, &settings.RegistrationNumber, &settings.TaxNumber,
		&settings.VATRegistered, &vatRate, &incomeTaxRate,
		&settings.EbarimtTestMode, &settings.EbarimtAPIKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CompanySettings{}, shared.ErrNotFound
		}
		return CompanySettings{}, err
	}
	if settings.VATRate, err = decimal.NewFromString(vatRate); err != nil {
		return CompanySettings{}, fmt.Errorf("parse vat rate: %w", err)
	}
	if settings.IncomeTaxRate, err = decimal.NewFromString(incomeTaxRate); err != nil {
		return CompanySettings{}, fmt.Errorf("parse income tax rate: %w", err)
	}
	return settings, nil
}

// Transaction loads a single transaction owned by the caller.
func (r *PgRepository) Transaction(ctx context.Context, userID, id uuid.UUID) (Transaction, error) {
	if r == nil || r.pool == nil {
		return Transaction{}, fmt.Errorf("finance repo not initialised")
	}
	const query = `
		SELECT t.id, t.date, t.type, t.amount::text, t.category_id,
		       COALESCE(c.name, ''), COALESCE(t.account, ''),
		       COALESCE(t.document_no, ''), COALESCE(t.description, ''),
		       COALESCE(t.status, '')
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.id = $2`
	var (
		tx     Transaction
		txType string
		amount string
	)
	err := r.pool.QueryRow(ctx, query, userID, id).Scan(&tx.ID, &tx.Date, &txType, &amount,
		&tx.CategoryID, &tx.CategoryName, &tx.Account, &tx.DocumentNo, &tx.Description, &tx.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, shared.ErrNotFound
		}
		return Transaction{}, err
	}
	tx.Type = TransactionType(txType)
	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return Transaction{}, fmt.Errorf("parse amount for %s: %w", tx.ID, err)
	}
	return tx, nil
}

// ActiveUserIDs lists users with at least one transaction dated inside the
// window. Used by the report warmup job.
func (r *PgRepository) ActiveUserIDs(ctx context.Context, start, end time.Time) ([]uuid.UUID, error) {
	if r == nil || r.pool == nil {
		return nil, fmt.Errorf("finance repo not initialised")
	}
	const query = `
		SELECT DISTINCT user_id
		FROM transactions
		WHERE date >= $1 AND date <= $2`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
