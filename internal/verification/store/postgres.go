package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"tradeverify/internal/verification/models"
	"tradeverify/pkg/platform/sentinel"
	"tradeverify/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists results in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, result *models.Result) error {
	checks, err := json.Marshal(result.Checks)
	if err != nil {
		return fmt.Errorf("encode checks: %w", err)
	}
	query := `
		INSERT INTO verification_results (
			verification_id, invoice_id, is_valid, risk_score, credit_rating,
			checks, details, recommendations, verified_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.Conn(ctx, s.db).ExecContext(ctx, query,
		result.VerificationID,
		result.InvoiceID,
		result.IsValid,
		result.RiskScore,
		string(result.CreditRating),
		checks,
		pq.Array(nonNil(result.Details)),
		pq.Array(nonNil(result.Recommendations)),
		result.Timestamp,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert verification result: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT verification_id, invoice_id, is_valid, risk_score, credit_rating,
		checks, details, recommendations, verified_at
	FROM verification_results
`

func (s *PostgresStore) FindByID(ctx context.Context, verificationID string) (*models.Result, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, selectColumns+` WHERE verification_id = $1`, verificationID)
	result, err := scanPostgres(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification result: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*models.Result, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		selectColumns+` WHERE invoice_id = $1 ORDER BY verified_at, verification_id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list verification results: %w", err)
	}
	defer rows.Close()

	out := []*models.Result{}
	for rows.Next() {
		result, err := scanPostgres(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification result: %w", err)
		}
		out = append(out, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification results: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPostgres(row scanner) (*models.Result, error) {
	var (
		r      models.Result
		rating string
		checks []byte
	)
	err := row.Scan(
		&r.VerificationID,
		&r.InvoiceID,
		&r.IsValid,
		&r.RiskScore,
		&rating,
		&checks,
		pq.Array(&r.Details),
		pq.Array(&r.Recommendations),
		&r.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	r.CreditRating = models.CreditRating(rating)
	if err := json.Unmarshal(checks, &r.Checks); err != nil {
		return nil, fmt.Errorf("decode checks: %w", err)
	}
	r.Timestamp = r.Timestamp.UTC()
	return &r, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
