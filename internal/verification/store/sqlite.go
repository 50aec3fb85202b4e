package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"tradeverify/internal/verification/models"
	"tradeverify/pkg/platform/sentinel"
	"tradeverify/pkg/platform/tx"
)

// timeLayout is fixed width so verified_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore persists results in SQLite. List columns hold JSON arrays.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(ctx context.Context, result *models.Result) error {
	checks, err := json.Marshal(result.Checks)
	if err != nil {
		return fmt.Errorf("encode checks: %w", err)
	}
	details, err := json.Marshal(nonNil(result.Details))
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}
	recommendations, err := json.Marshal(nonNil(result.Recommendations))
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}

	_, err = tx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO verification_results (
			verification_id, invoice_id, is_valid, risk_score, credit_rating,
			checks, details, recommendations, verified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.VerificationID,
		result.InvoiceID,
		result.IsValid,
		result.RiskScore,
		string(result.CreditRating),
		string(checks),
		string(details),
		string(recommendations),
		result.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert verification result: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, verificationID string) (*models.Result, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, selectColumns+` WHERE verification_id = ?`, verificationID)
	result, err := scanSQLite(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification result: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*models.Result, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		selectColumns+` WHERE invoice_id = ? ORDER BY verified_at, verification_id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list verification results: %w", err)
	}
	defer rows.Close()

	out := []*models.Result{}
	for rows.Next() {
		result, err := scanSQLite(rows)
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

func scanSQLite(row scanner) (*models.Result, error) {
	var (
		r                                    models.Result
		rating, checks, details, recs, stamp string
	)
	if err := row.Scan(&r.VerificationID, &r.InvoiceID, &r.IsValid, &r.RiskScore, &rating,
		&checks, &details, &recs, &stamp); err != nil {
		return nil, err
	}
	r.CreditRating = models.CreditRating(rating)
	if err := json.Unmarshal([]byte(checks), &r.Checks); err != nil {
		return nil, fmt.Errorf("decode checks: %w", err)
	}
	if err := json.Unmarshal([]byte(details), &r.Details); err != nil {
		return nil, fmt.Errorf("decode details: %w", err)
	}
	if err := json.Unmarshal([]byte(recs), &r.Recommendations); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	ts, err := time.Parse(timeLayout, stamp)
	if err != nil {
		return nil, fmt.Errorf("decode verified_at: %w", err)
	}
	r.Timestamp = ts
	return &r, nil
}
