// Package store persists verification results. Results are immutable, so
// stores only insert and read; saving an existing id is a conflict.
package store

import (
	"context"
	"maps"
	"slices"

	"tradeverify/internal/verification/models"
)

// Store is the persistence sink for verification results.
type Store interface {
	// Save inserts a result. It returns sentinel.ErrConflict when the
	// verification id already exists.
	Save(ctx context.Context, result *models.Result) error
	// FindByID returns sentinel.ErrNotFound for unknown ids.
	FindByID(ctx context.Context, verificationID string) (*models.Result, error)
	// ListByInvoice returns every stored result for the invoice, oldest first.
	// An unknown invoice yields an empty slice.
	ListByInvoice(ctx context.Context, invoiceID string) ([]*models.Result, error)
}

func clone(r *models.Result) *models.Result {
	c := *r
	c.Checks = maps.Clone(r.Checks)
	c.Details = slices.Clone(r.Details)
	c.Recommendations = slices.Clone(r.Recommendations)
	return &c
}

func sortOldestFirst(results []*models.Result) {
	slices.SortStableFunc(results, func(a, b *models.Result) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		if a.VerificationID < b.VerificationID {
			return -1
		}
		if a.VerificationID > b.VerificationID {
			return 1
		}
		return 0
	})
}
