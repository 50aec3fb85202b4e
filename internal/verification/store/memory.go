package store

import (
	"context"
	"sync"

	"tradeverify/internal/verification/models"
	"tradeverify/pkg/platform/sentinel"
)

// InMemory is the default store for single-instance deployments and tests.
type InMemory struct {
	mu        sync.RWMutex
	results   map[string]*models.Result
	byInvoice map[string][]string
}

func NewInMemory() *InMemory {
	return &InMemory{
		results:   make(map[string]*models.Result),
		byInvoice: make(map[string][]string),
	}
}

func (s *InMemory) Save(_ context.Context, result *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[result.VerificationID]; exists {
		return sentinel.ErrConflict
	}
	s.results[result.VerificationID] = clone(result)
	s.byInvoice[result.InvoiceID] = append(s.byInvoice[result.InvoiceID], result.VerificationID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, verificationID string) (*models.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[verificationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(r), nil
}

func (s *InMemory) ListByInvoice(_ context.Context, invoiceID string) ([]*models.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byInvoice[invoiceID]
	out := make([]*models.Result, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(s.results[id]))
	}
	sortOldestFirst(out)
	return out, nil
}
