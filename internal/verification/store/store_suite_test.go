package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"tradeverify/internal/verification/models"
	"tradeverify/pkg/platform/sentinel"
)

// conformanceSuite runs the same behaviour checks against every backend.
type conformanceSuite struct {
	suite.Suite
	ctx   context.Context
	store Store
	reset func()
}

func (s *conformanceSuite) SetupTest() {
	s.ctx = context.Background()
	if s.reset != nil {
		s.reset()
	}
}

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newResult(invoiceID string, offset time.Duration) *models.Result {
	return &models.Result{
		VerificationID: uuid.NewString(),
		InvoiceID:      invoiceID,
		IsValid:        true,
		RiskScore:      35,
		CreditRating:   models.RatingA,
		Checks: map[models.CheckName]models.Status{
			models.CheckDocument:   models.StatusVerified,
			models.CheckSanctions:  models.StatusClear,
			models.CheckFraud:      models.StatusPassed,
			models.CheckCommodity:  models.StatusApproved,
			models.CheckGeographic: models.StatusApproved,
			models.CheckAmount:     models.StatusApproved,
		},
		Details:         []string{"Document integrity verified", "Cross-border transaction"},
		Recommendations: []string{"Eligible for standard financing terms"},
		Timestamp:       baseTime.Add(offset),
	}
}

func (s *conformanceSuite) TestSaveAndFind() {
	s.Run("round-trips every field", func() {
		want := newResult("INV-"+uuid.NewString(), 0)
		s.Require().NoError(s.store.Save(s.ctx, want))

		got, err := s.store.FindByID(s.ctx, want.VerificationID)
		s.Require().NoError(err)
		s.Equal(want, got)
	})

	s.Run("empty lists survive", func() {
		want := newResult("INV-"+uuid.NewString(), 0)
		want.Recommendations = []string{}
		s.Require().NoError(s.store.Save(s.ctx, want))

		got, err := s.store.FindByID(s.ctx, want.VerificationID)
		s.Require().NoError(err)
		s.Empty(got.Recommendations)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.store.FindByID(s.ctx, uuid.NewString())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("saving the same id twice conflicts", func() {
		r := newResult("INV-"+uuid.NewString(), 0)
		s.Require().NoError(s.store.Save(s.ctx, r))
		s.ErrorIs(s.store.Save(s.ctx, r), sentinel.ErrConflict)
	})
}

func (s *conformanceSuite) TestListByInvoice() {
	invoice := "INV-" + uuid.NewString()
	later := newResult(invoice, time.Minute)
	earlier := newResult(invoice, 0)
	other := newResult("INV-"+uuid.NewString(), 0)
	for _, r := range []*models.Result{later, earlier, other} {
		s.Require().NoError(s.store.Save(s.ctx, r))
	}

	got, err := s.store.ListByInvoice(s.ctx, invoice)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(earlier.VerificationID, got[0].VerificationID)
	s.Equal(later.VerificationID, got[1].VerificationID)

	none, err := s.store.ListByInvoice(s.ctx, "INV-unknown")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}
