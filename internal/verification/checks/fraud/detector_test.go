package fraud

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeverify/internal/reference"
	"tradeverify/internal/verification/models"
)

func newDetector() *Detector {
	return New(reference.Default(), DefaultConfig())
}

func benignRequest(amount int64) models.Request {
	return models.Request{
		InvoiceID:       "INV-2001",
		Commodity:       "Electronics",
		Amount:          decimal.NewFromInt(amount),
		SupplierCountry: "Singapore",
		BuyerCountry:    "United States",
		ExporterName:    "Acme Electronics Pte Ltd",
		BuyerName:       "Contoso Inc",
	}
}

func TestDetectCleanRequestPasses(t *testing.T) {
	f := newDetector().Detect(benignRequest(250_000))
	assert.Equal(t, models.CheckFraud, f.Check)
	assert.Equal(t, models.StatusPassed, f.Status)
	assert.Zero(t, f.Score)
	assert.Empty(t, f.Indicators)
	assert.Equal(t, []string{"No fraud indicators detected"}, f.Details)
}

func TestDetectAmountPatterns(t *testing.T) {
	tests := []struct {
		name      string
		commodity string
		amount    string
		wantScore float64
		wantTags  []models.Indicator
	}{
		{"just below 10k is structuring and repunit", "Electronics", "9999", 30, []models.Indicator{models.IndicatorStructuring, models.IndicatorRepunitAmount}},
		{"just below 10k", "Electronics", "9600", 25, []models.Indicator{models.IndicatorStructuring}},
		{"just below 50k", "Electronics", "49800", 25, []models.Indicator{models.IndicatorStructuring}},
		{"band upper bound is exclusive", "Electronics", "10000", 0, nil},
		{"repunit multiple", "Electronics", "33333", 10, []models.Indicator{models.IndicatorRepunitAmount}},
		{"fractional amount is not a repunit multiple", "Electronics", "3333.5", 0, nil},
		{"round million", "Electronics", "3000000", 10, []models.Indicator{models.IndicatorRoundAmount}},
		{"round hundred thousand", "Electronics", "300000", 5, []models.Indicator{models.IndicatorRoundAmount}},
		{"low-value commodity, huge amount", "Cotton textiles", "20000001", 15, []models.Indicator{models.IndicatorValueMismatch}},
		{"high-value commodity, tiny amount", "Gold bullion", "500", 15, []models.Indicator{models.IndicatorValueMismatch}},
		{"zero amount raises nothing", "Gold bullion", "0", 0, nil},
	}

	d := newDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := benignRequest(0)
			req.Commodity = tt.commodity
			req.Amount = decimal.RequireFromString(tt.amount)

			f := d.Detect(req)
			assert.Equal(t, tt.wantScore, f.Score)
			assert.Equal(t, models.StatusPassed, f.Status)
			if tt.wantTags == nil {
				assert.Empty(t, f.Indicators)
				return
			}
			assert.Equal(t, tt.wantTags, f.Indicators)
		})
	}
}

func TestDetectEntityRisk(t *testing.T) {
	d := newDetector()

	t.Run("name score is capped and the worse name wins", func(t *testing.T) {
		req := benignRequest(250_000)
		req.ExporterName = "Phantom Offshore Fake Trading"
		req.BuyerName = "Ghost Traders"
		f := d.Detect(req)
		assert.Equal(t, 30.0, f.Score)
		assert.True(t, f.HasIndicator(models.IndicatorFraudKeyword))
	})

	t.Run("high-risk business", func(t *testing.T) {
		req := benignRequest(250_000)
		req.BuyerName = "Lucky Star Casino"
		f := d.Detect(req)
		assert.Equal(t, 10.0, f.Score)
		assert.Equal(t, []models.Indicator{models.IndicatorHighRiskEntity}, f.Indicators)
	})

	t.Run("keywords match whole words only", func(t *testing.T) {
		req := benignRequest(250_000)
		req.ExporterName = "Sunny Farms Cooperative"
		req.BuyerName = "Fakenham Foods"
		f := d.Detect(req)
		assert.Zero(t, f.Score)
	})

	t.Run("self dealing", func(t *testing.T) {
		req := benignRequest(250_000)
		req.ExporterName = "Acme Trading Co"
		req.BuyerName = "ACME Trading Co."
		f := d.Detect(req)
		assert.Equal(t, 25.0, f.Score)
		assert.Equal(t, []models.Indicator{models.IndicatorSelfDealing}, f.Indicators)
	})
}

func TestDetectShellAndCorridor(t *testing.T) {
	d := newDetector()

	req := benignRequest(250_000)
	req.ExporterName = "Global Capital Holdings"
	f := d.Detect(req)
	assert.Equal(t, 15.0, f.Score)
	assert.Equal(t, []models.Indicator{models.IndicatorShellCompany}, f.Indicators)

	req = benignRequest(250_000)
	req.SupplierCountry = "Panama"
	req.BuyerCountry = "British Virgin Islands"
	f = d.Detect(req)
	assert.Equal(t, 20.0, f.Score)
	assert.Equal(t, []models.Indicator{models.IndicatorHighRiskCorridor}, f.Indicators)

	// corridors are directional
	req.SupplierCountry, req.BuyerCountry = req.BuyerCountry, req.SupplierCountry
	f = d.Detect(req)
	assert.False(t, f.HasIndicator(models.IndicatorHighRiskCorridor))
}

func TestDetectFailsAboveThreshold(t *testing.T) {
	req := benignRequest(9_999)
	req.ExporterName = "Phantom Offshore Global Holdings"
	req.BuyerName = "Phantom Offshore Global Holdings Ltd"
	req.SupplierCountry = "Panama"
	req.BuyerCountry = "British Virgin Islands"

	f := newDetector().Detect(req)
	assert.Equal(t, models.StatusFailed, f.Status)
	assert.Equal(t, 100.0, f.Score)
	assert.Equal(t, []string{"Hold financing pending enhanced due diligence"}, f.Recommendations)
	for _, tag := range []models.Indicator{
		models.IndicatorFraudKeyword,
		models.IndicatorSelfDealing,
		models.IndicatorStructuring,
		models.IndicatorShellCompany,
		models.IndicatorHighRiskCorridor,
	} {
		assert.True(t, f.HasIndicator(tag), tag)
	}
}

func TestCheck(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		d := newDetector()
		req := benignRequest(9_999)
		first, err := d.Check(context.Background(), req)
		require.NoError(t, err)
		second, err := d.Check(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("without reference data", func(t *testing.T) {
		_, err := New(nil, DefaultConfig()).Check(context.Background(), benignRequest(1))
		assert.ErrorIs(t, err, ErrNoReferenceData)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newDetector().Check(ctx, benignRequest(1))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
