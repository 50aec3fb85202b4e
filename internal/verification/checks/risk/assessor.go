// Package risk holds the commodity, geographic and amount risk assessments.
// Each assessment is pure and can be called on its own.
package risk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tradeverify/internal/reference"
	"tradeverify/internal/verification/models"
	"tradeverify/internal/verification/textmatch"
	pstrings "tradeverify/pkg/platform/strings"
)

// ErrNoReferenceData is returned when the assessor was built without data.
var ErrNoReferenceData = errors.New("risk: reference data not loaded")

// Tier adds Penalty when the amount is strictly greater than Above.
// Tier lists are ordered from the highest threshold down; the first match wins.
type Tier struct {
	Above   decimal.Decimal
	Penalty float64
}

func tier(above int64, penalty float64) Tier {
	return Tier{Above: decimal.NewFromInt(above), Penalty: penalty}
}

// Config holds the penalties and thresholds of the three assessments.
type Config struct {
	RestrictedCommodityPenalty float64
	CommodityTiers             []Tier

	HighRiskCountryPenalty float64
	CrossBorderPenalty     float64
	// GeographicThreshold is the total above which geography is HIGH_RISK.
	GeographicThreshold float64

	AmountTiers    []Tier
	AnomalyPenalty float64
	// AmountThreshold is the total above which the amount is HIGH_RISK.
	AmountThreshold float64
}

// DefaultConfig returns the production tiers.
func DefaultConfig() Config {
	return Config{
		RestrictedCommodityPenalty: 40,
		CommodityTiers: []Tier{
			tier(1_000_000_000, 15),
			tier(100_000_000, 10),
			tier(10_000_000, 5),
		},

		HighRiskCountryPenalty: 25,
		CrossBorderPenalty:     5,
		GeographicThreshold:    20,

		AmountTiers: []Tier{
			tier(1_000_000_000, 25),
			tier(500_000_000, 20),
			tier(100_000_000, 15),
			tier(10_000_000, 10),
			tier(1_000_000, 5),
		},
		AnomalyPenalty:  10,
		AmountThreshold: 30,
	}
}

// Assessment groups the three findings produced for one request.
type Assessment struct {
	Commodity  models.Finding
	Geographic models.Finding
	Amount     models.Finding
}

// Findings returns the findings in aggregation order.
func (a Assessment) Findings() []models.Finding {
	return []models.Finding{a.Commodity, a.Geographic, a.Amount}
}

// Score is the combined contribution of the three findings.
func (a Assessment) Score() float64 {
	return a.Commodity.Score + a.Geographic.Score + a.Amount.Score
}

// Assessor scores commodity, geographic and amount risk over reference data.
type Assessor struct {
	data *reference.Data
	cfg  Config
}

// New builds an assessor over normalized reference data.
func New(data *reference.Data, cfg Config) *Assessor {
	return &Assessor{data: data, cfg: cfg}
}

// Check runs all three assessments.
func (a *Assessor) Check(ctx context.Context, req models.Request) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}
	if a.data == nil {
		return Assessment{}, ErrNoReferenceData
	}
	return a.Assess(req), nil
}

// Assess is the pure evaluation behind Check.
func (a *Assessor) Assess(req models.Request) Assessment {
	return Assessment{
		Commodity:  a.Commodity(req),
		Geographic: a.Geographic(req),
		Amount:     a.Amount(req),
	}
}

// Commodity flags restricted goods and adds a value-tier penalty regardless
// of what is traded.
func (a *Assessor) Commodity(req models.Request) models.Finding {
	f := models.Finding{Check: models.CheckCommodity, Status: models.StatusApproved}
	amount := models.CoerceAmount(req.Amount)

	commodity := pstrings.Normalize(req.Commodity)
	if hits := textmatch.ContainsSubstring(commodity, a.data.HighRiskCommodities); len(hits) > 0 {
		f.Status = models.StatusHighRisk
		f.Score += a.cfg.RestrictedCommodityPenalty
		f.Indicators = append(f.Indicators, models.IndicatorRestrictedCommodity)
		f.Details = append(f.Details, fmt.Sprintf("Commodity is restricted (%s)", strings.Join(hits, ", ")))
		f.Recommendations = append(f.Recommendations, "Obtain export licence documentation for restricted goods")
	}
	if t, ok := matchTier(a.cfg.CommodityTiers, amount); ok {
		f.Score += t.Penalty
		f.Details = append(f.Details, fmt.Sprintf("Commodity shipment value exceeds %s", t.Above.StringFixed(0)))
	}
	if len(f.Details) == 0 {
		f.Details = []string{"Commodity risk acceptable"}
	}
	return f
}

// Geographic penalises each high-risk party country on its own, plus a flat
// cross-border charge.
func (a *Assessor) Geographic(req models.Request) models.Finding {
	f := models.Finding{Check: models.CheckGeographic}
	supplier := pstrings.Normalize(req.SupplierCountry)
	buyer := pstrings.Normalize(req.BuyerCountry)

	for _, party := range []struct{ role, country string }{{"Supplier", supplier}, {"Buyer", buyer}} {
		if entry, ok := textmatch.MatchAny(party.country, a.data.HighRiskCountries); ok {
			f.Score += a.cfg.HighRiskCountryPenalty
			f.Indicators = appendOnce(f.Indicators, models.IndicatorHighRiskCountry)
			f.Details = append(f.Details, fmt.Sprintf("%s country is high risk (%s)", party.role, entry))
		}
	}
	if supplier != "" && buyer != "" && supplier != buyer {
		f.Score += a.cfg.CrossBorderPenalty
		f.Indicators = append(f.Indicators, models.IndicatorCrossBorder)
		f.Details = append(f.Details, "Cross-border transaction")
	}

	f.Status = models.StatusApproved
	if f.Score > a.cfg.GeographicThreshold {
		f.Status = models.StatusHighRisk
		f.Recommendations = append(f.Recommendations, "Apply enhanced due diligence for high-risk jurisdictions")
	}
	if len(f.Details) == 0 {
		f.Details = []string{"Geographic risk acceptable"}
	}
	return f
}

// Amount applies the graduated size penalty and the anomaly detector.
func (a *Assessor) Amount(req models.Request) models.Finding {
	f := models.Finding{Check: models.CheckAmount}
	amount := models.CoerceAmount(req.Amount)

	if t, ok := matchTier(a.cfg.AmountTiers, amount); ok {
		f.Score += t.Penalty
		f.Details = append(f.Details, fmt.Sprintf("Amount exceeds %s", t.Above.StringFixed(0)))
	}
	if IsAnomalous(amount) {
		f.Score += a.cfg.AnomalyPenalty
		f.Indicators = append(f.Indicators, models.IndicatorAmountAnomaly)
		f.Details = append(f.Details, fmt.Sprintf("Amount %s has an anomalous digit pattern", amount.String()))
	}

	f.Status = models.StatusApproved
	if f.Score > a.cfg.AmountThreshold {
		f.Status = models.StatusHighRisk
		f.Recommendations = append(f.Recommendations, "Require senior approval for transaction size")
	}
	if len(f.Details) == 0 {
		f.Details = []string{"Amount within normal range"}
	}
	return f
}

var exactMillion = decimal.NewFromInt(1_000_000)

// IsAnomalous reports whole amounts of three or more identical digits
// (777, 99999) and the exact amount 1,000,000.
func IsAnomalous(amount decimal.Decimal) bool {
	if amount.Equal(exactMillion) {
		return true
	}
	if !amount.IsInteger() || !amount.IsPositive() {
		return false
	}
	digits := amount.String()
	if len(digits) < 3 {
		return false
	}
	return strings.Count(digits, digits[:1]) == len(digits)
}

func matchTier(tiers []Tier, amount decimal.Decimal) (Tier, bool) {
	for _, t := range tiers {
		if amount.GreaterThan(t.Above) {
			return t, true
		}
	}
	return Tier{}, false
}

func appendOnce(tags []models.Indicator, tag models.Indicator) []models.Indicator {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
