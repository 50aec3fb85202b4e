// Package fraud detects heuristic fraud patterns in counter-party names,
// amounts, commodities and trade corridors.
package fraud

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"tradeverify/internal/reference"
	"tradeverify/internal/verification/models"
	"tradeverify/internal/verification/textmatch"
	pstrings "tradeverify/pkg/platform/strings"
)

// ErrNoReferenceData is returned when the detector was built without data.
var ErrNoReferenceData = errors.New("fraud: reference data not loaded")

// Band is a half-open amount interval [Low, High).
type Band struct {
	Low, High decimal.Decimal
}

// Contains reports Low <= amount < High.
func (b Band) Contains(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(b.Low) && amount.LessThan(b.High)
}

// Config holds penalties, caps and thresholds for each partial score.
type Config struct {
	// Entity-name risk
	KeywordPenalty        float64
	HighRiskEntityPenalty float64
	NameCap               float64
	SelfDealingSimilarity float64
	SelfDealingPenalty    float64
	EntityCap             float64

	// Transaction-pattern risk
	RoundMillionPenalty float64
	RoundLakhPenalty    float64
	LowValueCeiling     decimal.Decimal
	HighValueFloor      decimal.Decimal
	MismatchPenalty     float64
	PatternCap          float64

	// Structuring risk
	StructuringBands   []Band
	StructuringPenalty float64
	Repunits           []decimal.Decimal
	RepunitPenalty     float64
	StructuringCap     float64

	// Shell-company and corridor risk
	ShellPenalty    float64
	CorridorPenalty float64
	ShellCap        float64

	// FailThreshold is the total at or above which the check FAILs.
	FailThreshold float64
}

// DefaultConfig returns the production heuristics.
func DefaultConfig() Config {
	return Config{
		KeywordPenalty:        15,
		HighRiskEntityPenalty: 10,
		NameCap:               30,
		SelfDealingSimilarity: 0.8,
		SelfDealingPenalty:    25,
		EntityCap:             40,

		RoundMillionPenalty: 10,
		RoundLakhPenalty:    5,
		LowValueCeiling:     decimal.NewFromInt(10_000_000),
		HighValueFloor:      decimal.NewFromInt(1_000),
		MismatchPenalty:     15,
		PatternCap:          30,

		StructuringBands: []Band{
			{Low: decimal.NewFromInt(9_500), High: decimal.NewFromInt(10_000)},
			{Low: decimal.NewFromInt(49_500), High: decimal.NewFromInt(50_000)},
		},
		StructuringPenalty: 25,
		Repunits:           []decimal.Decimal{decimal.NewFromInt(1_111), decimal.NewFromInt(11_111), decimal.NewFromInt(111_111)},
		RepunitPenalty:     10,
		StructuringCap:     30,

		ShellPenalty:    15,
		CorridorPenalty: 20,
		ShellCap:        30,

		FailThreshold: 70,
	}
}

var (
	oneMillion   = decimal.NewFromInt(1_000_000)
	hundredThous = decimal.NewFromInt(100_000)
)

// Detector computes the fraud finding for a request.
type Detector struct {
	data *reference.Data
	cfg  Config
}

// New builds a detector over normalized reference data.
func New(data *reference.Data, cfg Config) *Detector {
	return &Detector{data: data, cfg: cfg}
}

// Check evaluates the request.
func (d *Detector) Check(ctx context.Context, req models.Request) (models.Finding, error) {
	if err := ctx.Err(); err != nil {
		return models.Finding{}, err
	}
	if d.data == nil {
		return models.Finding{}, ErrNoReferenceData
	}
	return d.Detect(req), nil
}

// partial is one independently capped sub-score.
type partial struct {
	score      float64
	indicators []models.Indicator
	details    []string
}

func (p *partial) add(points float64, tag models.Indicator, detail string) {
	p.score += points
	p.indicators = append(p.indicators, tag)
	p.details = append(p.details, detail)
}

// Detect is the pure evaluation behind Check.
func (d *Detector) Detect(req models.Request) models.Finding {
	exporter := pstrings.Normalize(req.ExporterName)
	buyer := pstrings.Normalize(req.BuyerName)
	commodity := pstrings.Normalize(req.Commodity)
	amount := models.CoerceAmount(req.Amount)

	parts := []struct {
		p   partial
		cap float64
	}{
		{d.entityRisk(exporter, buyer), d.cfg.EntityCap},
		{d.patternRisk(commodity, amount), d.cfg.PatternCap},
		{d.structuringRisk(amount), d.cfg.StructuringCap},
		{d.shellRisk(exporter, buyer, req.SupplierCountry, req.BuyerCountry), d.cfg.ShellCap},
	}

	finding := models.Finding{Check: models.CheckFraud}
	total := 0.0
	seen := make(map[models.Indicator]struct{})
	for _, part := range parts {
		total += min(part.p.score, part.cap)
		finding.Details = append(finding.Details, part.p.details...)
		for _, tag := range part.p.indicators {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				finding.Indicators = append(finding.Indicators, tag)
			}
		}
	}
	finding.Score = models.Clamp(total)

	switch {
	case finding.Score >= d.cfg.FailThreshold:
		finding.Status = models.StatusFailed
		finding.Recommendations = []string{"Hold financing pending enhanced due diligence"}
	case len(finding.Indicators) > 0:
		finding.Status = models.StatusPassed
		finding.Recommendations = []string{"Review flagged fraud indicators before funding"}
	default:
		finding.Status = models.StatusPassed
		finding.Details = []string{"No fraud indicators detected"}
	}
	return finding
}

// entityRisk takes the worse of the two names rather than their sum, then
// adds the self-dealing indicator.
func (d *Detector) entityRisk(exporter, buyer string) partial {
	exp := d.nameRisk("Exporter", exporter)
	buy := d.nameRisk("Buyer", buyer)

	var p partial
	p.score = max(exp.score, buy.score)
	p.indicators = append(exp.indicators, buy.indicators...)
	p.details = append(exp.details, buy.details...)

	if exporter != "" && buyer != "" {
		if sim := textmatch.Similarity(exporter, buyer); sim > d.cfg.SelfDealingSimilarity {
			p.add(d.cfg.SelfDealingPenalty, models.IndicatorSelfDealing,
				fmt.Sprintf("Exporter and buyer names are near-duplicates (similarity %.2f)", sim))
		}
	}
	return p
}

func (d *Detector) nameRisk(role, name string) partial {
	var p partial
	if name == "" {
		return p
	}
	for _, kw := range textmatch.ContainsAny(name, d.data.FraudKeywords) {
		p.add(d.cfg.KeywordPenalty, models.IndicatorFraudKeyword,
			fmt.Sprintf("%s name contains fraud keyword %q", role, kw))
	}
	for _, kw := range textmatch.ContainsAny(name, d.data.HighRiskEntityKeywords) {
		p.add(d.cfg.HighRiskEntityPenalty, models.IndicatorHighRiskEntity,
			fmt.Sprintf("%s name indicates a high-risk business (%q)", role, kw))
	}
	p.score = min(p.score, d.cfg.NameCap)
	return p
}

func (d *Detector) patternRisk(commodity string, amount decimal.Decimal) partial {
	var p partial
	if amount.IsPositive() {
		switch {
		case amount.Mod(oneMillion).IsZero():
			p.add(d.cfg.RoundMillionPenalty, models.IndicatorRoundAmount,
				fmt.Sprintf("Amount %s is an exact multiple of 1,000,000", amount.String()))
		case amount.Mod(hundredThous).IsZero():
			p.add(d.cfg.RoundLakhPenalty, models.IndicatorRoundAmount,
				fmt.Sprintf("Amount %s is an exact multiple of 100,000", amount.String()))
		}
	}

	if commodity == "" {
		return p
	}
	if len(textmatch.ContainsAny(commodity, d.data.LowValueCommodities)) > 0 && amount.GreaterThan(d.cfg.LowValueCeiling) {
		p.add(d.cfg.MismatchPenalty, models.IndicatorValueMismatch,
			fmt.Sprintf("Amount %s is implausibly large for a low-value commodity", amount.String()))
	}
	if len(textmatch.ContainsAny(commodity, d.data.HighValueCommodities)) > 0 && amount.IsPositive() && amount.LessThan(d.cfg.HighValueFloor) {
		p.add(d.cfg.MismatchPenalty, models.IndicatorValueMismatch,
			fmt.Sprintf("Amount %s is implausibly small for a high-value commodity", amount.String()))
	}
	return p
}

func (d *Detector) structuringRisk(amount decimal.Decimal) partial {
	var p partial
	for _, band := range d.cfg.StructuringBands {
		if band.Contains(amount) {
			p.add(d.cfg.StructuringPenalty, models.IndicatorStructuring,
				fmt.Sprintf("Amount %s sits just below the %s reporting threshold", amount.String(), band.High.String()))
			break
		}
	}
	if !amount.IsPositive() {
		return p
	}
	for _, r := range d.cfg.Repunits {
		if amount.GreaterThanOrEqual(r) && amount.Mod(r).IsZero() {
			p.add(d.cfg.RepunitPenalty, models.IndicatorRepunitAmount,
				fmt.Sprintf("Amount %s is an exact multiple of %s", amount.String(), r.String()))
			break
		}
	}
	return p
}

func (d *Detector) shellRisk(exporter, buyer, supplierCountry, buyerCountry string) partial {
	var p partial
	for _, n := range []struct{ role, name string }{{"Exporter", exporter}, {"Buyer", buyer}} {
		if d.looksLikeShell(n.name) {
			p.add(d.cfg.ShellPenalty, models.IndicatorShellCompany,
				fmt.Sprintf("%s name matches a shell-company naming pattern", n.role))
		}
	}

	from, to := pstrings.Normalize(supplierCountry), pstrings.Normalize(buyerCountry)
	for _, r := range d.data.FraudCorridors {
		if textmatch.ContainsEither(from, r.From) && textmatch.ContainsEither(to, r.To) {
			p.add(d.cfg.CorridorPenalty, models.IndicatorHighRiskCorridor,
				fmt.Sprintf("Country pair %s -> %s is a high-risk fraud corridor", r.From, r.To))
			break
		}
	}
	return p
}

func (d *Detector) looksLikeShell(name string) bool {
	return len(textmatch.ContainsAny(name, d.data.ShellCompanyWords)) > 0 &&
		len(textmatch.ContainsAny(name, d.data.GlobalReachWords)) > 0
}
