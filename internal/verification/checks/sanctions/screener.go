// Package sanctions screens counter-parties, countries and trade corridors
// against the sanctions reference lists.
package sanctions

import (
	"context"
	"errors"
	"fmt"

	"tradeverify/internal/reference"
	"tradeverify/internal/verification/models"
	"tradeverify/internal/verification/textmatch"
	pstrings "tradeverify/pkg/platform/strings"
)

// ErrNoReferenceData is returned when the screener was built without data.
var ErrNoReferenceData = errors.New("sanctions: reference data not loaded")

// Config holds the screening thresholds and score weights.
type Config struct {
	// HighConfidence is the similarity above which a name is a full match.
	HighConfidence float64
	// PotentialMatch is the lowest similarity reported as a potential match.
	PotentialMatch float64
	// PotentialDiscount scales the confidence of potential matches.
	PotentialDiscount float64
	// KeywordFloor is the minimum confidence assigned on a keyword hit.
	KeywordFloor float64

	BaseScore   float64
	HighBonus   float64
	MediumBonus float64
	TagBonus    map[models.Indicator]float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		HighConfidence:    0.8,
		PotentialMatch:    0.6,
		PotentialDiscount: 0.7,
		KeywordFloor:      0.6,
		BaseScore:         50,
		HighBonus:         30,
		MediumBonus:       20,
		TagBonus: map[models.Indicator]float64{
			models.IndicatorOFACSDN:          25,
			models.IndicatorCountrySanctions: 20,
			models.IndicatorHighRiskRegion:   15,
			models.IndicatorTradeRouteRisk:   10,
		},
	}
}

// Screener runs every sanctions sub-check and unions the results.
type Screener struct {
	data *reference.Data
	cfg  Config
}

// New builds a screener over normalized reference data.
func New(data *reference.Data, cfg Config) *Screener {
	return &Screener{data: data, cfg: cfg}
}

// Check screens the request.
func (s *Screener) Check(ctx context.Context, req models.Request) (models.Finding, error) {
	if err := ctx.Err(); err != nil {
		return models.Finding{}, err
	}
	if s.data == nil {
		return models.Finding{}, ErrNoReferenceData
	}
	return s.Screen(req), nil
}

// hits accumulates sub-check output in the order it was found.
type hits struct {
	tags       []models.Indicator
	details    []string
	confidence float64
}

func (h *hits) add(tag models.Indicator, detail string) {
	for _, t := range h.tags {
		if t == tag {
			h.details = append(h.details, detail)
			return
		}
	}
	h.tags = append(h.tags, tag)
	h.details = append(h.details, detail)
}

func (h *hits) has(tag models.Indicator) bool {
	for _, t := range h.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Screen is the pure evaluation behind Check.
func (s *Screener) Screen(req models.Request) models.Finding {
	var h hits
	s.screenEntity("Exporter", req.ExporterName, &h)
	s.screenEntity("Buyer", req.BuyerName, &h)
	s.screenCountry("Supplier", req.SupplierCountry, &h)
	s.screenCountry("Buyer", req.BuyerCountry, &h)
	s.screenRoute(req.SupplierCountry, req.BuyerCountry, &h)

	finding := models.Finding{Check: models.CheckSanctions}
	if len(h.tags) == 0 {
		finding.Status = models.StatusClear
		finding.Details = []string{"No sanctions matches found"}
		return finding
	}

	finding.Status = models.StatusFlagged
	finding.Score = s.score(&h)
	finding.Details = h.details
	finding.Indicators = h.tags
	finding.Confidence = h.confidence
	finding.Recommendations = []string{"Escalate to compliance for manual sanctions review"}
	if h.has(models.IndicatorOFACSDN) {
		finding.Recommendations = append(finding.Recommendations, "Block settlement pending sanctions clearance")
	}
	return finding
}

func (s *Screener) screenEntity(role, name string, h *hits) {
	n := pstrings.Normalize(name)
	if n == "" {
		return
	}

	entity, sim := textmatch.BestMatch(n, s.data.SanctionedEntities)
	switch {
	case sim > s.cfg.HighConfidence:
		h.confidence = max(h.confidence, sim)
		h.add(models.IndicatorOFACSDN,
			fmt.Sprintf("%s name %q matches sanctioned entity %q (similarity %.2f)", role, name, entity, sim))
	case sim >= s.cfg.PotentialMatch:
		h.confidence = max(h.confidence, sim*s.cfg.PotentialDiscount)
		h.add(models.IndicatorPotentialMatch,
			fmt.Sprintf("%s name %q is a potential match for sanctioned entity %q (similarity %.2f)", role, name, entity, sim))
	}

	if kws := textmatch.ContainsAny(n, s.data.SanctionKeywords); len(kws) > 0 {
		h.confidence = max(h.confidence, s.cfg.KeywordFloor)
		h.add(models.IndicatorKeywordRisk,
			fmt.Sprintf("%s name %q contains restricted keyword %q", role, name, kws[0]))
	}
}

func (s *Screener) screenCountry(role, country string, h *hits) {
	n := pstrings.Normalize(country)
	if n == "" {
		return
	}
	if entry, ok := textmatch.MatchAny(n, s.data.SanctionedCountries); ok {
		h.add(models.IndicatorCountrySanctions,
			fmt.Sprintf("%s country %q is subject to comprehensive sanctions (%s)", role, country, entry))
	}
	if entry, ok := textmatch.MatchAny(n, s.data.HighRiskRegions); ok {
		h.add(models.IndicatorHighRiskRegion,
			fmt.Sprintf("%s country %q is in a high-risk region (%s)", role, country, entry))
	}
}

func (s *Screener) screenRoute(supplier, buyer string, h *hits) {
	from, to := pstrings.Normalize(supplier), pstrings.Normalize(buyer)
	for _, r := range s.data.TradeRoutes {
		if textmatch.ContainsEither(from, r.From) && textmatch.ContainsEither(to, r.To) {
			h.add(models.IndicatorTradeRouteRisk,
				fmt.Sprintf("Trade route %s -> %s is a known sanctions-evasion corridor", r.From, r.To))
			return
		}
	}
}

func (s *Screener) score(h *hits) float64 {
	score := s.cfg.BaseScore
	switch {
	case h.has(models.IndicatorOFACSDN):
		score += s.cfg.HighBonus
	case h.has(models.IndicatorPotentialMatch), h.has(models.IndicatorKeywordRisk):
		score += s.cfg.MediumBonus
	}
	for _, tag := range h.tags {
		score += s.cfg.TagBonus[tag]
	}
	return models.Clamp(score)
}
