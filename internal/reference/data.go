// Package reference holds the read-only lists consumed by the verification
// checks: sanctioned entities and countries, trade corridors, fraud
// vocabularies and commodity tables.
//
// Data is loaded once at process start and shared by every check. Nothing
// writes to it after Normalize, so concurrent reads need no locking.
package reference

import (
	"errors"
	"fmt"

	pstrings "tradeverify/pkg/platform/strings"
)

// Route is an ordered (supplier origin, buyer destination) country pair.
type Route struct {
	From string `yaml:"from" toml:"from" json:"from"`
	To   string `yaml:"to" toml:"to" json:"to"`
}

// Data is the complete reference-data set.
type Data struct {
	// Sanctions screening
	SanctionedEntities  []string `yaml:"sanctioned_entities" toml:"sanctioned_entities" json:"sanctioned_entities"`
	SanctionKeywords    []string `yaml:"sanction_keywords" toml:"sanction_keywords" json:"sanction_keywords"`
	SanctionedCountries []string `yaml:"sanctioned_countries" toml:"sanctioned_countries" json:"sanctioned_countries"`
	HighRiskRegions     []string `yaml:"high_risk_regions" toml:"high_risk_regions" json:"high_risk_regions"`
	TradeRoutes         []Route  `yaml:"trade_routes" toml:"trade_routes" json:"trade_routes"`

	// Fraud detection
	FraudKeywords          []string `yaml:"fraud_keywords" toml:"fraud_keywords" json:"fraud_keywords"`
	HighRiskEntityKeywords []string `yaml:"high_risk_entity_keywords" toml:"high_risk_entity_keywords" json:"high_risk_entity_keywords"`
	ShellCompanyWords      []string `yaml:"shell_company_words" toml:"shell_company_words" json:"shell_company_words"`
	GlobalReachWords       []string `yaml:"global_reach_words" toml:"global_reach_words" json:"global_reach_words"`
	FraudCorridors         []Route  `yaml:"fraud_corridors" toml:"fraud_corridors" json:"fraud_corridors"`
	LowValueCommodities    []string `yaml:"low_value_commodities" toml:"low_value_commodities" json:"low_value_commodities"`
	HighValueCommodities   []string `yaml:"high_value_commodities" toml:"high_value_commodities" json:"high_value_commodities"`

	// Risk assessment
	HighRiskCommodities []string `yaml:"high_risk_commodities" toml:"high_risk_commodities" json:"high_risk_commodities"`
	HighRiskCountries   []string `yaml:"high_risk_countries" toml:"high_risk_countries" json:"high_risk_countries"`
}

// ErrInvalidData indicates a reference set is missing a required list.
var ErrInvalidData = errors.New("invalid reference data")

// Normalize returns a copy with every entry normalized and deduplicated so
// checks can compare against normalized request fields directly.
func (d Data) Normalize() *Data {
	return &Data{
		SanctionedEntities:     pstrings.NormalizeAll(d.SanctionedEntities),
		SanctionKeywords:       pstrings.NormalizeAll(d.SanctionKeywords),
		SanctionedCountries:    pstrings.NormalizeAll(d.SanctionedCountries),
		HighRiskRegions:        pstrings.NormalizeAll(d.HighRiskRegions),
		TradeRoutes:            normalizeRoutes(d.TradeRoutes),
		FraudKeywords:          pstrings.NormalizeAll(d.FraudKeywords),
		HighRiskEntityKeywords: pstrings.NormalizeAll(d.HighRiskEntityKeywords),
		ShellCompanyWords:      pstrings.NormalizeAll(d.ShellCompanyWords),
		GlobalReachWords:       pstrings.NormalizeAll(d.GlobalReachWords),
		FraudCorridors:         normalizeRoutes(d.FraudCorridors),
		LowValueCommodities:    pstrings.NormalizeAll(d.LowValueCommodities),
		HighValueCommodities:   pstrings.NormalizeAll(d.HighValueCommodities),
		HighRiskCommodities:    pstrings.NormalizeAll(d.HighRiskCommodities),
		HighRiskCountries:      pstrings.NormalizeAll(d.HighRiskCountries),
	}
}

func normalizeRoutes(routes []Route) []Route {
	if len(routes) == 0 {
		return routes
	}
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		from, to := pstrings.Normalize(r.From), pstrings.Normalize(r.To)
		if from == "" || to == "" {
			continue
		}
		out = append(out, Route{From: from, To: to})
	}
	return out
}

// Validate requires the lists without which a check cannot run.
func (d *Data) Validate() error {
	required := []struct {
		name string
		n    int
	}{
		{"sanctioned_entities", len(d.SanctionedEntities)},
		{"sanctioned_countries", len(d.SanctionedCountries)},
		{"fraud_keywords", len(d.FraudKeywords)},
		{"high_risk_commodities", len(d.HighRiskCommodities)},
		{"high_risk_countries", len(d.HighRiskCountries)},
	}
	for _, r := range required {
		if r.n == 0 {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidData, r.name)
		}
	}
	return nil
}
