package verification

import "tradeverify/internal/verification/models"

// Policy holds the aggregation constants. They are hand-tuned rather than
// derived, so callers may override any of them.
type Policy struct {
	// BaseRisk is the baseline processing risk every verification starts from.
	BaseRisk float64
	// ValidityCutoff is the score above which a result is invalid.
	ValidityCutoff float64
	// ErrorPenalties is the score charged for a check that failed to evaluate.
	ErrorPenalties map[models.CheckName]float64
	RatingTable    []models.RatingBand
}

// DefaultPolicy returns the production aggregation constants.
func DefaultPolicy() Policy {
	return Policy{
		BaseRisk:       5,
		ValidityCutoff: 70,
		ErrorPenalties: map[models.CheckName]float64{
			models.CheckDocument:   30,
			models.CheckSanctions:  50,
			models.CheckFraud:      30,
			models.CheckCommodity:  10,
			models.CheckGeographic: 5,
			models.CheckAmount:     5,
		},
		RatingTable: models.DefaultRatingTable,
	}
}

func (p Policy) errorPenalty(check models.CheckName) float64 {
	return p.ErrorPenalties[check]
}

func (p Policy) rate(score float64) models.CreditRating {
	if len(p.RatingTable) == 0 {
		return models.RateScore(score)
	}
	return models.RateScoreWith(p.RatingTable, score)
}
