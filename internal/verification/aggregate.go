package verification

import (
	"tradeverify/internal/verification/models"
	pstrings "tradeverify/pkg/platform/strings"
)

// aggregate folds the findings into a Result. findings must hold exactly one
// entry per check in models.CheckOrder; identity fields are left empty.
func (p Policy) aggregate(findings map[models.CheckName]models.Finding) *models.Result {
	result := &models.Result{Checks: make(map[models.CheckName]models.Status, len(models.CheckOrder))}

	score := p.BaseRisk
	var recommendations []string
	for _, check := range models.CheckOrder {
		f := findings[check]
		score += f.Score
		result.Checks[check] = f.Status
		result.Details = append(result.Details, f.Details...)
		recommendations = append(recommendations, f.Recommendations...)
	}

	result.RiskScore = models.Clamp(score)
	result.CreditRating = p.rate(result.RiskScore)
	result.IsValid = p.isValid(result.RiskScore, result.Checks)
	recommendations = append(recommendations, ratingRecommendation(result.CreditRating, result.IsValid))
	result.Recommendations = pstrings.Dedupe(recommendations)
	return result
}

func (p Policy) isValid(score float64, checks map[models.CheckName]models.Status) bool {
	switch {
	case score > p.ValidityCutoff:
		return false
	case checks[models.CheckSanctions] == models.StatusFlagged:
		return false
	case checks[models.CheckFraud] == models.StatusFailed:
		return false
	case checks[models.CheckDocument] == models.StatusInvalid:
		return false
	}
	return true
}

func ratingRecommendation(rating models.CreditRating, valid bool) string {
	switch {
	case !valid:
		return "Do not fund until flagged checks are resolved"
	case rating.Rank() <= models.RatingA.Rank():
		return "Eligible for standard financing terms"
	case rating.IsInvestmentGrade():
		return "Eligible for financing with enhanced monitoring"
	default:
		return "Refer to credit committee before financing"
	}
}
