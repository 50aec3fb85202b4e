package models

// Status is a check's resolved status. Each check has its own vocabulary.
type Status string

const (
	// Document integrity
	StatusVerified Status = "VERIFIED"
	StatusWarning  Status = "WARNING"
	StatusInvalid  Status = "INVALID"

	// Sanctions screening
	StatusClear   Status = "CLEAR"
	StatusFlagged Status = "FLAGGED"

	// Fraud detection
	StatusPassed Status = "PASSED"
	StatusFailed Status = "FAILED"

	// Risk assessments
	StatusApproved Status = "APPROVED"
	StatusHighRisk Status = "HIGH_RISK"

	// Any check whose evaluation failed
	StatusError Status = "ERROR"
)

// CheckName identifies a leaf finding inside a Result.
type CheckName string

const (
	CheckDocument   CheckName = "documentCheck"
	CheckSanctions  CheckName = "sanctionsCheck"
	CheckFraud      CheckName = "fraudCheck"
	CheckCommodity  CheckName = "commodityCheck"
	CheckGeographic CheckName = "geographicCheck"
	CheckAmount     CheckName = "amountCheck"
)

// CheckOrder is the fixed order in which findings are folded into a Result.
var CheckOrder = []CheckName{
	CheckDocument,
	CheckSanctions,
	CheckFraud,
	CheckCommodity,
	CheckGeographic,
	CheckAmount,
}

// Indicator tags a matched pattern inside a finding.
type Indicator string

const (
	IndicatorOFACSDN          Indicator = "OFAC_SDN"
	IndicatorPotentialMatch   Indicator = "POTENTIAL_MATCH"
	IndicatorKeywordRisk      Indicator = "KEYWORD_RISK"
	IndicatorCountrySanctions Indicator = "COUNTRY_SANCTIONS"
	IndicatorHighRiskRegion   Indicator = "HIGH_RISK_REGION"
	IndicatorTradeRouteRisk   Indicator = "TRADE_ROUTE_RISK"

	IndicatorFraudKeyword     Indicator = "FRAUD_KEYWORD"
	IndicatorHighRiskEntity   Indicator = "HIGH_RISK_ENTITY"
	IndicatorSelfDealing      Indicator = "SELF_DEALING"
	IndicatorRoundAmount      Indicator = "ROUND_AMOUNT"
	IndicatorValueMismatch    Indicator = "VALUE_MISMATCH"
	IndicatorStructuring      Indicator = "STRUCTURING"
	IndicatorRepunitAmount    Indicator = "REPUNIT_AMOUNT"
	IndicatorShellCompany     Indicator = "SHELL_COMPANY"
	IndicatorHighRiskCorridor Indicator = "HIGH_RISK_CORRIDOR"

	IndicatorRestrictedCommodity Indicator = "RESTRICTED_COMMODITY"
	IndicatorHighRiskCountry     Indicator = "HIGH_RISK_COUNTRY"
	IndicatorCrossBorder         Indicator = "CROSS_BORDER"
	IndicatorAmountAnomaly       Indicator = "AMOUNT_ANOMALY"
)

// Finding is the output of one leaf check.
//
// Invariants:
//   - Score is non-negative and bounded by the producing check
//   - Details are ordered as the check produced them
type Finding struct {
	Check           CheckName
	Status          Status
	Score           float64
	Details         []string
	Indicators      []Indicator
	Recommendations []string
	// Confidence is the sanctions match confidence in [0,1]; zero elsewhere.
	Confidence float64
}

// HasIndicator reports whether the finding carries tag.
func (f Finding) HasIndicator(tag Indicator) bool {
	for _, i := range f.Indicators {
		if i == tag {
			return true
		}
	}
	return false
}

// DegradedDetail is the detail attached to a finding substituted for a failed check.
const DegradedDetail = "service temporarily degraded"

// ErrorFinding is the conservative stand-in for a check that failed to evaluate.
func ErrorFinding(check CheckName, penalty float64) Finding {
	return Finding{
		Check:           check,
		Status:          StatusError,
		Score:           penalty,
		Details:         []string{string(check) + ": " + DegradedDetail},
		Recommendations: []string{"Re-run verification once " + string(check) + " is available"},
	}
}
