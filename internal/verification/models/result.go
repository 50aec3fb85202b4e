package models

import "time"

// Result is the aggregate outcome of one verification attempt. It is never
// mutated after it is produced; re-verification yields a new VerificationID.
type Result struct {
	VerificationID  string               `json:"verificationId"`
	InvoiceID       string               `json:"invoiceId"`
	IsValid         bool                 `json:"isValid"`
	RiskScore       float64              `json:"riskScore"`
	CreditRating    CreditRating         `json:"creditRating"`
	Checks          map[CheckName]Status `json:"checks"`
	Details         []string             `json:"details"`
	Recommendations []string             `json:"recommendations"`
	Timestamp       time.Time            `json:"timestamp"`
}

// Clamp saturates a score into [0,100].
func Clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
