package handler

import (
	"time"

	"tradeverify/internal/verification/models"
)

// VerificationResponse is the HTTP representation of a verification result.
type VerificationResponse struct {
	VerificationID  string            `json:"verificationId"`
	InvoiceID       string            `json:"invoiceId"`
	IsValid         bool              `json:"isValid"`
	RiskScore       float64           `json:"riskScore"`
	CreditRating    string            `json:"creditRating"`
	Checks          map[string]string `json:"checks"`
	Details         []string          `json:"details"`
	Recommendations []string          `json:"recommendations"`
	Timestamp       time.Time         `json:"timestamp"`
}

// VerificationListResponse is the response for GET /invoices/{invoiceID}/verifications.
type VerificationListResponse struct {
	InvoiceID     string                  `json:"invoiceId"`
	Verifications []*VerificationResponse `json:"verifications"`
}

// FromResult converts a domain result to an HTTP response.
func FromResult(r *models.Result) *VerificationResponse {
	checks := make(map[string]string, len(r.Checks))
	for name, status := range r.Checks {
		checks[string(name)] = string(status)
	}
	return &VerificationResponse{
		VerificationID:  r.VerificationID,
		InvoiceID:       r.InvoiceID,
		IsValid:         r.IsValid,
		RiskScore:       r.RiskScore,
		CreditRating:    string(r.CreditRating),
		Checks:          checks,
		Details:         orEmpty(r.Details),
		Recommendations: orEmpty(r.Recommendations),
		Timestamp:       r.Timestamp,
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
