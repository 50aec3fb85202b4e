package handler

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"tradeverify/internal/verification/models"
	dErrors "tradeverify/pkg/domain-errors"
)

const (
	maxIDLength   = 128
	maxTextLength = 512
)

// VerifyRequest is the HTTP request body for POST /verifications.
type VerifyRequest struct {
	InvoiceID       string     `json:"invoiceId"`
	DocumentHash    string     `json:"documentHash"`
	Commodity       string     `json:"commodity"`
	Amount          FlexAmount `json:"amount"`
	SupplierCountry string     `json:"supplierCountry"`
	BuyerCountry    string     `json:"buyerCountry"`
	ExporterName    string     `json:"exporterName"`
	BuyerName       string     `json:"buyerName"`
}

// FlexAmount accepts a JSON number or string. Anything that is not a
// non-negative number decodes to zero.
type FlexAmount struct {
	decimal.Decimal
}

func (a *FlexAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Decimal = models.ParseAmount(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = models.ParseAmount(string(data))
	return nil
}

// Validate trims and validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *VerifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.InvoiceID = strings.TrimSpace(r.InvoiceID)
	if r.InvoiceID == "" {
		return dErrors.New(dErrors.CodeValidation, "invoiceId is required")
	}
	if len(r.InvoiceID) > maxIDLength {
		return dErrors.New(dErrors.CodeValidation, "invoiceId must be at most 128 characters")
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"documentHash", &r.DocumentHash},
		{"commodity", &r.Commodity},
		{"supplierCountry", &r.SupplierCountry},
		{"buyerCountry", &r.BuyerCountry},
		{"exporterName", &r.ExporterName},
		{"buyerName", &r.BuyerName},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if len(*f.value) > maxTextLength {
			return dErrors.New(dErrors.CodeValidation, f.name+" must be at most 512 characters")
		}
	}
	return nil
}

// ToModel converts the validated body into a pipeline request.
func (r *VerifyRequest) ToModel() models.Request {
	return models.Request{
		InvoiceID:       r.InvoiceID,
		DocumentHash:    r.DocumentHash,
		Commodity:       r.Commodity,
		Amount:          models.CoerceAmount(r.Amount.Decimal),
		SupplierCountry: r.SupplierCountry,
		BuyerCountry:    r.BuyerCountry,
		ExporterName:    r.ExporterName,
		BuyerName:       r.BuyerName,
	}
}
