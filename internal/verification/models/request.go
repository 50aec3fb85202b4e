package models

import (
	"strings"

	"github.com/shopspring/decimal"

	dErrors "tradeverify/pkg/domain-errors"
)

// Request is a single trade-invoice verification attempt. Amount is expressed
// in whole currency units and is never negative.
type Request struct {
	InvoiceID       string
	DocumentHash    string
	Commodity       string
	Amount          decimal.Decimal
	SupplierCountry string
	BuyerCountry    string
	ExporterName    string
	BuyerName       string
}

// Validate rejects requests whose shape is malformed. Business conditions
// (sanctions hits, high risk) are never validation errors.
func (r Request) Validate() error {
	if strings.TrimSpace(r.InvoiceID) == "" {
		return dErrors.New(dErrors.CodeValidation, "invoice_id is required")
	}
	if r.Amount.IsNegative() {
		return dErrors.New(dErrors.CodeInvariantViolation, "amount must be coerced to a non-negative value")
	}
	return nil
}

// MaxAmount is the largest amount the checks evaluate. Larger inputs
// saturate to it, which already sits in every top risk tier.
var MaxAmount = decimal.New(1, 15)

// Amounts keep at most this many fractional digits; anything smaller than
// one millionth of a unit counts as zero.
const maxFractionDigits = 6

// maxIntegerDigits is the digit count of MaxAmount.
const maxIntegerDigits = 16

// ParseAmount coerces free-form caller input into a bounded non-negative
// amount. Thousands separators are accepted; anything non-numeric or
// negative becomes zero.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return CoerceAmount(d)
}

// CoerceAmount clamps an amount into [0, MaxAmount] and drops fractional
// digits past maxFractionDigits. It decides from the digit count and
// exponent before any arithmetic, so its cost is bounded by the size of the
// coefficient rather than the magnitude of the exponent.
func CoerceAmount(d decimal.Decimal) decimal.Decimal {
	if d.Sign() <= 0 {
		return decimal.Zero
	}
	integerDigits := d.NumDigits() + int(d.Exponent())
	switch {
	case integerDigits > maxIntegerDigits:
		return MaxAmount
	case integerDigits <= -maxFractionDigits:
		return decimal.Zero
	}
	if d.Exponent() < -maxFractionDigits {
		d = d.Truncate(maxFractionDigits)
	}
	if d.GreaterThan(MaxAmount) {
		return MaxAmount
	}
	return d
}
