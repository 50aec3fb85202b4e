// Package document checks the structural plausibility of a submitted
// document fingerprint. It never fetches the document itself.
package document

import (
	"context"
	"fmt"
	"strings"

	"tradeverify/internal/verification/models"
)

const (
	// MinHashLength is the shortest fingerprint treated as usable.
	MinHashLength = 10

	StructuralPenalty = 50.0
	FormatPenalty     = 10.0
	LengthPenalty     = 5.0
)

// Detail strings surfaced verbatim in the aggregate result.
const (
	DetailTooShort = "Document hash is too short to be a valid fingerprint"
	DetailFormat   = "Document hash format is non-standard (expected IPFS CID or 0x-prefixed digest)"
	DetailVerified = "Document integrity verified"
)

// knownPrefixes lists fingerprint conventions the platform issues.
var knownPrefixes = []string{"Qm", "bafy", "0x"}

// knownLengths are the lengths of CIDv0, CIDv1 (base32), raw SHA-256 hex and
// 0x-prefixed SHA-256 hex.
var knownLengths = map[int]struct{}{46: {}, 59: {}, 64: {}, 66: {}}

// Checker validates document fingerprints.
type Checker struct{}

// New returns a document checker.
func New() *Checker {
	return &Checker{}
}

// Check evaluates the request's document hash.
func (c *Checker) Check(ctx context.Context, req models.Request) (models.Finding, error) {
	if err := ctx.Err(); err != nil {
		return models.Finding{}, err
	}
	return CheckHash(req.DocumentHash), nil
}

// CheckHash is the pure evaluation behind Check.
func CheckHash(hash string) models.Finding {
	hash = strings.TrimSpace(hash)
	finding := models.Finding{Check: models.CheckDocument}

	if len(hash) < MinHashLength {
		finding.Status = models.StatusInvalid
		finding.Score = StructuralPenalty
		finding.Details = []string{DetailTooShort}
		finding.Recommendations = []string{"Re-upload the invoice document and resubmit its fingerprint"}
		return finding
	}

	if !hasKnownPrefix(hash) {
		finding.Score += FormatPenalty
		finding.Details = append(finding.Details, DetailFormat)
	}
	if _, ok := knownLengths[len(hash)]; !ok {
		finding.Score += LengthPenalty
		finding.Details = append(finding.Details,
			fmt.Sprintf("Document hash length %d does not match a known digest length", len(hash)))
	}

	if finding.Score == 0 {
		finding.Status = models.StatusVerified
		finding.Details = []string{DetailVerified}
		return finding
	}
	finding.Status = models.StatusWarning
	finding.Recommendations = []string{"Confirm the document fingerprint with the issuing party"}
	return finding
}

func hasKnownPrefix(hash string) bool {
	for _, p := range knownPrefixes {
		if strings.HasPrefix(hash, p) {
			return true
		}
	}
	return false
}
