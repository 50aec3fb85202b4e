package models

import (
	"fmt"
	"strings"
)

// CreditRating is a letter grade derived from the aggregate risk score.
type CreditRating string

const (
	RatingAAA CreditRating = "AAA"
	RatingAA  CreditRating = "AA"
	RatingA   CreditRating = "A"
	RatingBBB CreditRating = "BBB"
	RatingBB  CreditRating = "BB"
	RatingB   CreditRating = "B"
	RatingCCC CreditRating = "CCC"
	RatingD   CreditRating = "D"
)

// Ratings lists every grade from best to worst.
var Ratings = []CreditRating{RatingAAA, RatingAA, RatingA, RatingBBB, RatingBB, RatingB, RatingCCC, RatingD}

// Rank returns the grade's position in Ratings (0 is best), or -1.
func (r CreditRating) Rank() int {
	for i, c := range Ratings {
		if c == r {
			return i
		}
	}
	return -1
}

// IsInvestmentGrade reports BBB or better.
func (r CreditRating) IsInvestmentGrade() bool {
	rank := r.Rank()
	return rank >= 0 && rank <= RatingBBB.Rank()
}

// ParseCreditRating parses a grade case-insensitively.
func ParseCreditRating(s string) (CreditRating, error) {
	r := CreditRating(strings.ToUpper(strings.TrimSpace(s)))
	if r.Rank() < 0 {
		return "", fmt.Errorf("unknown credit rating %q", s)
	}
	return r, nil
}

// RatingBand maps every score at or below Max to Rating.
type RatingBand struct {
	Max    float64
	Rating CreditRating
}

// DefaultRatingTable is ordered by ascending Max. Scores above the last band
// map to D.
var DefaultRatingTable = []RatingBand{
	{Max: 15, Rating: RatingAAA},
	{Max: 25, Rating: RatingAA},
	{Max: 40, Rating: RatingA},
	{Max: 55, Rating: RatingBBB},
	{Max: 70, Rating: RatingBB},
	{Max: 85, Rating: RatingB},
}

// RateScore maps a score onto the default table.
func RateScore(score float64) CreditRating {
	return RateScoreWith(DefaultRatingTable, score)
}

// RateScoreWith maps a score onto table; scores above every band are D.
func RateScoreWith(table []RatingBand, score float64) CreditRating {
	for _, band := range table {
		if score <= band.Max {
			return band.Rating
		}
	}
	return RatingD
}
