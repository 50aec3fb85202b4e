package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateScoreBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  CreditRating
	}{
		{0, RatingAAA},
		{15, RatingAAA},
		{15.01, RatingAA},
		{16, RatingAA},
		{25, RatingAA},
		{26, RatingA},
		{40, RatingA},
		{41, RatingBBB},
		{55, RatingBBB},
		{56, RatingBB},
		{70, RatingBB},
		{71, RatingB},
		{85, RatingB},
		{85.5, RatingD},
		{86, RatingD},
		{100, RatingD},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RateScore(tt.score), "score %v", tt.score)
	}
}

func TestRateScoreIsMonotonic(t *testing.T) {
	prev := RateScore(0).Rank()
	for s := 0.0; s <= 100; s += 0.5 {
		rank := RateScore(s).Rank()
		require.GreaterOrEqual(t, rank, prev, "rating improved as score rose to %v", s)
		require.GreaterOrEqual(t, rank, 0)
		prev = rank
	}
}

func TestParseCreditRating(t *testing.T) {
	r, err := ParseCreditRating(" bbb ")
	require.NoError(t, err)
	assert.Equal(t, RatingBBB, r)
	assert.True(t, r.IsInvestmentGrade())
	assert.False(t, RatingBB.IsInvestmentGrade())

	_, err = ParseCreditRating("Z")
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5))
	assert.Equal(t, 42.0, Clamp(42))
	assert.Equal(t, 100.0, Clamp(1e9))
}
