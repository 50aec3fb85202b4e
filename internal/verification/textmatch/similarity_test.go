package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestSimilarityProperties(t *testing.T) {
	samples := []string{"", "a", "acme trading", "acme tradeing", "global ventures", "zz", "north korea"}
	for _, a := range samples {
		assert.Equal(t, 1.0, Similarity(a, a), "identity for %q", a)
		for _, b := range samples {
			s := Similarity(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
			assert.Equal(t, s, Similarity(b, a), "symmetry for %q/%q", a, b)
		}
	}
}

func TestSimilarityValues(t *testing.T) {
	assert.InDelta(t, 1-3.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestBestMatch(t *testing.T) {
	best, score := BestMatch("acme tradng", []string{"globex", "acme trading", "acme"})
	assert.Equal(t, "acme trading", best)
	assert.Greater(t, score, 0.9)

	best, score = BestMatch("anything", nil)
	assert.Empty(t, best)
	assert.Zero(t, score)
}

func TestContainsEither(t *testing.T) {
	assert.True(t, ContainsEither("islamic republic of iran", "iran"))
	assert.True(t, ContainsEither("korea", "north korea"))
	assert.False(t, ContainsEither("a", "afghanistan"))
	assert.False(t, ContainsEither("", "iran"))
	assert.False(t, ContainsEither("singapore", "iran"))
	assert.False(t, ContainsEither("united states", "syria"))
}

func TestMatchAnyAndContainsAny(t *testing.T) {
	entry, ok := MatchAny("syria", []string{"iran", "syria"})
	assert.True(t, ok)
	assert.Equal(t, "syria", entry)

	_, ok = MatchAny("germany", []string{"iran"})
	assert.False(t, ok)

	assert.Equal(t, []string{"fake", "shell"}, ContainsAny("fake shell imports", []string{"fake", "scam", "shell"}))
	assert.Nil(t, ContainsAny("", []string{"fake"}))
	assert.Nil(t, ContainsAny("organic farms", []string{"arms"}))
	assert.Equal(t, []string{"small arms"}, ContainsAny("small arms parts", []string{"small arms", "arm"}))
}

func TestContainsSubstring(t *testing.T) {
	entries := []string{"weapons", "weapon", "arms", ""}
	assert.Equal(t, []string{"weapon"}, ContainsSubstring("weaponry", entries))
	assert.Equal(t, []string{"weapon"}, ContainsSubstring("weaponized drones", entries))
	assert.Equal(t, []string{"weapons", "weapon"}, ContainsSubstring("weapons", entries))
	assert.Equal(t, []string{"arms"}, ContainsSubstring("firearms", entries))
	assert.Nil(t, ContainsSubstring("fresh produce", entries))
	assert.Nil(t, ContainsSubstring("", entries))
}
