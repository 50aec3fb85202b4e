// Package textmatch implements the fuzzy and substring matching used by the
// sanctions and fraud checks. Inputs are expected to be normalized with
// strings.Normalize first.
package textmatch

import (
	"strings"
	"unicode/utf8"
)

// minReverseContainment is the shortest input allowed to match by being
// contained in a list entry.
const minReverseContainment = 4

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity returns 1 - levenshtein(a,b)/max(len(a),len(b)), in [0,1].
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// BestMatch returns the candidate most similar to s and its similarity.
// Ties keep the earliest candidate.
func BestMatch(s string, candidates []string) (string, float64) {
	best, score := "", 0.0
	for _, c := range candidates {
		if sim := Similarity(s, c); sim > score {
			best, score = c, sim
		}
	}
	return best, score
}

// ContainsEither reports whether entry contains input, or input contains
// entry. Empty strings never match.
func ContainsEither(input, entry string) bool {
	if input == "" || entry == "" {
		return false
	}
	if strings.Contains(input, entry) {
		return true
	}
	return utf8.RuneCountInString(input) >= minReverseContainment && strings.Contains(entry, input)
}

// MatchAny returns the first entry that ContainsEither input.
func MatchAny(input string, entries []string) (string, bool) {
	for _, e := range entries {
		if ContainsEither(input, e) {
			return e, true
		}
	}
	return "", false
}

// ContainsAny returns every entry that occurs in input as whole words, in
// list order. "arms" matches "small arms parts" but not "farms".
func ContainsAny(input string, entries []string) []string {
	if input == "" {
		return nil
	}
	padded := " " + input + " "
	var hits []string
	for _, e := range entries {
		if e != "" && strings.Contains(padded, " "+e+" ") {
			hits = append(hits, e)
		}
	}
	return hits
}

// ContainsSubstring returns every entry that occurs anywhere in input, in
// list order. "weapon" matches "weaponry" and "weaponized drones".
func ContainsSubstring(input string, entries []string) []string {
	if input == "" {
		return nil
	}
	var hits []string
	for _, e := range entries {
		if e != "" && strings.Contains(input, e) {
			hits = append(hits, e)
		}
	}
	return hits
}
