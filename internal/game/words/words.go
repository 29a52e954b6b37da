// Package words provides the pure word rules shared by every game mode:
// per-length scoring, letter-multiset checks, input normalization, and the
// scramble/reveal helpers round generation builds on. The package holds no
// state; randomness is injected through Source.
package words

import "strings"

// FullBonus is the flat bonus awarded when an accepted word consumes every
// letter of the source word exactly once each.
const FullBonus = 8

// BasePoints returns the score for an accepted word of the given length.
//
// Postcondition: Returns 0 for n < 3; 1, 2, 4, 7 for lengths 3-6; 11 for
// any length >= 7.
func BasePoints(n int) int {
	switch {
	case n < 3:
		return 0
	case n == 3:
		return 1
	case n == 4:
		return 2
	case n == 5:
		return 4
	case n == 6:
		return 7
	default:
		return 11
	}
}

// Normalize lower-cases raw and strips every non-letter rune.
//
// Postcondition: The result contains only runes in [a-z].
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsAlphabetic reports whether s is non-empty and contains only [a-z].
func IsAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// letterCounts tallies the a-z letter multiset of s. Non-letter runes are
// ignored; callers normalize first.
func letterCounts(s string) [26]int {
	var counts [26]int
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			counts[r-'a']++
		}
	}
	return counts
}

// CanBuildFrom reports whether word can be assembled from the letters of
// source, using each letter no more times than it appears in source.
//
// Precondition: word and source are normalized lowercase.
func CanBuildFrom(word, source string) bool {
	if word == "" {
		return false
	}
	have := letterCounts(source)
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
		have[r-'a']--
		if have[r-'a'] < 0 {
			return false
		}
	}
	return true
}

// UsesAllLetters reports whether word consumes the full letter multiset of
// source exactly: same letters, same multiplicities.
//
// Precondition: word and source are normalized lowercase.
func UsesAllLetters(word, source string) bool {
	return letterCounts(word) == letterCounts(source)
}
