package words

import "strings"

// Scramble returns an upper-cased Fisher-Yates shuffle of word that differs
// from the original ordering. Words with fewer than two distinct letters
// admit only one ordering and are returned upper-cased unchanged.
//
// Precondition: word is normalized lowercase; src must be non-nil.
// Postcondition: The result is upper-case and, when word has at least two
// distinct letters, differs from strings.ToUpper(word).
func Scramble(word string, src Source) string {
	if distinctLetters(word) < 2 {
		return strings.ToUpper(word)
	}
	letters := []byte(word)
	for {
		for i := len(letters) - 1; i > 0; i-- {
			j := src.Intn(i + 1)
			letters[i], letters[j] = letters[j], letters[i]
		}
		if string(letters) != word {
			return strings.ToUpper(string(letters))
		}
	}
}

func distinctLetters(word string) int {
	var seen [256]bool
	n := 0
	for i := 0; i < len(word); i++ {
		if !seen[word[i]] {
			seen[word[i]] = true
			n++
		}
	}
	return n
}

// RevealMask picks the positions of word shown to players in guess mode:
// the first letter, plus ceil(40%) of the remaining positions chosen at
// random.
//
// Precondition: word is non-empty; src must be non-nil.
// Postcondition: mask[0] is true; the number of true entries equals
// 1 + ceil(0.4*(len(word)-1)).
func RevealMask(word string, src Source) []bool {
	n := len(word)
	mask := make([]bool, n)
	mask[0] = true
	remaining := n - 1
	if remaining <= 0 {
		return mask
	}
	extra := (2*remaining + 4) / 5 // ceil(0.4 * remaining)
	hidden := make([]int, 0, remaining)
	for i := 1; i < n; i++ {
		hidden = append(hidden, i)
	}
	for picked := 0; picked < extra; picked++ {
		k := src.Intn(len(hidden))
		mask[hidden[k]] = true
		hidden = append(hidden[:k], hidden[k+1:]...)
	}
	return mask
}

// ApplyMask renders word with unrevealed positions replaced by blank.
//
// Precondition: len(mask) == len(word).
func ApplyMask(word string, mask []bool, blank rune) string {
	var b strings.Builder
	b.Grow(len(word))
	for i, r := range word {
		if mask[i] {
			b.WriteRune(r)
		} else {
			b.WriteRune(blank)
		}
	}
	return b.String()
}
