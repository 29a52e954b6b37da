// Package wordsource supplies the read-only word data the game core draws
// from: the gameplay dictionary, the pool of classic-mode source words, and
// the teaser riddles. The game core depends only on the Source interface;
// Static is the embedded/file-backed implementation wired by the server.
package wordsource

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wordrush/wordrush/internal/game/words"
)

// Riddle is one teaser-mode question/answer pair.
type Riddle struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Source is the injected read-only word supply the game core draws from.
type Source interface {
	// IsWord reports whether word appears in the gameplay dictionary.
	IsWord(word string) bool
	// RandomSourceWord returns a random classic-mode source word with
	// length in [minLen, maxLen] and not in exclude, resetting the
	// exclusion once every in-range candidate is excluded. Returns false
	// when no source word has a length in range.
	RandomSourceWord(minLen, maxLen int, exclude map[string]bool) (string, bool)
	// RandomDictionaryWord returns a random dictionary word with length in
	// [minLen, maxLen], preferring words not in exclude. Returns false when
	// no dictionary word has a length in range.
	RandomDictionaryWord(minLen, maxLen int, exclude map[string]bool) (string, bool)
	// RandomRiddle returns a random riddle. Returns false when no riddles
	// are loaded.
	RandomRiddle() (Riddle, bool)
}

// Static is an immutable in-memory Source built from embedded defaults or
// override files. Safe for concurrent use once constructed.
type Static struct {
	dictionary  map[string]bool
	sourceWords []string
	riddles     []Riddle
	rnd         words.Source
}

var _ Source = (*Static)(nil)

// NewStatic builds a Static source. Empty paths fall back to the embedded
// defaults. Words are normalized to lowercase; riddle answers are
// normalized the same way submissions are.
//
// Precondition: rnd must be non-nil.
// Postcondition: Returns a Static with a non-empty dictionary and source
// pool, or a non-nil error.
func NewStatic(dictPath, sourcePath, riddlePath string, rnd words.Source) (*Static, error) {
	dict, err := loadWordList(dictPath, embeddedDictionary)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}
	source, err := loadWordList(sourcePath, embeddedSourceWords)
	if err != nil {
		return nil, fmt.Errorf("loading source words: %w", err)
	}
	riddles, err := loadRiddles(riddlePath)
	if err != nil {
		return nil, fmt.Errorf("loading riddles: %w", err)
	}

	if len(dict) == 0 {
		return nil, fmt.Errorf("dictionary is empty")
	}
	if len(source) == 0 {
		return nil, fmt.Errorf("source word pool is empty")
	}

	s := &Static{
		dictionary:  make(map[string]bool, len(dict)),
		sourceWords: source,
		riddles:     riddles,
		rnd:         rnd,
	}
	for _, w := range dict {
		s.dictionary[w] = true
	}
	// Source words double as dictionary entries so a full-pool word is
	// always a legal submission.
	for _, w := range source {
		s.dictionary[w] = true
	}
	return s, nil
}

// IsWord reports whether word is in the dictionary.
func (s *Static) IsWord(word string) bool {
	return s.dictionary[word]
}

// RandomSourceWord draws a source word with length in [minLen, maxLen].
// When every in-range word is excluded the exclusion resets and the full
// in-range pool is drawn from.
func (s *Static) RandomSourceWord(minLen, maxLen int, exclude map[string]bool) (string, bool) {
	inRange := make([]string, 0, len(s.sourceWords))
	fresh := make([]string, 0, len(s.sourceWords))
	for _, w := range s.sourceWords {
		if len(w) < minLen || len(w) > maxLen {
			continue
		}
		inRange = append(inRange, w)
		if !exclude[w] {
			fresh = append(fresh, w)
		}
	}
	candidates := fresh
	if len(candidates) == 0 {
		candidates = inRange
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[s.rnd.Intn(len(candidates))], true
}

// RandomDictionaryWord draws a dictionary word with length in
// [minLen, maxLen]. Excluded words are skipped unless exclusion empties the
// candidate set.
func (s *Static) RandomDictionaryWord(minLen, maxLen int, exclude map[string]bool) (string, bool) {
	inRange := make([]string, 0, 64)
	fresh := make([]string, 0, 64)
	for w := range s.dictionary {
		if len(w) < minLen || len(w) > maxLen {
			continue
		}
		inRange = append(inRange, w)
		if !exclude[w] {
			fresh = append(fresh, w)
		}
	}
	candidates := fresh
	if len(candidates) == 0 {
		candidates = inRange
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[s.rnd.Intn(len(candidates))], true
}

// RandomRiddle draws a random riddle.
func (s *Static) RandomRiddle() (Riddle, bool) {
	if len(s.riddles) == 0 {
		return Riddle{}, false
	}
	return s.riddles[s.rnd.Intn(len(s.riddles))], true
}

// DictionarySize returns the number of distinct dictionary words.
func (s *Static) DictionarySize() int {
	return len(s.dictionary)
}

// loadWordList reads one word per line from path, or parses fallback when
// path is empty. Blank lines and '#' comments are skipped; entries are
// normalized and non-alphabetic entries dropped.
func loadWordList(path, fallback string) ([]string, error) {
	raw := fallback
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = string(data)
	}

	var list []string
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w := words.Normalize(line)
		if words.IsAlphabetic(w) {
			list = append(list, w)
		}
	}
	return list, scanner.Err()
}

// loadRiddles parses the YAML riddle list from path, or the embedded
// defaults when path is empty. Answers are normalized to match submission
// normalization.
func loadRiddles(path string) ([]Riddle, error) {
	raw := []byte(embeddedRiddles)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = data
	}

	var riddles []Riddle
	if err := yaml.Unmarshal(raw, &riddles); err != nil {
		return nil, fmt.Errorf("parsing riddle yaml: %w", err)
	}

	kept := riddles[:0]
	for _, r := range riddles {
		r.Answer = words.Normalize(r.Answer)
		r.Question = strings.TrimSpace(r.Question)
		if r.Question != "" && words.IsAlphabetic(r.Answer) {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
