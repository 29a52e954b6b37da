package mode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordrush/wordrush/internal/game/mode"
	"github.com/wordrush/wordrush/internal/game/words"
	"github.com/wordrush/wordrush/internal/game/wordsource"
)

type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// stubWords is a canned word supply for deterministic round generation.
type stubWords struct {
	sourceWord string
	dictWord   string
	riddle     wordsource.Riddle
}

func (s stubWords) IsWord(word string) bool { return false }

func (s stubWords) RandomSourceWord(minLen, maxLen int, exclude map[string]bool) (string, bool) {
	if s.sourceWord == "" || len(s.sourceWord) < minLen || len(s.sourceWord) > maxLen {
		return "", false
	}
	return s.sourceWord, true
}

func (s stubWords) RandomDictionaryWord(minLen, maxLen int, exclude map[string]bool) (string, bool) {
	if s.dictWord == "" || len(s.dictWord) < minLen || len(s.dictWord) > maxLen {
		return "", false
	}
	return s.dictWord, true
}

func (s stubWords) RandomRiddle() (wordsource.Riddle, bool) {
	if s.riddle.Question == "" {
		return wordsource.Riddle{}, false
	}
	return s.riddle, true
}

func TestParse(t *testing.T) {
	cases := []struct {
		in     string
		want   mode.Mode
		wantOK bool
	}{
		{"classic", mode.ModeClassic, true},
		{"guess", mode.ModeGuess, true},
		{"scramble", mode.ModeScramble, true},
		{"teaser", mode.ModeTeaser, true},
		{"", mode.ModeClassic, false},
		{"CLASSIC", mode.ModeClassic, false},
		{"bogus", mode.ModeClassic, false},
	}
	for _, tc := range cases {
		got, ok := mode.Parse(tc.in)
		assert.Equal(t, tc.want, got, "Parse(%q)", tc.in)
		assert.Equal(t, tc.wantOK, ok, "Parse(%q) ok", tc.in)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, m := range []mode.Mode{mode.ModeClassic, mode.ModeGuess, mode.ModeScramble, mode.ModeTeaser} {
		parsed, ok := mode.Parse(m.String())
		require.True(t, ok, "%v", m)
		assert.Equal(t, m, parsed)
	}
}

func TestIsGuessLike(t *testing.T) {
	assert.False(t, mode.ModeClassic.IsGuessLike())
	assert.True(t, mode.ModeGuess.IsGuessLike())
	assert.True(t, mode.ModeScramble.IsGuessLike())
	assert.True(t, mode.ModeTeaser.IsGuessLike())
}

func TestSetup_Classic(t *testing.T) {
	ws := stubWords{sourceWord: "planets"}
	setup, err := mode.Setup(mode.ModeClassic, mode.Params{}, ws, &seqSource{vals: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, mode.ModeClassic, setup.Mode)
	assert.Equal(t, "planets", setup.Answer)
	assert.Empty(t, setup.Blanked)
	assert.Empty(t, setup.Scrambled)
	assert.Empty(t, setup.Riddle)
}

func TestSetup_Guess(t *testing.T) {
	ws := stubWords{dictWord: "garden"}
	setup, err := mode.Setup(mode.ModeGuess, mode.Params{WordLength: 6}, ws, &seqSource{vals: []int{0, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, "garden", setup.Answer)
	require.Len(t, setup.Blanked, 6)
	assert.Equal(t, byte('g'), setup.Blanked[0], "first letter is always revealed")
	assert.Contains(t, setup.Blanked, "_", "some letters stay hidden")
	assert.Contains(t, setup.Hint, `"g"`)
	assert.Contains(t, setup.Hint, `"n"`)
	assert.Contains(t, setup.Hint, "6 letters")
}

func TestSetup_Classic_RejectsOutOfRangeSourceWord(t *testing.T) {
	// Source words must be 6-9 letters; a curated-too-short pool is an
	// error, not a silent undersized round.
	ws := stubWords{sourceWord: "cat"}
	_, err := mode.Setup(mode.ModeClassic, mode.Params{}, ws, &seqSource{vals: []int{0}})
	assert.Error(t, err)
}

func TestSetup_Guess_NoWordOfLength(t *testing.T) {
	ws := stubWords{dictWord: "garden"}
	_, err := mode.Setup(mode.ModeGuess, mode.Params{WordLength: 8}, ws, &seqSource{vals: []int{0}})
	assert.Error(t, err)
}

func TestSetup_Scramble(t *testing.T) {
	ws := stubWords{dictWord: "garden"}
	setup, err := mode.Setup(mode.ModeScramble, mode.Params{WordLength: 6}, ws, &seqSource{vals: []int{3, 1, 4, 1, 5}})
	require.NoError(t, err)
	assert.Equal(t, "garden", setup.Answer)
	assert.Equal(t, strings.ToUpper(setup.Scrambled), setup.Scrambled)
	assert.NotEqual(t, "GARDEN", setup.Scrambled)
	assert.True(t, words.UsesAllLetters(strings.ToLower(setup.Scrambled), "garden"))
}

func TestSetup_Teaser(t *testing.T) {
	ws := stubWords{riddle: wordsource.Riddle{Question: "What has keys but no locks?", Answer: "piano"}}
	setup, err := mode.Setup(mode.ModeTeaser, mode.Params{}, ws, &seqSource{vals: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, "piano", setup.Answer)
	assert.Equal(t, "What has keys but no locks?", setup.Riddle)
	assert.Contains(t, setup.Hint, `"p"`)
	assert.Contains(t, setup.Hint, "5 letters")
}

func TestSetup_TeaserNoRiddles(t *testing.T) {
	_, err := mode.Setup(mode.ModeTeaser, mode.Params{}, stubWords{}, &seqSource{vals: []int{0}})
	assert.Error(t, err)
}
