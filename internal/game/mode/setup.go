package mode

import (
	"fmt"

	"github.com/wordrush/wordrush/internal/game/words"
	"github.com/wordrush/wordrush/internal/game/wordsource"
)

// Source-word lengths drawn in classic mode.
const (
	classicMinLength = 6
	classicMaxLength = 9
)

// Params carries the mode-specific knobs round generation needs.
type Params struct {
	// WordLength is the target answer length for guess and scramble.
	WordLength int
	// UsedSourceWords excludes recently played classic source words.
	UsedSourceWords map[string]bool
}

// RoundSetup is the generated content for one round: the hidden answer and
// the public artifacts shown to players.
type RoundSetup struct {
	Mode      Mode
	Answer    string
	Blanked   string // guess: answer with unrevealed letters as '_'
	Scrambled string // scramble: shuffled upper-case letters
	Riddle    string // teaser: question text
	Hint      string // guess/teaser: human-readable hint line
}

// Setup generates round content for the given mode.
//
// Precondition: ws and rnd must be non-nil; for guess and scramble,
// p.WordLength must be a playable length.
// Postcondition: Returns a RoundSetup with a non-empty Answer, or an error
// when the word source cannot supply the mode's content.
func Setup(m Mode, p Params, ws wordsource.Source, rnd words.Source) (RoundSetup, error) {
	switch m {
	case ModeClassic:
		return setupClassic(p, ws)
	case ModeGuess:
		return setupGuess(p, ws, rnd)
	case ModeScramble:
		return setupScramble(p, ws, rnd)
	case ModeTeaser:
		return setupTeaser(ws)
	default:
		return RoundSetup{}, fmt.Errorf("unknown mode %v", m)
	}
}

func setupClassic(p Params, ws wordsource.Source) (RoundSetup, error) {
	answer, ok := ws.RandomSourceWord(classicMinLength, classicMaxLength, p.UsedSourceWords)
	if !ok {
		return RoundSetup{}, fmt.Errorf("no source word of length %d-%d", classicMinLength, classicMaxLength)
	}
	return RoundSetup{Mode: ModeClassic, Answer: answer}, nil
}

func setupGuess(p Params, ws wordsource.Source, rnd words.Source) (RoundSetup, error) {
	answer, ok := ws.RandomDictionaryWord(p.WordLength, p.WordLength, nil)
	if !ok {
		return RoundSetup{}, fmt.Errorf("no dictionary word of length %d", p.WordLength)
	}
	mask := words.RevealMask(answer, rnd)
	return RoundSetup{
		Mode:    ModeGuess,
		Answer:  answer,
		Blanked: words.ApplyMask(answer, mask, '_'),
		Hint: fmt.Sprintf("Starts with %q, ends with %q, %d letters",
			answer[:1], answer[len(answer)-1:], len(answer)),
	}, nil
}

func setupScramble(p Params, ws wordsource.Source, rnd words.Source) (RoundSetup, error) {
	answer, ok := ws.RandomDictionaryWord(p.WordLength, p.WordLength, nil)
	if !ok {
		return RoundSetup{}, fmt.Errorf("no dictionary word of length %d", p.WordLength)
	}
	return RoundSetup{
		Mode:      ModeScramble,
		Answer:    answer,
		Scrambled: words.Scramble(answer, rnd),
	}, nil
}

func setupTeaser(ws wordsource.Source) (RoundSetup, error) {
	riddle, ok := ws.RandomRiddle()
	if !ok {
		return RoundSetup{}, fmt.Errorf("word source has no riddles")
	}
	return RoundSetup{
		Mode:   ModeTeaser,
		Answer: riddle.Answer,
		Riddle: riddle.Question,
		Hint: fmt.Sprintf("Starts with %q, %d letters",
			riddle.Answer[:1], len(riddle.Answer)),
	}, nil
}
