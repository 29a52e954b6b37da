// Package mode generates per-round content for each game mode: the hidden
// answer plus whatever public artifacts the mode shows players (blanked
// word, scrambled letters, riddle text). Modes form a closed enum with one
// generator per variant, so adding a mode is a compile-checked change.
package mode

import "fmt"

// Mode identifies one of the four game variants.
type Mode int

const (
	// ModeClassic draws a source word players build shorter words from.
	ModeClassic Mode = iota
	// ModeGuess hides a dictionary word behind a partial reveal.
	ModeGuess
	// ModeScramble shows the answer's letters shuffled.
	ModeScramble
	// ModeTeaser poses a riddle whose answer is the hidden word.
	ModeTeaser
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeGuess:
		return "guess"
	case ModeScramble:
		return "scramble"
	case ModeTeaser:
		return "teaser"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Parse maps a wire name to a Mode.
//
// Postcondition: Returns (mode, true) for the four known names, or
// (ModeClassic, false) for anything else.
func Parse(s string) (Mode, bool) {
	switch s {
	case "classic":
		return ModeClassic, true
	case "guess":
		return ModeGuess, true
	case "scramble":
		return ModeScramble, true
	case "teaser":
		return ModeTeaser, true
	default:
		return ModeClassic, false
	}
}

// IsGuessLike reports whether the mode is won by matching the hidden
// answer exactly (guess, scramble, teaser) rather than by building words
// from a letter pool.
func (m Mode) IsGuessLike() bool {
	return m == ModeGuess || m == ModeScramble || m == ModeTeaser
}
