package room

import "github.com/wordrush/wordrush/internal/game/mode"

// Settings bounds. Each field clamps independently.
const (
	MinRounds       = 1
	MaxRounds       = 20
	MinRoundSeconds = 30
	MaxRoundSeconds = 180
	MinWordLenFloor = 2
	MinWordLenCeil  = 7
	WordLengthFloor = 4
	WordLengthCeil  = 8
)

// GameSettings is the host-tunable room configuration. Mutable only by the
// host and only while the room is in the lobby.
type GameSettings struct {
	// Rounds is the number of rounds per game, 1-20.
	Rounds int
	// RoundSeconds is the length of one round in seconds, 30-180.
	RoundSeconds int
	// Mode selects the game variant.
	Mode mode.Mode
	// MinWordLength is the shortest accepted classic-mode word, 2-7.
	MinWordLength int
	// FullBonus enables the classic-mode bonus for using every source
	// letter.
	FullBonus bool
	// WordLength is the guess/scramble target answer length, 4-8.
	WordLength int
}

// DefaultSettings returns the settings a freshly created room starts with.
func DefaultSettings() GameSettings {
	return GameSettings{
		Rounds:        7,
		RoundSeconds:  60,
		Mode:          mode.ModeClassic,
		MinWordLength: 3,
		FullBonus:     true,
		WordLength:    6,
	}
}

// SettingsPatch is a partial settings update. Nil fields are untouched;
// set fields are clamped to their valid range independently. An
// unrecognized mode name leaves the current mode in place.
type SettingsPatch struct {
	Rounds        *int
	RoundSeconds  *int
	Mode          *string
	MinWordLength *int
	FullBonus     *bool
	WordLength    *int
}

// apply merges the patch into s, clamping each provided field.
func (p SettingsPatch) apply(s *GameSettings) {
	if p.Rounds != nil {
		s.Rounds = clamp(*p.Rounds, MinRounds, MaxRounds)
	}
	if p.RoundSeconds != nil {
		s.RoundSeconds = clamp(*p.RoundSeconds, MinRoundSeconds, MaxRoundSeconds)
	}
	if p.Mode != nil {
		if m, ok := mode.Parse(*p.Mode); ok {
			s.Mode = m
		}
	}
	if p.MinWordLength != nil {
		s.MinWordLength = clamp(*p.MinWordLength, MinWordLenFloor, MinWordLenCeil)
	}
	if p.FullBonus != nil {
		s.FullBonus = *p.FullBonus
	}
	if p.WordLength != nil {
		s.WordLength = clamp(*p.WordLength, WordLengthFloor, WordLengthCeil)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
