package room

import (
	"time"

	"github.com/wordrush/wordrush/internal/game/mode"
)

// Power-up award triggers. Both fire once per qualifying event, not on a
// cumulative threshold.
const (
	// freezeAwardWordCount awards a freeze the instant a player reaches
	// exactly this many accepted words in one round.
	freezeAwardWordCount = 5
	// burnAwardPoints awards a burn for any single accepted word worth at
	// least this many points.
	burnAwardPoints = 10
)

// solveBasePoints is the fixed part of a guess/scramble/teaser solve; the
// variable part is the seconds remaining.
const solveBasePoints = 10

// Submission is one accepted classic-mode word.
type Submission struct {
	Word      string
	Points    int
	FullBonus bool
}

// RoundState is the mutable state of one active round. It is the
// authoritative accumulation point for scoring while the round runs; a
// summary snapshot survives it at round end. Mutated only under the owning
// room's lock.
type RoundState struct {
	// Index is the 0-based round number within the game.
	Index int
	Mode  mode.Mode
	// Answer is the hidden source/answer word.
	Answer string
	// Public mode artifacts.
	Blanked   string
	Scrambled string
	Riddle    string
	Hint      string
	// StartedAt and EndsAt are server-authoritative round bounds.
	StartedAt time.Time
	EndsAt    time.Time
	// SolvedBy is the first correct solver in guess-like modes, "" while
	// unsolved.
	SolvedBy string

	usedWords   map[string]string // word -> claiming player id (classic)
	submissions map[string][]Submission
	roundScores map[string]int
}

func newRoundState(index int, setup mode.RoundSetup, startedAt time.Time, roundSeconds int) *RoundState {
	return &RoundState{
		Index:       index,
		Mode:        setup.Mode,
		Answer:      setup.Answer,
		Blanked:     setup.Blanked,
		Scrambled:   setup.Scrambled,
		Riddle:      setup.Riddle,
		Hint:        setup.Hint,
		StartedAt:   startedAt,
		EndsAt:      startedAt.Add(time.Duration(roundSeconds) * time.Second),
		usedWords:   make(map[string]string),
		submissions: make(map[string][]Submission),
		roundScores: make(map[string]int),
	}
}

// rebindPlayer remaps round bookkeeping from oldID to newID after a
// reconnection rebound the seat to a new player id.
func (rs *RoundState) rebindPlayer(oldID, newID string) {
	if subs, ok := rs.submissions[oldID]; ok {
		delete(rs.submissions, oldID)
		rs.submissions[newID] = subs
	}
	if score, ok := rs.roundScores[oldID]; ok {
		delete(rs.roundScores, oldID)
		rs.roundScores[newID] = score
	}
	for w, claimer := range rs.usedWords {
		if claimer == oldID {
			rs.usedWords[w] = newID
		}
	}
	if rs.SolvedBy == oldID {
		rs.SolvedBy = newID
	}
}

// RoundPublic is the round view broadcast to players. It never carries the
// hidden answer for guess-like modes; classic exposes its letter pool.
type RoundPublic struct {
	Index       int       `json:"index"`
	Mode        string    `json:"mode"`
	Letters     string    `json:"letters,omitempty"`   // classic: upper-case source word
	Blanked     string    `json:"blanked,omitempty"`   // guess
	Scrambled   string    `json:"scrambled,omitempty"` // scramble
	Riddle      string    `json:"riddle,omitempty"`    // teaser
	Hint        string    `json:"hint,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	EndsAt      time.Time `json:"endsAt"`
	TotalRounds int       `json:"totalRounds"`
}

// PlayerRoundResult is one player's line in a round-end summary.
type PlayerRoundResult struct {
	PlayerID       string `json:"playerId"`
	Name           string `json:"name"`
	RoundPoints    int    `json:"roundPoints"`
	TotalScore     int    `json:"totalScore"`
	BestWord       string `json:"bestWord,omitempty"`
	BestWordPoints int    `json:"bestWordPoints,omitempty"`
}

// RoundEndState summarizes a finished round, sorted by round points
// descending. Answer is set only when nobody solved a guess-like round.
type RoundEndState struct {
	Index      int                 `json:"index"`
	Results    []PlayerRoundResult `json:"results"`
	Answer     string              `json:"answer,omitempty"`
	SolvedBy   string              `json:"solvedBy,omitempty"`
	IsGameOver bool                `json:"isGameOver"`
	GameOver   *GameOverState      `json:"gameOver,omitempty"`
}

// Standing is one player's final placement.
type Standing struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// GameOverState is the end-of-game aggregation: standings by cumulative
// score descending, with draw detection for a tied top score.
type GameOverState struct {
	Standings []Standing `json:"standings"`
	WinnerID  string     `json:"winnerId,omitempty"`
	IsDraw    bool       `json:"isDraw"`
}

// SubmitReason is the stable rejection code for a word submission.
type SubmitReason string

const (
	ReasonTooShort        SubmitReason = "too_short"
	ReasonNotInDictionary SubmitReason = "not_in_dictionary"
	ReasonInvalidLetters  SubmitReason = "invalid_letters"
	ReasonAlreadyUsed     SubmitReason = "already_used"
	ReasonRoundEnded      SubmitReason = "round_ended"
	ReasonWrongGuess      SubmitReason = "wrong_guess"
	ReasonAlreadySolved   SubmitReason = "already_solved"
)

// SubmitResult reports the outcome of one word submission.
type SubmitResult struct {
	Accepted bool         `json:"accepted"`
	Reason   SubmitReason `json:"reason,omitempty"`
	Word     string       `json:"word"`
	Points   int          `json:"points,omitempty"`
	// FullBonus is true when the word consumed the source word's full
	// letter multiset and the bonus setting was on.
	FullBonus bool `json:"fullBonus,omitempty"`
	// AwardedFreeze / AwardedBurn mark power-ups earned by this word.
	AwardedFreeze bool `json:"awardedFreeze,omitempty"`
	AwardedBurn   bool `json:"awardedBurn,omitempty"`
	// Solved is true for the winning guess in guess-like modes.
	Solved bool `json:"solved,omitempty"`
	// EndRoundEarly signals the caller to cut the round short.
	EndRoundEarly bool `json:"-"`
	// PlayerScore is the submitter's cumulative score after this word.
	PlayerScore int `json:"playerScore"`
}

func reject(word string, reason SubmitReason) SubmitResult {
	return SubmitResult{Word: word, Reason: reason}
}
