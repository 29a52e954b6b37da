package room

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wordrush/wordrush/internal/game/dictionary"
	"github.com/wordrush/wordrush/internal/game/mode"
	"github.com/wordrush/wordrush/internal/game/words"
	"github.com/wordrush/wordrush/internal/game/wordsource"
)

// Engine advances rooms through their round lifecycle and resolves word
// submissions. It holds no per-room state of its own: everything mutable
// lives on the Room and is touched only under the room's lock. The one
// operation that may block, classic-mode dictionary validation, runs with
// the lock released and re-validates the round when it resumes.
type Engine struct {
	source  wordsource.Source
	checker dictionary.Checker
	rnd     words.Source
	logger  *zap.Logger
	now     func() time.Time
}

// NewEngine creates an Engine.
//
// Precondition: source, checker, rnd, and logger must be non-nil.
func NewEngine(source wordsource.Source, checker dictionary.Checker, rnd words.Source, logger *zap.Logger) *Engine {
	return &Engine{
		source:  source,
		checker: checker,
		rnd:     rnd,
		logger:  logger,
		now:     time.Now,
	}
}

// StartGame begins a game: host-only, 2-10 connected players, all scores
// reset, phase moves to PhaseRound, and round 0 is generated.
//
// Postcondition: On success the room holds a fresh RoundState and the
// returned view carries its public artifacts.
func (e *Engine) StartGame(r *Room, callerID string) (RoundPublic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	caller, seated := r.byID[callerID]
	if !seated || !caller.IsHost {
		return RoundPublic{}, ErrNotHost
	}
	connected := r.connectedCountLocked()
	if connected < MinPlayers || connected > MaxPlayers {
		return RoundPublic{}, ErrPlayerCount
	}

	for _, p := range r.players {
		p.Score = 0
		p.Freezes = 0
		p.Burns = 0
	}
	r.phase = PhaseRound
	if err := e.createRoundLocked(r, 0); err != nil {
		r.phase = PhaseLobby
		return RoundPublic{}, err
	}

	e.logger.Info("game started",
		zap.String("room", r.Code),
		zap.String("mode", r.settings.Mode.String()),
		zap.Int("rounds", r.settings.Rounds),
		zap.Int("players", connected),
	)
	return r.round.publicLocked(r.settings.Rounds), nil
}

// createRoundLocked generates round content and installs a fresh
// RoundState. Caller holds r.mu and has set phase to PhaseRound.
func (e *Engine) createRoundLocked(r *Room, index int) error {
	setup, err := mode.Setup(r.settings.Mode, mode.Params{
		WordLength:      r.settings.WordLength,
		UsedSourceWords: r.usedSourceWords,
	}, e.source, e.rnd)
	if err != nil {
		return err
	}
	if setup.Mode == mode.ModeClassic {
		r.usedSourceWords[setup.Answer] = true
	}
	r.round = newRoundState(index, setup, e.now(), r.settings.RoundSeconds)
	return nil
}

// SubmitWord validates and scores one submission. For classic mode the
// dictionary verdict may block on an external lookup; the room lock is not
// held across that await, and the used-word set is re-checked atomically
// once it resolves, so the second of two racing duplicates always loses.
func (e *Engine) SubmitWord(ctx context.Context, r *Room, playerID, raw string) SubmitResult {
	word := words.Normalize(raw)

	r.mu.Lock()
	rs := r.round
	if r.phase != PhaseRound || rs == nil || !e.now().Before(rs.EndsAt) {
		r.mu.Unlock()
		return reject(word, ReasonRoundEnded)
	}
	if _, seated := r.byID[playerID]; !seated {
		r.mu.Unlock()
		return reject(word, ReasonRoundEnded)
	}

	if rs.Mode.IsGuessLike() {
		defer r.mu.Unlock()
		return e.resolveGuessLocked(r, rs, playerID, word)
	}

	// Classic: too-short is decided before the dictionary is consulted.
	if len(word) < r.settings.MinWordLength {
		r.mu.Unlock()
		return reject(word, ReasonTooShort)
	}
	r.mu.Unlock()

	// Suspension point: no room lock held while the dictionary answers.
	valid := e.checker.Check(ctx, word)

	r.mu.Lock()
	defer r.mu.Unlock()
	// The round may have ended, been replaced, or lost the player while
	// the lookup was in flight.
	if r.phase != PhaseRound || r.round != rs || !e.now().Before(rs.EndsAt) {
		return reject(word, ReasonRoundEnded)
	}
	player, seated := r.byID[playerID]
	if !seated {
		return reject(word, ReasonRoundEnded)
	}
	if !valid {
		return reject(word, ReasonNotInDictionary)
	}
	if !words.CanBuildFrom(word, rs.Answer) {
		return reject(word, ReasonInvalidLetters)
	}
	if _, claimed := rs.usedWords[word]; claimed {
		return reject(word, ReasonAlreadyUsed)
	}

	points := words.BasePoints(len(word))
	full := r.settings.FullBonus && words.UsesAllLetters(word, rs.Answer)
	if full {
		points += words.FullBonus
	}

	rs.usedWords[word] = playerID
	rs.submissions[playerID] = append(rs.submissions[playerID], Submission{
		Word:      word,
		Points:    points,
		FullBonus: full,
	})
	rs.roundScores[playerID] += points
	player.Score += points

	res := SubmitResult{
		Accepted:    true,
		Word:        word,
		Points:      points,
		FullBonus:   full,
		PlayerScore: player.Score,
	}
	if len(rs.submissions[playerID]) == freezeAwardWordCount {
		player.Freezes++
		res.AwardedFreeze = true
	}
	if points >= burnAwardPoints {
		player.Burns++
		res.AwardedBurn = true
	}
	return res
}

// resolveGuessLocked handles guess, scramble, and teaser submissions:
// exact match against the hidden answer is the only acceptance path.
// Caller holds r.mu.
func (e *Engine) resolveGuessLocked(r *Room, rs *RoundState, playerID, word string) SubmitResult {
	if rs.SolvedBy != "" {
		return reject(word, ReasonAlreadySolved)
	}
	if word != rs.Answer {
		// Silent miss: no penalty, no broadcastable detail.
		return reject(word, ReasonWrongGuess)
	}

	remaining := int(rs.EndsAt.Sub(e.now()).Seconds())
	if remaining < 1 {
		remaining = 1
	}
	points := solveBasePoints + remaining

	player := r.byID[playerID]
	rs.SolvedBy = playerID
	rs.submissions[playerID] = append(rs.submissions[playerID], Submission{
		Word:   word,
		Points: points,
	})
	rs.roundScores[playerID] += points
	player.Score += points

	return SubmitResult{
		Accepted:      true,
		Word:          word,
		Points:        points,
		Solved:        true,
		EndRoundEarly: true,
		PlayerScore:   player.Score,
	}
}

// EndRound closes the active round: phase moves to PhaseRoundResults, or
// PhaseGameOver when this was the final round, and the round summary is
// returned. Any armed room timer is stopped.
func (e *Engine) EndRound(r *Room) (RoundEndState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs := r.round
	if rs == nil || r.phase != PhaseRound {
		return RoundEndState{}, ErrNoActiveRound
	}
	r.stopTimerLocked()

	isLast := rs.Index >= r.settings.Rounds-1
	if isLast {
		r.phase = PhaseGameOver
	} else {
		r.phase = PhaseRoundResults
	}

	end := RoundEndState{
		Index:      rs.Index,
		Results:    r.roundResultsLocked(rs),
		SolvedBy:   rs.SolvedBy,
		IsGameOver: isLast,
	}
	if rs.Mode.IsGuessLike() && rs.SolvedBy == "" {
		end.Answer = rs.Answer
	}
	if isLast {
		over := r.gameOverLocked()
		end.GameOver = &over
	}

	e.logger.Info("round ended",
		zap.String("room", r.Code),
		zap.Int("round", rs.Index),
		zap.Bool("game_over", isLast),
	)
	return end, nil
}

// NextRound advances from round results to the next round, or finalizes
// the game when the round count is exhausted.
//
// Postcondition: Returns a non-nil round view or a non-nil game-over
// snapshot, never both.
func (e *Engine) NextRound(r *Room) (*RoundPublic, *GameOverState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs := r.round
	if rs == nil || r.phase != PhaseRoundResults {
		return nil, nil, ErrNoActiveRound
	}
	next := rs.Index + 1
	if next >= r.settings.Rounds {
		r.phase = PhaseGameOver
		over := r.gameOverLocked()
		return nil, &over, nil
	}

	r.phase = PhaseRound
	if err := e.createRoundLocked(r, next); err != nil {
		r.phase = PhaseRoundResults
		return nil, nil, err
	}
	pub := r.round.publicLocked(r.settings.Rounds)
	return &pub, nil, nil
}

// PlayAgain returns a finished room to the lobby: scores and power-ups
// zeroed, round state discarded. The used source-word set survives so an
// immediate rematch does not repeat recent words.
func (e *Engine) PlayAgain(r *Room) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopTimerLocked()
	r.round = nil
	r.phase = PhaseLobby
	for _, p := range r.players {
		p.Score = 0
		p.Freezes = 0
		p.Burns = 0
	}
}

// roundResultsLocked builds the per-player round summary, sorted by round
// points descending. Best word is the highest point value with length as
// the tiebreak. Caller holds r.mu.
func (r *Room) roundResultsLocked(rs *RoundState) []PlayerRoundResult {
	results := make([]PlayerRoundResult, 0, len(r.players))
	for _, p := range r.players {
		res := PlayerRoundResult{
			PlayerID:    p.ID,
			Name:        p.Name,
			RoundPoints: rs.roundScores[p.ID],
			TotalScore:  p.Score,
		}
		for _, sub := range rs.submissions[p.ID] {
			better := sub.Points > res.BestWordPoints ||
				(sub.Points == res.BestWordPoints && len(sub.Word) > len(res.BestWord))
			if better {
				res.BestWord = sub.Word
				res.BestWordPoints = sub.Points
			}
		}
		results = append(results, res)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RoundPoints > results[j].RoundPoints
	})
	return results
}

// gameOverLocked aggregates final standings. A unique top scorer wins; a
// tied top score is a draw with no winner. Caller holds r.mu.
func (r *Room) gameOverLocked() GameOverState {
	standings := make([]Standing, 0, len(r.players))
	for _, p := range r.players {
		standings = append(standings, Standing{PlayerID: p.ID, Name: p.Name, Score: p.Score})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	over := GameOverState{Standings: standings}
	if len(standings) >= 2 && standings[0].Score == standings[1].Score {
		over.IsDraw = true
	} else if len(standings) > 0 {
		over.WinnerID = standings[0].PlayerID
	}
	return over
}

// publicLocked renders the broadcastable round view. Caller holds the
// owning room's lock.
func (rs *RoundState) publicLocked(totalRounds int) RoundPublic {
	pub := RoundPublic{
		Index:       rs.Index,
		Mode:        rs.Mode.String(),
		Blanked:     rs.Blanked,
		Scrambled:   rs.Scrambled,
		Riddle:      rs.Riddle,
		Hint:        rs.Hint,
		StartedAt:   rs.StartedAt,
		EndsAt:      rs.EndsAt,
		TotalRounds: totalRounds,
	}
	if rs.Mode == mode.ModeClassic {
		pub.Letters = strings.ToUpper(rs.Answer)
	}
	return pub
}
