package room

import "github.com/wordrush/wordrush/internal/game/words"

// PowerUpKind identifies a spendable power-up.
type PowerUpKind string

const (
	// PowerFreeze temporarily hinders an opponent's input. It has no
	// room-state side effect here: it is a pure signal for the transport
	// layer to act on.
	PowerFreeze PowerUpKind = "freeze"
	// PowerBurn debits a random opponent's score.
	PowerBurn PowerUpKind = "burn"
)

// burnFractionDenominator: burn debits ceil(score/10), clamped to the
// target's score.
const burnFractionDenominator = 10

// PowerUpResult reports the outcome of spending a power-up.
type PowerUpResult struct {
	Success bool `json:"success"`
	// TargetID is the affected opponent, "" on failure.
	TargetID string `json:"targetId,omitempty"`
	// PointsLost is the burn debit, 0 for freeze.
	PointsLost int `json:"pointsLost,omitempty"`
}

// UsePowerUp spends one of the caller's power-ups. The counter is
// decremented only when a valid target exists. Burn targets are connected
// opponents with a positive score; freeze targets any connected opponent.
//
// Postcondition: Burn debits min(targetScore, ceil(targetScore*0.1)) and
// never drives a score negative.
func (reg *Registry) UsePowerUp(code, playerID string, kind PowerUpKind) PowerUpResult {
	reg.mu.RLock()
	r, ok := reg.rooms[code]
	reg.mu.RUnlock()
	if !ok {
		return PowerUpResult{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	caller, seated := r.byID[playerID]
	if !seated {
		return PowerUpResult{}
	}

	switch kind {
	case PowerFreeze:
		if caller.Freezes <= 0 {
			return PowerUpResult{}
		}
		target := r.randomTargetLocked(reg.rnd, playerID, false)
		if target == nil {
			return PowerUpResult{}
		}
		caller.Freezes--
		return PowerUpResult{Success: true, TargetID: target.ID}

	case PowerBurn:
		if caller.Burns <= 0 {
			return PowerUpResult{}
		}
		target := r.randomTargetLocked(reg.rnd, playerID, true)
		if target == nil {
			return PowerUpResult{}
		}
		caller.Burns--
		debit := (target.Score + burnFractionDenominator - 1) / burnFractionDenominator
		if debit > target.Score {
			debit = target.Score
		}
		target.Score -= debit
		return PowerUpResult{Success: true, TargetID: target.ID, PointsLost: debit}

	default:
		return PowerUpResult{}
	}
}

// randomTargetLocked picks a uniform random connected opponent, optionally
// restricted to positive scores. Caller holds r.mu.
func (r *Room) randomTargetLocked(rnd words.Source, excludeID string, needScore bool) *Player {
	candidates := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.ID == excludeID || !p.Connected {
			continue
		}
		if needScore && p.Score <= 0 {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[rnd.Intn(len(candidates))]
}
