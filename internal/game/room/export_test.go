package room

import "time"

// SetNowForTest overrides the engine's clock.
func (e *Engine) SetNowForTest(now func() time.Time) {
	e.now = now
}

// SetNowForTest overrides the registry's clock.
func (reg *Registry) SetNowForTest(now func() time.Time) {
	reg.now = now
}

// ActiveRound exposes the room's round state for assertions.
func (r *Room) ActiveRound() *RoundState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.round
}

// TimerArmed reports whether the room holds an armed timer.
func (r *Room) TimerArmed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}
