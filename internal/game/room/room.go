// Package room is the session and round orchestration core: it tracks the
// live game rooms, their players and settings, and advances each room
// through the lobby / round / round-results / game-over lifecycle. The
// Registry owns the room collection; the Engine owns round progression and
// word submission for a room. Transport, auth, and persistence live
// outside this package.
package room

import (
	"strings"
	"sync"
	"time"
)

// Phase is a room's coarse lifecycle state. Transitions are strictly
// sequential: lobby -> round -> round_results -> {round | game_over}, with
// game_over -> lobby only via an explicit play-again.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseRound
	PhaseRoundResults
	PhaseGameOver
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseRound:
		return "round"
	case PhaseRoundResults:
		return "round_results"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Membership bounds for one room.
const (
	MinPlayers = 2
	MaxPlayers = 10
)

// MaxNameLength caps a display name after trimming.
const MaxNameLength = 15

// Player is one room member. Fields are mutated only while the owning
// room's lock is held.
type Player struct {
	// ID is the stable player identifier; it survives reconnects and is
	// distinct from any transport-session id.
	ID string
	// Name is the trimmed display name.
	Name string
	// Connected is false while the player's transport is gone but their
	// seat is held for reconnection.
	Connected bool
	// IsHost marks the single host of a non-empty room.
	IsHost bool
	// IsReady marks lobby readiness. The host is implicitly always ready.
	IsReady bool
	// Score is the cumulative game score. Never negative.
	Score int
	// Freezes and Burns are the player's unspent power-up counters.
	Freezes int
	Burns   int
}

// Room is one lobby+game session identified by a short shareable code.
// All state behind mu; accessor methods take the lock, and the Engine in
// this package mutates round state under the same lock.
type Room struct {
	// Code is the immutable six-character room code.
	Code string

	mu              sync.Mutex
	hostID          string
	players         []*Player // insertion order = join order
	byID            map[string]*Player
	settings        GameSettings
	phase           Phase
	usedSourceWords map[string]bool
	round           *RoundState
	timer           *Timer
	createdAt       time.Time
}

func newRoom(code string, settings GameSettings, createdAt time.Time) *Room {
	return &Room{
		Code:            code,
		settings:        settings,
		phase:           PhaseLobby,
		byID:            make(map[string]*Player),
		usedSourceWords: make(map[string]bool),
		createdAt:       createdAt,
	}
}

// addPlayerLocked appends a player in join order. Caller holds r.mu.
func (r *Room) addPlayerLocked(p *Player) {
	r.players = append(r.players, p)
	r.byID[p.ID] = p
}

// removePlayerLocked deletes the player and reassigns the host bit to the
// first remaining player when the host leaves. Caller holds r.mu.
// Returns the promoted host id, or "" when no promotion happened.
func (r *Room) removePlayerLocked(playerID string) (newHostID string) {
	p, ok := r.byID[playerID]
	if !ok {
		return ""
	}
	delete(r.byID, playerID)
	for i, q := range r.players {
		if q.ID == playerID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	if p.IsHost && len(r.players) > 0 {
		next := r.players[0]
		next.IsHost = true
		next.IsReady = true
		r.hostID = next.ID
		return next.ID
	}
	if len(r.players) == 0 {
		r.hostID = ""
	}
	return ""
}

// findByNameLocked returns the player whose name matches case-insensitively.
// Caller holds r.mu.
func (r *Room) findByNameLocked(name string) *Player {
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// connectedCountLocked counts connected players. Caller holds r.mu.
func (r *Room) connectedCountLocked() int {
	n := 0
	for _, p := range r.players {
		if p.Connected {
			n++
		}
	}
	return n
}

// Phase returns the room's current phase.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// HostID returns the current host's player id, or "" for an empty room.
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// Settings returns a copy of the room's settings.
func (r *Room) Settings() GameSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// PlayerCount returns the number of seated players, connected or not.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Players returns a join-ordered snapshot of the room's members.
func (r *Room) Players() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Player, len(r.players))
	for i, p := range r.players {
		out[i] = *p
	}
	return out
}

// Player returns a snapshot of one member.
func (r *Room) Player(playerID string) (Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[playerID]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// ArmTimer stops any armed timer and starts a new one firing onFire after
// d. The timer is tied to the room: deletion and early round end stop it.
//
// Precondition: d > 0; onFire must not be nil.
func (r *Room) ArmTimer(d time.Duration, onFire func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = NewTimer(d, onFire)
}

// StopTimer cancels the armed timer, if any.
func (r *Room) StopTimer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimerLocked()
}

func (r *Room) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// trimName normalizes a display name: whitespace-trimmed, capped at
// MaxNameLength runes.
func trimName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	return name
}
