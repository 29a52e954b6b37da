package room

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wordrush/wordrush/internal/game/words"
)

// Registry owns the collection of live rooms keyed by room code, plus the
// explicit player-to-room index. All methods are safe for concurrent use.
// Lock order: Registry.mu before Room.mu, always.
type Registry struct {
	mu          sync.RWMutex
	rooms       map[string]*Room
	playerRooms map[string]string // player id -> room code

	rnd    words.Source
	logger *zap.Logger
	now    func() time.Time
}

// NewRegistry creates an empty Registry.
//
// Precondition: rnd and logger must be non-nil.
func NewRegistry(rnd words.Source, logger *zap.Logger) *Registry {
	return &Registry{
		rooms:       make(map[string]*Room),
		playerRooms: make(map[string]string),
		rnd:         rnd,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateRoom creates a room with default settings and the caller seated as
// its sole, ready host.
//
// Postcondition: The returned room is in PhaseLobby with exactly one
// player; its code is unique among live rooms.
func (reg *Registry) CreateRoom(hostName, hostID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code := reg.generateCodeLocked()
	r := newRoom(code, DefaultSettings(), reg.now())
	host := &Player{
		ID:        hostID,
		Name:      trimName(hostName),
		Connected: true,
		IsHost:    true,
		IsReady:   true,
	}
	r.mu.Lock()
	r.addPlayerLocked(host)
	r.hostID = hostID
	r.mu.Unlock()

	reg.rooms[code] = r
	reg.playerRooms[hostID] = code

	reg.logger.Info("room created",
		zap.String("room", code),
		zap.String("host", hostID),
	)
	return r
}

// JoinRoom seats a player in the room, or rebinds them when a seated
// player already carries the same case-insensitive display name
// (reconnection).
//
// Postcondition: Returns ErrRoomNotFound, ErrGameInProgress, or
// ErrRoomFull on rejection; otherwise the player is seated (or rebound)
// and indexed.
func (reg *Registry) JoinRoom(code, name, playerID string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name = trimName(name)
	if existing := r.findByNameLocked(name); existing != nil {
		// Reconnection: the seat survives; only the player id binding and
		// connected flag change.
		delete(reg.playerRooms, existing.ID)
		delete(r.byID, existing.ID)
		oldID := existing.ID
		existing.ID = playerID
		existing.Connected = true
		r.byID[playerID] = existing
		if existing.IsHost {
			r.hostID = playerID
		}
		if r.round != nil {
			r.round.rebindPlayer(oldID, playerID)
		}
		reg.playerRooms[playerID] = code
		reg.logger.Info("player reconnected",
			zap.String("room", code),
			zap.String("player", playerID),
		)
		return r, nil
	}

	if r.phase != PhaseLobby {
		return nil, ErrGameInProgress
	}
	if len(r.players) >= MaxPlayers {
		return nil, ErrRoomFull
	}

	r.addPlayerLocked(&Player{
		ID:        playerID,
		Name:      name,
		Connected: true,
	})
	reg.playerRooms[playerID] = code

	reg.logger.Info("player joined",
		zap.String("room", code),
		zap.String("player", playerID),
		zap.Int("players", len(r.players)),
	)
	return r, nil
}

// RemoveResult reports the outcome of removing a player.
type RemoveResult struct {
	// Removed is false when the room or player was not found.
	Removed bool
	// RoomEmpty is true when the removal deleted the room.
	RoomEmpty bool
	// NewHostID is the promoted host's id when the host left a non-empty
	// room, "" otherwise.
	NewHostID string
}

// RemovePlayer deletes a player from their room. When the host leaves, the
// first remaining player in join order is promoted. The room (and its
// active round and timers) is deleted once empty.
func (reg *Registry) RemovePlayer(code, playerID string) RemoveResult {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.rooms[code]
	if !ok {
		return RemoveResult{}
	}

	r.mu.Lock()
	if _, seated := r.byID[playerID]; !seated {
		r.mu.Unlock()
		return RemoveResult{}
	}
	newHostID := r.removePlayerLocked(playerID)
	empty := len(r.players) == 0
	if empty {
		r.round = nil
		r.stopTimerLocked()
	}
	r.mu.Unlock()

	delete(reg.playerRooms, playerID)
	if empty {
		delete(reg.rooms, code)
		reg.logger.Info("room deleted", zap.String("room", code))
	}
	return RemoveResult{Removed: true, RoomEmpty: empty, NewHostID: newHostID}
}

// Disconnect marks a player disconnected without freeing their seat, so a
// later join with the same display name reconnects them.
func (reg *Registry) Disconnect(code, playerID string) {
	reg.mu.RLock()
	r, ok := reg.rooms[code]
	reg.mu.RUnlock()
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, seated := r.byID[playerID]; seated {
		p.Connected = false
	}
}

// UpdateSettings applies a partial settings update. A no-op unless the
// caller is the host and the room is in the lobby.
//
// Postcondition: Returns the (possibly updated) settings and whether the
// update was applied.
func (reg *Registry) UpdateSettings(code, playerID string, patch SettingsPatch) (GameSettings, bool) {
	reg.mu.RLock()
	r, ok := reg.rooms[code]
	reg.mu.RUnlock()
	if !ok {
		return GameSettings{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p, seated := r.byID[playerID]
	if !seated || !p.IsHost || r.phase != PhaseLobby {
		return r.settings, false
	}
	patch.apply(&r.settings)
	return r.settings, true
}

// ToggleReady flips a player's ready flag. The host is exempt: always
// ready, never toggled.
//
// Postcondition: Returns the player's ready state and whether a toggle
// happened.
func (reg *Registry) ToggleReady(code, playerID string) (bool, bool) {
	reg.mu.RLock()
	r, ok := reg.rooms[code]
	reg.mu.RUnlock()
	if !ok {
		return false, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p, seated := r.byID[playerID]
	if !seated {
		return false, false
	}
	if p.IsHost {
		return true, false
	}
	p.IsReady = !p.IsReady
	return p.IsReady, true
}

// TransferHost moves the host bit from the current host to a connected
// player.
//
// Postcondition: On success exactly one player holds the host bit and is
// ready; otherwise returns ErrRoomNotFound, ErrNotHost, or
// ErrTargetInvalid.
func (reg *Registry) TransferHost(code, currentHostID, newHostID string) error {
	reg.mu.RLock()
	r, ok := reg.rooms[code]
	reg.mu.RUnlock()
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	from, seated := r.byID[currentHostID]
	if !seated || !from.IsHost {
		return ErrNotHost
	}
	to, seated := r.byID[newHostID]
	if !seated || !to.Connected || newHostID == currentHostID {
		return ErrTargetInvalid
	}
	from.IsHost = false
	to.IsHost = true
	to.IsReady = true
	r.hostID = newHostID

	reg.logger.Info("host transferred",
		zap.String("room", code),
		zap.String("from", currentHostID),
		zap.String("to", newHostID),
	)
	return nil
}

// Room returns the live room with the given code.
func (reg *Registry) Room(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[code]
	return r, ok
}

// RoomByPlayer resolves a player's room through the explicit index, never
// through transport-layer side channels.
func (reg *Registry) RoomByPlayer(playerID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	code, ok := reg.playerRooms[playerID]
	if !ok {
		return nil, false
	}
	r, ok := reg.rooms[code]
	return r, ok
}

// Count returns the number of live rooms.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
