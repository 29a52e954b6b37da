package room

import "errors"

// Expected failure conditions, reported as sentinel errors so callers can
// map them to stable reason codes. None are retried automatically.
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrGameInProgress = errors.New("game already in progress")
	ErrRoomFull       = errors.New("room is full")
	ErrNotHost        = errors.New("caller is not the host")
	ErrPlayerCount    = errors.New("connected player count out of range")
	ErrNoActiveRound  = errors.New("no active round")
	ErrTargetInvalid  = errors.New("target player is not eligible")
)
