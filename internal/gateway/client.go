package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/wordrush/wordrush/internal/game/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 2048
	sendBufferSize = 64
)

// Submission flood guard: one event per 250ms sustained, small burst.
const (
	eventRate  = rate.Limit(4)
	eventBurst = 8
)

// client is one WebSocket connection bound to a minted player id.
type client struct {
	playerID string
	roomCode string
	conn     *websocket.Conn
	gateway  *Gateway
	limiter  *rate.Limiter

	// mu guards outbox against a send racing the close: a broadcast may
	// hold a reference to this client after it unregistered.
	mu     sync.Mutex
	closed bool
	outbox chan serverEvent
}

func newClient(playerID string, conn *websocket.Conn, g *Gateway) *client {
	return &client{
		playerID: playerID,
		conn:     conn,
		gateway:  g,
		limiter:  rate.NewLimiter(eventRate, eventBurst),
		outbox:   make(chan serverEvent, sendBufferSize),
	}
}

// send enqueues an event, dropping it when the peer cannot keep up or is
// already gone.
func (c *client) send(ev serverEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.outbox <- ev:
	default:
		c.gateway.logger.Debug("dropping event for slow client",
			zap.String("player", c.playerID),
			zap.String("event", ev.Type),
		)
	}
}

// close marks the client dead and releases the write pump. Idempotent.
func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.outbox)
}

// writePump drains the outbox and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.outbox:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes client events until the connection drops, then marks
// the player disconnected so their seat survives for a reconnect.
func (c *client) readPump() {
	defer c.onClose()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			c.send(serverEvent{Type: "error", Data: map[string]string{"code": "rate_limited"}})
			continue
		}

		var ev clientEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			c.send(serverEvent{Type: "error", Data: map[string]string{"code": "bad_payload"}})
			continue
		}
		c.handle(ev)
	}
}

// onClose releases the connection's room binding without freeing the
// seat. The room binding is dropped before the outbox closes so an
// in-flight broadcast cannot write to a dead client.
func (c *client) onClose() {
	code := c.roomCode
	if code != "" {
		c.gateway.registry.Disconnect(code, c.playerID)
		c.gateway.unregister(c, false)
	}
	c.close()
	if code == "" {
		return
	}
	if r, ok := c.gateway.registry.Room(code); ok {
		c.gateway.broadcast(code, serverEvent{Type: "room_state", Data: snapshotRoom(r)})
	}
}

// handle dispatches one decoded client event.
func (c *client) handle(ev clientEvent) {
	g := c.gateway
	switch ev.Type {
	case "create_room":
		if c.roomCode != "" {
			c.send(serverEvent{Type: "error", Data: map[string]string{"code": "already_in_room"}})
			return
		}
		r := g.registry.CreateRoom(ev.Name, c.playerID)
		g.register(c, r.Code)
		c.send(serverEvent{Type: "room_state", Data: snapshotRoom(r)})

	case "join_room":
		if c.roomCode != "" {
			c.send(serverEvent{Type: "error", Data: map[string]string{"code": "already_in_room"}})
			return
		}
		r, err := g.registry.JoinRoom(ev.RoomCode, ev.Name, c.playerID)
		if err != nil {
			c.send(serverEvent{Type: "error", Data: map[string]string{"code": joinErrorCode(err)}})
			return
		}
		g.register(c, r.Code)
		g.broadcast(r.Code, serverEvent{Type: "room_state", Data: snapshotRoom(r)})

	case "update_settings":
		if ev.Settings == nil || c.roomCode == "" {
			return
		}
		if _, applied := g.registry.UpdateSettings(c.roomCode, c.playerID, ev.Settings.patch()); applied {
			if r, ok := g.registry.Room(c.roomCode); ok {
				g.broadcast(c.roomCode, serverEvent{Type: "room_state", Data: snapshotRoom(r)})
			}
		}

	case "toggle_ready":
		if _, toggled := g.registry.ToggleReady(c.roomCode, c.playerID); toggled {
			if r, ok := g.registry.Room(c.roomCode); ok {
				g.broadcast(c.roomCode, serverEvent{Type: "room_state", Data: snapshotRoom(r)})
			}
		}

	case "transfer_host":
		if err := g.registry.TransferHost(c.roomCode, c.playerID, ev.TargetID); err == nil {
			if r, ok := g.registry.Room(c.roomCode); ok {
				g.broadcast(c.roomCode, serverEvent{Type: "room_state", Data: snapshotRoom(r)})
			}
		}

	case "start_game":
		c.startGame()

	case "submit_word":
		c.submitWord(ev.Word)

	case "use_power_up":
		kind := room.PowerUpKind(ev.PowerUp)
		res := g.registry.UsePowerUp(c.roomCode, c.playerID, kind)
		c.send(serverEvent{Type: "power_up_result", Data: res})
		if res.Success {
			g.broadcast(c.roomCode, serverEvent{Type: "power_up_used", Data: map[string]any{
				"kind":       ev.PowerUp,
				"from":       c.playerID,
				"target":     res.TargetID,
				"pointsLost": res.PointsLost,
			}})
			if kind == room.PowerFreeze {
				// The target gets a direct cue to lock their input.
				g.sendTo(c.roomCode, res.TargetID, serverEvent{Type: "frozen", Data: map[string]string{
					"from": c.playerID,
				}})
			}
		}

	case "next_round":
		c.nextRound()

	case "play_again":
		if r, ok := g.registry.Room(c.roomCode); ok {
			g.engine.PlayAgain(r)
			g.broadcast(c.roomCode, serverEvent{Type: "room_state", Data: snapshotRoom(r)})
		}

	case "leave":
		c.leaveRoom()

	default:
		c.send(serverEvent{Type: "error", Data: map[string]string{"code": "unknown_event"}})
	}
}

func (c *client) startGame() {
	g := c.gateway
	r, ok := g.registry.Room(c.roomCode)
	if !ok {
		return
	}
	pub, err := g.engine.StartGame(r, c.playerID)
	if err != nil {
		c.send(serverEvent{Type: "error", Data: map[string]string{"code": startErrorCode(err)}})
		return
	}
	g.broadcast(r.Code, serverEvent{Type: "round_started", Data: pub})
	c.armRoundTimer(r)
}

func (c *client) submitWord(word string) {
	g := c.gateway
	r, ok := g.registry.RoomByPlayer(c.playerID)
	if !ok {
		return
	}
	res := g.engine.SubmitWord(context.Background(), r, c.playerID, word)
	c.send(serverEvent{Type: "submit_result", Data: res})
	if !res.Accepted {
		return
	}
	g.broadcast(r.Code, serverEvent{Type: "score_update", Data: map[string]any{
		"playerId": c.playerID,
		"points":   res.Points,
		"score":    res.PlayerScore,
		"solved":   res.Solved,
	}})
	if res.EndRoundEarly {
		r.StopTimer()
		c.gateway.finishRound(r)
	}
}

func (c *client) nextRound() {
	g := c.gateway
	r, ok := g.registry.Room(c.roomCode)
	if !ok || r.HostID() != c.playerID {
		return
	}
	pub, over, err := g.engine.NextRound(r)
	if err != nil {
		return
	}
	if over != nil {
		g.broadcast(r.Code, serverEvent{Type: "game_over", Data: over})
		return
	}
	g.broadcast(r.Code, serverEvent{Type: "round_started", Data: *pub})
	c.armRoundTimer(r)
}

// armRoundTimer schedules the round-expiry broadcast. The timer lives on
// the room so deletion or an early solve cancels it.
func (c *client) armRoundTimer(r *room.Room) {
	g := c.gateway
	d := time.Duration(r.Settings().RoundSeconds) * time.Second
	r.ArmTimer(d, func() { g.finishRound(r) })
}

// finishRound closes the active round and broadcasts the summary. Safe to
// race with an early solve: the engine rejects the second close.
func (g *Gateway) finishRound(r *room.Room) {
	end, err := g.engine.EndRound(r)
	if err != nil {
		return
	}
	g.broadcast(r.Code, serverEvent{Type: "round_ended", Data: end})
}

func (c *client) leaveRoom() {
	g := c.gateway
	code := c.roomCode
	if code == "" {
		return
	}
	res := g.registry.RemovePlayer(code, c.playerID)
	g.unregister(c, res.RoomEmpty)
	if !res.Removed || res.RoomEmpty {
		return
	}
	if r, ok := g.registry.Room(code); ok {
		g.broadcast(code, serverEvent{Type: "room_state", Data: snapshotRoom(r)})
	}
}

func joinErrorCode(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, room.ErrGameInProgress):
		return "in_progress"
	case errors.Is(err, room.ErrRoomFull):
		return "full"
	default:
		return "join_failed"
	}
}

func startErrorCode(err error) string {
	switch {
	case errors.Is(err, room.ErrNotHost):
		return "not_host"
	case errors.Is(err, room.ErrPlayerCount):
		return "player_count"
	default:
		return "start_failed"
	}
}
