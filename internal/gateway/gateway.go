// Package gateway is the WebSocket transport in front of the game core.
// It maps JSON client events onto Registry/Engine calls and broadcasts the
// results to room members; it owns connection bookkeeping and per-player
// rate limiting, and nothing else. All game rules live in the room
// package.
package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wordrush/wordrush/internal/game/room"
)

// Gateway serves the WebSocket endpoint and fans events out to room
// members.
type Gateway struct {
	registry *room.Registry
	engine   *room.Engine
	logger   *zap.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	shutdownTimeout time.Duration

	mu      sync.Mutex
	clients map[string]map[string]*client // room code -> player id -> client
}

// New creates a Gateway listening on addr.
//
// Precondition: registry, engine, and logger must be non-nil.
func New(addr string, shutdownTimeout time.Duration, registry *room.Registry, engine *room.Engine, logger *zap.Logger) *Gateway {
	g := &Gateway{
		registry: registry,
		engine:   engine,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checks belong to the deployment's proxy layer.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		shutdownTimeout: shutdownTimeout,
		clients:         make(map[string]map[string]*client),
	}

	r := chi.NewRouter()
	r.Get("/healthz", g.handleHealth)
	r.Get("/ws", g.handleWS)
	g.httpSrv = &http.Server{Addr: addr, Handler: r}
	return g
}

// Start runs the HTTP listener and blocks until shutdown.
func (g *Gateway) Start() error {
	g.logger.Info("gateway listening", zap.String("addr", g.httpSrv.Addr))
	if err := g.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the listener down.
func (g *Gateway) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), g.shutdownTimeout)
	defer cancel()
	if err := g.httpSrv.Shutdown(ctx); err != nil {
		g.logger.Warn("gateway shutdown", zap.Error(err))
	}
}

func (g *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleWS upgrades the connection, mints a player id, and runs the read
// loop until the peer goes away.
func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(uuid.NewString(), conn, g)
	go c.writePump()
	c.readPump()
}

// register binds a client to a room for broadcasts.
func (g *Gateway) register(c *client, code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.clients[code] == nil {
		g.clients[code] = make(map[string]*client)
	}
	g.clients[code][c.playerID] = c
	c.roomCode = code
}

// unregister drops a client's room binding. When the room itself is gone,
// the broadcast set is deleted too.
func (g *Gateway) unregister(c *client, roomGone bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if set, ok := g.clients[c.roomCode]; ok {
		delete(set, c.playerID)
		if roomGone || len(set) == 0 {
			delete(g.clients, c.roomCode)
		}
	}
	c.roomCode = ""
}

// broadcast sends an event to every client bound to the room.
func (g *Gateway) broadcast(code string, ev serverEvent) {
	g.mu.Lock()
	targets := make([]*client, 0, len(g.clients[code]))
	for _, c := range g.clients[code] {
		targets = append(targets, c)
	}
	g.mu.Unlock()

	for _, c := range targets {
		c.send(ev)
	}
}

// sendTo sends an event to one player in a room, if connected.
func (g *Gateway) sendTo(code, playerID string, ev serverEvent) {
	g.mu.Lock()
	c := g.clients[code][playerID]
	g.mu.Unlock()
	if c != nil {
		c.send(ev)
	}
}
