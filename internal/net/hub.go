// Package net hosts a battle over HTTP and WebSocket. Clients claim a
// combatant slot via /join, subscribe on /ws, and receive a state broadcast
// after every loop iteration.
package net

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"orb-duel/engine/internal/sim"
	"orb-duel/engine/internal/telemetry"
)

// Defaults for connection housekeeping.
const (
	DefaultWriteWait         = 10 * time.Second
	DefaultHeartbeatInterval = 2 * time.Second
)

// Config tunes the hub's connection handling.
type Config struct {
	// Controllable lists the combatant ids clients may claim, in claim
	// order. Combatants not listed stay under engine AI control.
	Controllable []string

	WriteWait         time.Duration
	HeartbeatInterval time.Duration
	// DisconnectAfter releases a claimed slot when no heartbeat arrives
	// within this window. Zero derives three heartbeat intervals.
	DisconnectAfter time.Duration
}

func (cfg Config) normalized() Config {
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = DefaultWriteWait
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if cfg.DisconnectAfter <= 0 {
		cfg.DisconnectAfter = 3 * cfg.HeartbeatInterval
	}
	return cfg
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(writeWait time.Duration, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

type claimState struct {
	claimed       bool
	lastHeartbeat time.Time
	lastRTT       time.Duration
}

// Hub connects WebSocket clients to a running battle loop.
type Hub struct {
	cfg    Config
	loop   *sim.Loop
	logger telemetry.Logger

	mu          sync.Mutex
	claims      map[string]*claimState
	claimOrder  []string
	subscribers map[string]*subscriber
}

// NewHub wires a hub around the provided loop. The loop's AfterStep hook is
// expected to call Broadcast; see Server.
func NewHub(loop *sim.Loop, cfg Config) *Hub {
	cfg = cfg.normalized()
	hub := &Hub{
		cfg:         cfg,
		loop:        loop,
		logger:      loop.Deps().Logger,
		claims:      make(map[string]*claimState, len(cfg.Controllable)),
		claimOrder:  append([]string(nil), cfg.Controllable...),
		subscribers: make(map[string]*subscriber),
	}
	for _, id := range cfg.Controllable {
		hub.claims[id] = &claimState{}
	}
	return hub
}

// Join claims the next free combatant slot and returns it with the current
// snapshot.
func (h *Hub) Join() (joinResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, id := range h.claimOrder {
		state := h.claims[id]
		if state.claimed {
			continue
		}
		state.claimed = true
		state.lastHeartbeat = time.Now()
		return joinResponse{ID: id, Snapshot: h.loop.Snapshot()}, nil
	}
	return joinResponse{}, fmt.Errorf("net: no free combatant slots")
}

// Subscribe associates a WebSocket connection with a claimed combatant. An
// existing connection for the same combatant is replaced.
func (h *Hub) Subscribe(actorID string, conn *websocket.Conn) (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.claims[actorID]
	if !ok || !state.claimed {
		return nil, false
	}
	state.lastHeartbeat = time.Now()

	if existing, ok := h.subscribers[actorID]; ok {
		existing.conn.Close()
	}
	sub := &subscriber{conn: conn}
	h.subscribers[actorID] = sub
	return sub, true
}

// Disconnect drops the subscriber and releases the combatant slot so a new
// client can claim it.
func (h *Hub) Disconnect(actorID string) {
	h.mu.Lock()
	sub, subOK := h.subscribers[actorID]
	if subOK {
		delete(h.subscribers, actorID)
	}
	if state, ok := h.claims[actorID]; ok {
		state.claimed = false
	}
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}
}

// Heartbeat records liveness for a claimed combatant and returns the
// measured round-trip time.
func (h *Hub) Heartbeat(actorID string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.claims[actorID]
	if !ok || !state.claimed {
		return 0, false
	}
	state.lastHeartbeat = receivedAt

	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			state.lastRTT = rtt
		}
	}
	return state.lastRTT, true
}

// Broadcast sends the step result to every subscriber and evicts peers that
// stopped heartbeating or whose socket write failed.
func (h *Hub) Broadcast(result sim.LoopStepResult) {
	msg := stateMessage{
		Type:       "state",
		ServerTime: time.Now().UnixMilli(),
		Snapshot:   result.Snapshot,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Printf("failed to marshal state message: %v", err)
		return
	}

	now := time.Now()
	h.mu.Lock()
	var stale []string
	for id, state := range h.claims {
		if state.claimed && now.Sub(state.lastHeartbeat) > h.cfg.DisconnectAfter {
			stale = append(stale, id)
		}
	}
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for _, id := range stale {
		h.logger.Printf("disconnecting %s due to heartbeat timeout", id)
		h.Disconnect(id)
		delete(subs, id)
	}

	for id, sub := range subs {
		if err := sub.write(h.cfg.WriteWait, data); err != nil {
			h.logger.Printf("failed to send update to %s: %v", id, err)
			h.Disconnect(id)
		}
	}
}

// Diagnostics summarizes hub and battle state for the operator endpoint.
func (h *Hub) Diagnostics() diagnosticsResponse {
	snapshot := h.loop.Snapshot()

	h.mu.Lock()
	actors := make([]diagnosticsActor, 0, len(h.claims))
	for _, id := range h.claimOrder {
		state := h.claims[id]
		if !state.claimed {
			continue
		}
		actors = append(actors, diagnosticsActor{
			ID:            id,
			LastHeartbeat: state.lastHeartbeat.UnixMilli(),
			RTTMillis:     state.lastRTT.Milliseconds(),
		})
	}
	h.mu.Unlock()

	return diagnosticsResponse{
		Status:          "ok",
		ServerTime:      time.Now().UnixMilli(),
		Tick:            snapshot.Tick,
		PendingCommands: h.loop.Pending(),
		Subscribers:     actors,
		Outcome:         snapshot.Outcome,
	}
}
