package net

import "orb-duel/engine/internal/sim"

// joinResponse is returned from POST /join once a combatant slot is claimed.
type joinResponse struct {
	ID       string       `json:"id"`
	Snapshot sim.Snapshot `json:"snapshot"`
}

// stateMessage is the per-tick broadcast sent to every subscriber.
type stateMessage struct {
	Type       string       `json:"type"`
	ServerTime int64        `json:"serverTime"`
	Snapshot   sim.Snapshot `json:"snapshot"`
}

// clientMessage is the envelope for everything a client sends over the
// socket. Fields are unioned across message types; Type selects which are
// meaningful.
type clientMessage struct {
	Type   string  `json:"type"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	AimX   float64 `json:"aimX"`
	AimY   float64 `json:"aimY"`
	SentAt int64   `json:"sentAt"`
}

// heartbeatMessage acknowledges a client heartbeat with timing data.
type heartbeatMessage struct {
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

// diagnosticsResponse summarizes hub health for operators.
type diagnosticsResponse struct {
	Status          string             `json:"status"`
	ServerTime      int64              `json:"serverTime"`
	Tick            uint64             `json:"tick"`
	PendingCommands int                `json:"pendingCommands"`
	Subscribers     []diagnosticsActor `json:"subscribers"`
	Outcome         *sim.OutcomeView   `json:"outcome,omitempty"`
}

type diagnosticsActor struct {
	ID            string `json:"id"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rttMillis"`
}
