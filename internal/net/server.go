package net

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"orb-duel/engine/internal/sim"
)

// NewServeMux builds the HTTP surface for a hub: join, websocket, health,
// and diagnostics endpoints.
func NewServeMux(hub *Hub) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, hub.Diagnostics())
	})

	mux.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		join, err := hub.Join()
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeJSON(w, join)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		actorID := r.URL.Query().Get("id")
		if actorID == "" {
			http.Error(w, "missing id", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Printf("upgrade failed for %s: %v", actorID, err)
			return
		}

		sub, ok := hub.Subscribe(actorID, conn)
		if !ok {
			message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown combatant")
			conn.WriteMessage(websocket.CloseMessage, message)
			conn.Close()
			return
		}

		initial := stateMessage{
			Type:       "state",
			ServerTime: time.Now().UnixMilli(),
			Snapshot:   hub.loop.Snapshot(),
		}
		data, err := json.Marshal(initial)
		if err != nil {
			hub.logger.Printf("failed to marshal initial state for %s: %v", actorID, err)
			hub.Disconnect(actorID)
			return
		}
		if err := sub.write(hub.cfg.WriteWait, data); err != nil {
			hub.Disconnect(actorID)
			return
		}

		readLoop(hub, actorID, sub, conn)
	})

	return mux
}

// readLoop translates client messages into staged commands until the socket
// closes.
func readLoop(hub *Hub, actorID string, sub *subscriber, conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			hub.Disconnect(actorID)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			hub.logger.Printf("discarding malformed message from %s: %v", actorID, err)
			continue
		}

		switch msg.Type {
		case "input":
			cmd := sim.Command{
				ActorID:  actorID,
				Type:     sim.CommandMove,
				IssuedAt: time.Now(),
				Move:     &sim.MoveCommand{DX: msg.DX, DY: msg.DY},
			}
			if ok, reason := hub.loop.Enqueue(cmd); !ok {
				hub.logger.Printf("input dropped for %s: %s", actorID, reason)
			}
		case "attack":
			cmd := sim.Command{
				ActorID:  actorID,
				Type:     sim.CommandAttack,
				IssuedAt: time.Now(),
				Attack:   &sim.AttackCommand{AimX: msg.AimX, AimY: msg.AimY},
			}
			if ok, reason := hub.loop.Enqueue(cmd); !ok {
				hub.logger.Printf("attack dropped for %s: %s", actorID, reason)
			}
		case "heartbeat":
			now := time.Now()
			rtt, ok := hub.Heartbeat(actorID, now, msg.SentAt)
			if !ok {
				continue
			}
			ack := heartbeatMessage{
				Type:       "heartbeat",
				ServerTime: now.UnixMilli(),
				ClientTime: msg.SentAt,
				RTTMillis:  rtt.Milliseconds(),
			}
			data, err := json.Marshal(ack)
			if err != nil {
				hub.logger.Printf("failed to marshal heartbeat ack for %s: %v", actorID, err)
				continue
			}
			if err := sub.write(hub.cfg.WriteWait, data); err != nil {
				hub.Disconnect(actorID)
				return
			}
		default:
			hub.logger.Printf("unknown message type %q from %s", msg.Type, actorID)
		}
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
