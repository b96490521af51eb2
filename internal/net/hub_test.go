package net

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orb-duel/engine/internal/sim"
)

func newTestHub(t *testing.T, controllable []string) *Hub {
	t.Helper()
	core, err := sim.NewCore(sim.CoreConfig{
		Combatants: []sim.CombatantSeed{
			{ID: "p1", WeaponID: "blaster"},
			{ID: "p2", WeaponID: "blaster"},
		},
	}, sim.Deps{})
	if err != nil {
		t.Fatalf("core construction failed: %v", err)
	}
	loop := sim.NewLoop(core, sim.LoopConfig{CommandCapacity: 16, PerActorLimit: 8}, sim.LoopHooks{})
	return NewHub(loop, Config{Controllable: controllable})
}

func TestJoinClaimsSlotsInOrder(t *testing.T) {
	hub := newTestHub(t, []string{"p1", "p2"})

	first, err := hub.Join()
	if err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	if first.ID != "p1" {
		t.Fatalf("expected first claim to be p1, got %q", first.ID)
	}
	if len(first.Snapshot.Combatants) != 2 {
		t.Fatalf("expected snapshot with both combatants, got %d", len(first.Snapshot.Combatants))
	}

	second, err := hub.Join()
	if err != nil {
		t.Fatalf("second join failed: %v", err)
	}
	if second.ID != "p2" {
		t.Fatalf("expected second claim to be p2, got %q", second.ID)
	}

	if _, err := hub.Join(); err == nil {
		t.Fatalf("expected join to fail once all slots are claimed")
	}
}

func TestDisconnectReleasesSlot(t *testing.T) {
	hub := newTestHub(t, []string{"p1"})

	if _, err := hub.Join(); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	hub.Disconnect("p1")
	join, err := hub.Join()
	if err != nil {
		t.Fatalf("expected released slot to be claimable, got %v", err)
	}
	if join.ID != "p1" {
		t.Fatalf("expected reclaimed slot p1, got %q", join.ID)
	}
}

func TestHeartbeatTracksRTT(t *testing.T) {
	hub := newTestHub(t, []string{"p1"})
	if _, err := hub.Join(); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	receivedAt := time.Now()
	rtt, ok := hub.Heartbeat("p1", receivedAt, receivedAt.Add(-40*time.Millisecond).UnixMilli())
	if !ok {
		t.Fatalf("heartbeat rejected for claimed combatant")
	}
	if rtt <= 0 {
		t.Fatalf("expected positive rtt, got %v", rtt)
	}

	if _, ok := hub.Heartbeat("p2", receivedAt, 0); ok {
		t.Fatalf("expected heartbeat rejection for unclaimed combatant")
	}
}

func TestJoinEndpoint(t *testing.T) {
	hub := newTestHub(t, []string{"p1"})
	server := httptest.NewServer(NewServeMux(hub))
	defer server.Close()

	resp, err := http.Post(server.URL+"/join", "application/json", nil)
	if err != nil {
		t.Fatalf("join request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var join joinResponse
	if err := json.NewDecoder(resp.Body).Decode(&join); err != nil {
		t.Fatalf("decode join response: %v", err)
	}
	if join.ID != "p1" {
		t.Fatalf("expected claim p1, got %q", join.ID)
	}

	second, err := http.Post(server.URL+"/join", "application/json", nil)
	if err != nil {
		t.Fatalf("second join request failed: %v", err)
	}
	second.Body.Close()
	if second.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict once slots are exhausted, got %d", second.StatusCode)
	}

	get, err := http.Get(server.URL + "/join")
	if err != nil {
		t.Fatalf("get join failed: %v", err)
	}
	get.Body.Close()
	if get.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected method check, got %d", get.StatusCode)
	}
}

func TestDiagnosticsEndpoint(t *testing.T) {
	hub := newTestHub(t, []string{"p1"})
	if _, err := hub.Join(); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	server := httptest.NewServer(NewServeMux(hub))
	defer server.Close()

	resp, err := http.Get(server.URL + "/diagnostics")
	if err != nil {
		t.Fatalf("diagnostics request failed: %v", err)
	}
	defer resp.Body.Close()
	var diag diagnosticsResponse
	if err := json.NewDecoder(resp.Body).Decode(&diag); err != nil {
		t.Fatalf("decode diagnostics: %v", err)
	}
	if diag.Status != "ok" {
		t.Fatalf("unexpected status %q", diag.Status)
	}
	if len(diag.Subscribers) != 1 || diag.Subscribers[0].ID != "p1" {
		t.Fatalf("unexpected subscribers %+v", diag.Subscribers)
	}
}
