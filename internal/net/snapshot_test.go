package net

import (
	"encoding/json"
	"testing"
)

func TestSnapshotMarshalGamePayload(t *testing.T) {
	snap := Snapshot{
		ServerState:  "clickrace",
		Lobby:        &LobbyState{MinPlayers: 2},
		PanelButtons: []PanelButton{{ID: "ready", Text: "Ready", Enabled: false}},
		Cursors:      []Cursor{{Seat: 1, X: 0.5, Y: 0.5}},
		GameKey:      "clickrace",
		Game:         map[string]any{"phase": "armed"},
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded["server_state"] != "clickrace" {
		t.Errorf("server_state = %v, want clickrace", decoded["server_state"])
	}
	payload, ok := decoded["clickrace"].(map[string]any)
	if !ok {
		t.Fatalf("game payload missing: %v", decoded)
	}
	if payload["phase"] != "armed" {
		t.Errorf("phase = %v, want armed", payload["phase"])
	}
	for _, key := range []string{"lobby", "audio", "panel_buttons", "cursors"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("top-level %q missing", key)
		}
	}
}

func TestSnapshotMarshalMenuOmitsGameKeys(t *testing.T) {
	snap := Snapshot{
		ServerState: "menu",
		Lobby:       &LobbyState{},
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"clickrace", "quickmath", "popup", "player_select"} {
		if _, ok := decoded[key]; ok {
			t.Errorf("unexpected key %q in menu snapshot", key)
		}
	}
}
