package net

import (
	"bytes"
	"encoding/json"
)

// Server → Client messages

type SnapshotMessage struct {
	Type string    `json:"type"` // always "snapshot"
	Data *Snapshot `json:"data"`
}

// Snapshot is the full authoritative state pushed to every client once per
// tick. It is built fresh each tick and never mutated afterwards. The active
// game's exported state is emitted under the game's own key, so only the
// payload matching ServerState is ever present.
type Snapshot struct {
	ServerState  string        `json:"server_state"`
	Lobby        *LobbyState   `json:"lobby"`
	Audio        AudioState    `json:"audio"`
	Popup        *Popup        `json:"popup,omitempty"`
	PanelButtons []PanelButton `json:"panel_buttons"`
	PlayerSelect *PlayerSelect `json:"player_select,omitempty"`
	Cursors      []Cursor      `json:"cursors"`

	// GameKey/Game are marshaled as a dynamic top-level member.
	GameKey string `json:"-"`
	Game    any    `json:"-"`
}

type LobbyState struct {
	Seats      []LobbySeat `json:"seats"`
	Games      []GameInfo  `json:"games"`
	MinPlayers int         `json:"min_players"`
}

type LobbySeat struct {
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	Ready     bool   `json:"ready"`
	Connected bool   `json:"connected"`
}

type GameInfo struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	MinPlayers int    `json:"min_players"`
}

type PanelButton struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
}

type Popup struct {
	Active  bool          `json:"active"`
	Kind    string        `json:"type"`
	Lines   []string      `json:"lines,omitempty"`
	Buttons []PanelButton `json:"buttons,omitempty"`
}

type AudioState struct {
	Muted bool  `json:"muted"`
	Votes []int `json:"votes"`
}

type PlayerSelect struct {
	Active   bool   `json:"active"`
	Selected []bool `json:"selected"`
	CanStart bool   `json:"can_start"`
}

type Cursor struct {
	Seat int     `json:"seat"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	raw, err := json.Marshal(plain(s))
	if err != nil {
		return nil, err
	}
	if s.GameKey == "" || s.Game == nil {
		return raw, nil
	}
	payload, err := json.Marshal(s.Game)
	if err != nil {
		return nil, err
	}
	key, err := json.Marshal(s.GameKey)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(raw) + len(key) + len(payload) + 2)
	buf.Write(raw[:len(raw)-1]) // strip closing brace
	buf.WriteByte(',')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(payload)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
