package net

import (
	"encoding/json"
	"fmt"
)

// Client → Server messages. The "type" field selects the variant.

type HelloMessage struct {
	Type      string `json:"type"`
	PlayerIdx *int   `json:"player_idx,omitempty"`
	Name      string `json:"name,omitempty"`
}

type PointerMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type TapMessage struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Click bool    `json:"click"`
}

type SelectGameMessage struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

type SetPlayerSelectedMessage struct {
	Type      string `json:"type"`
	PlayerIdx int    `json:"player_idx"`
	Selected  bool   `json:"selected"`
}

type StartGameMessage struct {
	Type string `json:"type"`
}

type ClickButtonMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type EscMessage struct {
	Type string `json:"type"`
}

// DecodeClientMessage parses a raw client frame into one of the typed
// messages above. Unknown types and unparsable payloads are errors; the
// caller is expected to drop them without replying.
func DecodeClientMessage(data []byte) (any, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case "hello":
		var m HelloMessage
		return m, json.Unmarshal(data, &m)
	case "pointer":
		var m PointerMessage
		return m, json.Unmarshal(data, &m)
	case "tap":
		var m TapMessage
		return m, json.Unmarshal(data, &m)
	case "select_game":
		var m SelectGameMessage
		return m, json.Unmarshal(data, &m)
	case "set_player_selected":
		var m SetPlayerSelectedMessage
		return m, json.Unmarshal(data, &m)
	case "start_game":
		var m StartGameMessage
		return m, json.Unmarshal(data, &m)
	case "click_button":
		var m ClickButtonMessage
		return m, json.Unmarshal(data, &m)
	case "esc":
		var m EscMessage
		return m, json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unknown message type %q", probe.Type)
	}
}
