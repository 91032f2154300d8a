package net

import (
	"testing"
)

func TestDecodeClientMessage(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, msg any)
	}{
		{
			name: "hello with requested seat",
			raw:  `{"type":"hello","player_idx":2,"name":"Ann"}`,
			check: func(t *testing.T, msg any) {
				m, ok := msg.(HelloMessage)
				if !ok {
					t.Fatalf("got %T, want HelloMessage", msg)
				}
				if m.PlayerIdx == nil || *m.PlayerIdx != 2 {
					t.Errorf("PlayerIdx = %v, want 2", m.PlayerIdx)
				}
				if m.Name != "Ann" {
					t.Errorf("Name = %q, want Ann", m.Name)
				}
			},
		},
		{
			name: "hello without seat keeps nil index",
			raw:  `{"type":"hello","name":"Bo"}`,
			check: func(t *testing.T, msg any) {
				m := msg.(HelloMessage)
				if m.PlayerIdx != nil {
					t.Errorf("PlayerIdx = %v, want nil", m.PlayerIdx)
				}
			},
		},
		{
			name: "pointer",
			raw:  `{"type":"pointer","x":0.25,"y":0.75}`,
			check: func(t *testing.T, msg any) {
				m := msg.(PointerMessage)
				if m.X != 0.25 || m.Y != 0.75 {
					t.Errorf("got (%v,%v), want (0.25,0.75)", m.X, m.Y)
				}
			},
		},
		{
			name: "tap with click",
			raw:  `{"type":"tap","x":0.5,"y":0.5,"click":true}`,
			check: func(t *testing.T, msg any) {
				m := msg.(TapMessage)
				if !m.Click {
					t.Error("Click = false, want true")
				}
			},
		},
		{
			name: "click_button",
			raw:  `{"type":"click_button","id":"roll"}`,
			check: func(t *testing.T, msg any) {
				m := msg.(ClickButtonMessage)
				if m.ID != "roll" {
					t.Errorf("ID = %q, want roll", m.ID)
				}
			},
		},
		{
			name: "esc",
			raw:  `{"type":"esc"}`,
			check: func(t *testing.T, msg any) {
				if _, ok := msg.(EscMessage); !ok {
					t.Fatalf("got %T, want EscMessage", msg)
				}
			},
		},
		{
			name:    "unknown type",
			raw:     `{"type":"teleport"}`,
			wantErr: true,
		},
		{
			name:    "unparsable json",
			raw:     `{"type":`,
			wantErr: true,
		},
		{
			name:    "wrong field type",
			raw:     `{"type":"pointer","x":"left"}`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := DecodeClientMessage([]byte(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %T", msg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, msg)
		})
	}
}
