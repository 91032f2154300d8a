package server

import "testing"

func TestStateMachineTransitions(t *testing.T) {
	cases := []struct {
		name  string
		moves []string
		oks   []bool
		final string
	}{
		{
			name:  "menu to game and back",
			moves: []string{"clickrace", StateMenu},
			oks:   []bool{true, true},
			final: StateMenu,
		},
		{
			name:  "unregistered key rejected",
			moves: []string{"poker"},
			oks:   []bool{false},
			final: StateMenu,
		},
		{
			name:  "no game to game hop",
			moves: []string{"clickrace", "quickmath"},
			oks:   []bool{true, false},
			final: "clickrace",
		},
		{
			name:  "menu to menu rejected",
			moves: []string{StateMenu},
			oks:   []bool{false},
			final: StateMenu,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewStateMachine([]string{"clickrace", "quickmath"})
			for i, to := range tc.moves {
				if ok := m.Transition(to); ok != tc.oks[i] {
					t.Errorf("Transition(%q) = %v, want %v", to, ok, tc.oks[i])
				}
			}
			if m.Current() != tc.final {
				t.Errorf("Current = %q, want %q", m.Current(), tc.final)
			}
		})
	}
}
