package server

// StateMenu is the initial global state; every other state is a registered
// game key.
const StateMenu = "menu"

// StateMachine owns the single global state selector. Transitions are
// restricted to an explicit table (menu <-> each game key) so no call site
// can assign an arbitrary state.
type StateMachine struct {
	current string
	allowed map[string]map[string]bool
}

func NewStateMachine(gameKeys []string) *StateMachine {
	allowed := map[string]map[string]bool{
		StateMenu: make(map[string]bool),
	}
	for _, key := range gameKeys {
		allowed[StateMenu][key] = true
		allowed[key] = map[string]bool{StateMenu: true}
	}
	return &StateMachine{current: StateMenu, allowed: allowed}
}

func (m *StateMachine) Current() string {
	return m.current
}

// Transition moves to the target state if the table permits it and reports
// whether the move happened.
func (m *StateMachine) Transition(to string) bool {
	if !m.allowed[m.current][to] {
		return false
	}
	m.current = to
	return true
}

// InGame reports whether the selector currently points at a game.
func (m *StateMachine) InGame() bool {
	return m.current != StateMenu
}
