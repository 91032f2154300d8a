package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"partyhost/internal/game"
	"partyhost/internal/net"
)

// Core is the authoritative simulation state. Seats, cursors, game modules
// and the state machine are mutated only on the simulation goroutine.
// Network goroutines talk to it exclusively through
// the inbound envelope queue; Tick drains the queue, advances the active
// module and produces the snapshot for this tick.
type Core struct {
	cfg     Config
	seats   *SeatRegistry
	cursors *CursorTracker
	games   *game.Registry
	state   *StateMachine

	inbound chan envelope

	// Disconnects ride outside the bounded queue: a leave must never be
	// lost or a seat stays bound forever.
	leaveMu sync.Mutex
	leaves  []string

	// pre-round seat selection, nil unless the phase is active
	sel *selectPhase

	muteVotes map[int]bool
}

type envelope struct {
	clientID string
	msg      any
}

type selectPhase struct {
	key      string
	selected [MaxPlayers]bool
}

func NewCore(cfg Config, games *game.Registry) *Core {
	c := &Core{
		cfg:       cfg,
		seats:     NewSeatRegistry(),
		cursors:   NewCursorTracker(cfg.CursorTTL),
		games:     games,
		state:     NewStateMachine(games.Keys()),
		inbound:   make(chan envelope, 256),
		muteVotes: make(map[int]bool),
	}
	for _, key := range games.Keys() {
		if m, ok := games.Get(key); ok {
			m.SetNameProvider(c.seats.DisplayName)
		}
	}
	return c
}

// Enqueue hands a decoded client message to the simulation goroutine. It
// never blocks; when the queue is full the message is dropped, which a
// client experiences the same way as a lost frame.
func (c *Core) Enqueue(clientID string, msg any) {
	select {
	case c.inbound <- envelope{clientID: clientID, msg: msg}:
	default:
		log.Printf("inbound queue full, dropping %T from %s", msg, clientID)
	}
}

// EnqueueLeave records a disconnect. Seat cleanup happens on the
// simulation goroutine like every other mutation, but unlike ordinary
// messages a leave is never dropped: the next tick always drains it.
func (c *Core) EnqueueLeave(clientID string) {
	c.leaveMu.Lock()
	c.leaves = append(c.leaves, clientID)
	c.leaveMu.Unlock()
}

// Tick runs one simulation step: drain pending input, advance the active
// module, then build and marshal this tick's snapshot. All mutations land
// strictly before the snapshot is assembled.
func (c *Core) Tick(now time.Time, dt float64) []byte {
	c.drain(now)

	// During the player-select phase the module still carries the previous
	// round's state; it is not consulted at all until Start resets it.
	if m, ok := c.activeModule(); ok && c.sel == nil {
		m.Update(dt)
		if m.Finished() {
			c.returnToMenu()
		}
	}

	snap := c.buildSnapshot(now)
	data, err := json.Marshal(net.SnapshotMessage{Type: "snapshot", Data: snap})
	if err != nil {
		log.Printf("marshal snapshot: %v", err)
		return nil
	}
	return data
}

func (c *Core) drain(now time.Time) {
	// Disconnects first, so queued input from a gone client falls through
	// as unseated and gets dropped.
	c.leaveMu.Lock()
	leaves := c.leaves
	c.leaves = nil
	c.leaveMu.Unlock()
	for _, clientID := range leaves {
		c.handleLeave(clientID)
	}

	for {
		select {
		case env := <-c.inbound:
			c.apply(env, now)
		default:
			return
		}
	}
}

func (c *Core) activeModule() (game.Module, bool) {
	if !c.state.InGame() {
		return nil, false
	}
	return c.games.Get(c.state.Current())
}

func (c *Core) returnToMenu() {
	c.state.Transition(StateMenu)
	c.sel = nil
}

// Draw renders the active module onto the shared screen. The menu itself
// is rendered by the display layer.
func (c *Core) Draw(screen *ebiten.Image) {
	if m, ok := c.activeModule(); ok && c.sel == nil {
		m.Draw(screen)
	}
}

func (c *Core) buildSnapshot(now time.Time) *net.Snapshot {
	snap := &net.Snapshot{
		ServerState: c.state.Current(),
		Lobby: &net.LobbyState{
			Seats:      c.seats.Lobby(),
			Games:      c.games.Infos(),
			MinPlayers: c.cfg.MinPlayers,
		},
		Audio:        c.audioState(),
		PanelButtons: c.panelButtons(),
		Cursors:      c.cursors.Snapshot(now),
	}

	if c.sel != nil {
		snap.PlayerSelect = c.playerSelectState()
	} else if m, ok := c.activeModule(); ok {
		snap.GameKey = c.state.Current()
		snap.Game = m.ExportState()
		snap.Popup = m.Popup()
	}
	return snap
}

func (c *Core) audioState() net.AudioState {
	votes := make([]int, 0, len(c.muteVotes))
	for seat := 0; seat < MaxPlayers; seat++ {
		if c.muteVotes[seat] {
			votes = append(votes, seat)
		}
	}
	return net.AudioState{Muted: c.audioMuted(), Votes: votes}
}

// audioMuted reports a majority mute vote among occupied seats.
func (c *Core) audioMuted() bool {
	occupied := c.seats.OccupiedCount()
	if occupied == 0 {
		return false
	}
	votes := 0
	for seat, v := range c.muteVotes {
		if v && c.seats.Occupied(seat) {
			votes++
		}
	}
	return votes*2 > occupied
}

func (c *Core) playerSelectState() *net.PlayerSelect {
	sel := &net.PlayerSelect{Active: true, Selected: make([]bool, MaxPlayers)}
	copy(sel.Selected, c.sel.selected[:])
	sel.CanStart = c.selectedCount() >= c.selectMin()
	return sel
}

func (c *Core) selectedCount() int {
	n := 0
	for _, s := range c.sel.selected {
		if s {
			n++
		}
	}
	return n
}

func (c *Core) selectMin() int {
	min := c.cfg.MinPlayers
	if m, ok := c.games.Get(c.sel.key); ok && m.MinPlayers() > min {
		min = m.MinPlayers()
	}
	return min
}

// Reserved panel button ids owned by the core itself.
const (
	buttonReady     = "ready"
	buttonAudioMute = "audio_mute"
)

// panelButtons composes the globally broadcast panel buttons: the core's
// own lobby/audio buttons plus whatever the active module declares. The
// Enabled flags computed here are the only authority; client-side copies
// are never trusted.
func (c *Core) panelButtons() []net.PanelButton {
	buttons := []net.PanelButton{
		{ID: buttonReady, Text: "Ready", Enabled: !c.state.InGame()},
		{ID: buttonAudioMute, Text: "Mute", Enabled: true},
	}
	if m, ok := c.activeModule(); ok && c.sel == nil {
		buttons = append(buttons, m.Buttons()...)
	}
	return buttons
}
