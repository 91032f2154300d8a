package server

import (
	"time"

	"partyhost/internal/net"
)

// apply dispatches one inbound envelope on the simulation goroutine.
// Everything that fails validation here is silently dropped: stale ids,
// unknown keys and out-of-phase messages are ordinary races with the
// authoritative state, not errors.
func (c *Core) apply(env envelope, now time.Time) {
	switch m := env.msg.(type) {
	case net.HelloMessage:
		c.handleHello(env.clientID, m)
	case net.PointerMessage:
		c.handlePointer(env.clientID, m.X, m.Y, now)
	case net.TapMessage:
		c.handleTap(env.clientID, m, now)
	case net.SelectGameMessage:
		c.handleSelectGame(env.clientID, m.Key)
	case net.SetPlayerSelectedMessage:
		c.handleSetPlayerSelected(env.clientID, m)
	case net.StartGameMessage:
		c.handleStartGame(env.clientID)
	case net.ClickButtonMessage:
		c.handleClickButton(env.clientID, m.ID)
	case net.EscMessage:
		c.handleEsc()
	}
}

func (c *Core) handleHello(clientID string, m net.HelloMessage) {
	requested := -1
	if m.PlayerIdx != nil {
		requested = *m.PlayerIdx
	}
	seat := c.seats.Bind(clientID, requested)
	if seat >= 0 && m.Name != "" {
		c.seats.SetName(seat, m.Name)
	}
}

func (c *Core) handlePointer(clientID string, x, y float64, now time.Time) {
	seat := c.seats.SeatOf(clientID)
	if seat < 0 {
		return
	}
	c.cursors.Update(seat, x, y, now)
}

func (c *Core) handleTap(clientID string, m net.TapMessage, now time.Time) {
	seat := c.seats.SeatOf(clientID)
	if seat < 0 {
		return
	}
	c.cursors.Update(seat, m.X, m.Y, now)

	if !m.Click {
		return
	}
	module, ok := c.activeModule()
	if !ok || c.sel != nil {
		return
	}
	if popup := module.Popup(); popup != nil && popup.Active {
		return
	}
	module.HandlePointerClick(seat, clamp01(m.X), clamp01(m.Y))
}

func (c *Core) handleSelectGame(clientID string, key string) {
	if c.state.InGame() || c.seats.SeatOf(clientID) < 0 {
		return
	}
	module, ok := c.games.Get(key)
	if !ok {
		return
	}
	ready := c.seats.ReadySeats()
	min := c.cfg.MinPlayers
	if module.MinPlayers() > min {
		min = module.MinPlayers()
	}
	if len(ready) < min {
		return
	}
	if !c.state.Transition(key) {
		return
	}
	if module.WebPlayerSelect() {
		sel := &selectPhase{key: key}
		for _, seat := range ready {
			sel.selected[seat] = true
		}
		c.sel = sel
		return
	}
	module.Start(ready)
}

func (c *Core) handleSetPlayerSelected(clientID string, m net.SetPlayerSelectedMessage) {
	if c.sel == nil || c.seats.SeatOf(clientID) < 0 {
		return
	}
	if m.PlayerIdx < 0 || m.PlayerIdx >= MaxPlayers || !c.seats.Occupied(m.PlayerIdx) {
		return
	}
	c.sel.selected[m.PlayerIdx] = m.Selected
}

func (c *Core) handleStartGame(clientID string) {
	if c.sel == nil || c.seats.SeatOf(clientID) < 0 {
		return
	}
	if c.selectedCount() < c.selectMin() {
		return
	}
	module, ok := c.games.Get(c.sel.key)
	if !ok {
		c.returnToMenu()
		return
	}
	var seats []int
	for seat, selected := range c.sel.selected {
		if selected {
			seats = append(seats, seat)
		}
	}
	c.sel = nil
	module.Start(seats)
}

// handleClickButton validates the id against the live button set before
// dispatching. While a popup is active only its own buttons count; panel
// buttons are suppressed. Disabled or vanished ids are no-ops.
func (c *Core) handleClickButton(clientID string, id string) {
	seat := c.seats.SeatOf(clientID)
	if seat < 0 {
		return
	}

	if module, ok := c.activeModule(); ok && c.sel == nil {
		if popup := module.Popup(); popup != nil && popup.Active {
			if buttonEnabled(popup.Buttons, id) {
				module.HandleButtonClick(seat, id)
			}
			return
		}
	}

	if !buttonEnabled(c.panelButtons(), id) {
		return
	}
	switch id {
	case buttonReady:
		c.seats.SetReady(seat, !c.seats.Ready(seat))
	case buttonAudioMute:
		c.muteVotes[seat] = !c.muteVotes[seat]
	default:
		if module, ok := c.activeModule(); ok {
			module.HandleButtonClick(seat, id)
		}
	}
}

func (c *Core) handleEsc() {
	if c.state.InGame() {
		c.returnToMenu()
	}
}

func (c *Core) handleLeave(clientID string) {
	seat := c.seats.Unbind(clientID)
	if seat < 0 {
		return
	}
	delete(c.muteVotes, seat)
	if c.sel != nil {
		c.sel.selected[seat] = false
	}
	// Cursors expire by age on their own; the active module is expected to
	// tolerate a seat going empty mid-round.
}

func buttonEnabled(buttons []net.PanelButton, id string) bool {
	for _, b := range buttons {
		if b.ID == id {
			return b.Enabled
		}
	}
	return false
}
