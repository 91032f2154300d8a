package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"partyhost/internal/net"
)

// NameProvider resolves a seat index to a display name. The server injects
// one into each module at registration so modules never hold a reference
// back to the server.
type NameProvider func(seat int) string

// Module is the contract every game implements. A module instance is created
// once at startup and reused across rounds; Start resets all internal round
// state, so nothing leaks from one round into the next.
//
// All methods are called from the simulation goroutine only and must not
// block on I/O.
type Module interface {
	Key() string
	Title() string
	MinPlayers() int

	// WebPlayerSelect reports whether the module wants the web-driven
	// pre-round seat selection phase instead of starting immediately with
	// everyone seated and ready.
	WebPlayerSelect() bool

	SetNameProvider(NameProvider)

	// Start begins a new round for the given seats, resetting prior state.
	Start(seats []int)

	Update(dt float64)
	Draw(screen *ebiten.Image)

	// HandlePointerClick delivers a tap at normalized coordinates.
	HandlePointerClick(seat int, x, y float64)

	// HandleButtonClick delivers a validated panel or popup button press.
	HandleButtonClick(seat int, id string)

	// Buttons returns the module's current panel buttons. The server is the
	// sole authority on the Enabled flag.
	Buttons() []net.PanelButton

	// Popup returns the active modal, or nil. While non-nil, panel buttons
	// are suppressed.
	Popup() *net.Popup

	// ExportState returns the module's snapshot payload. This is the only
	// way module state reaches clients.
	ExportState() any

	// Finished reports that the module wants to return to the menu.
	Finished() bool
}
