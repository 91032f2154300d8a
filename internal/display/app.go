package display

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"partyhost/internal/server"
)

// App is the ebiten shell around the simulation. Update is the single
// cooperative simulation step: it ticks the core (drain input, mutate,
// build snapshot) and publishes the result; Draw renders the active game
// and periodically feeds the frame relay. Network goroutines never run
// any of this.
type App struct {
	core  *server.Core
	hub   *server.Hub
	relay *server.FrameRelay

	width, height int
	frameInterval time.Duration

	last      time.Time
	lastFrame time.Time
}

func New(core *server.Core, hub *server.Hub, relay *server.FrameRelay, cfg server.Config) *App {
	return &App{
		core:          core,
		hub:           hub,
		relay:         relay,
		width:         cfg.ScreenWidth,
		height:        cfg.ScreenHeight,
		frameInterval: cfg.FrameInterval,
	}
}

func (a *App) Update() error {
	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !a.last.IsZero() {
		dt = now.Sub(a.last).Seconds()
	}
	a.last = now

	if data := a.core.Tick(now, dt); data != nil {
		a.hub.Publish(data)
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 26, B: 32, A: 255})
	a.core.Draw(screen)

	if a.relay == nil {
		return
	}
	now := time.Now()
	if now.Sub(a.lastFrame) < a.frameInterval {
		return
	}
	a.lastFrame = now
	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	a.relay.OnFrameReady(pixels, bounds.Dx(), bounds.Dy())
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Run blocks until the window closes.
func (a *App) Run() error {
	ebiten.SetWindowSize(a.width, a.height)
	ebiten.SetWindowTitle("Party Host")
	return ebiten.RunGame(a)
}
