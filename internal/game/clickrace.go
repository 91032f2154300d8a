package game

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"partyhost/internal/net"
)

const (
	raceWinScore    = 5
	raceResultsHold = 2 * time.Second
)

type raceTarget struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// newRaceTarget keeps the target fully on screen (10-90% on both axes).
func newRaceTarget() raceTarget {
	return raceTarget{
		X:      0.1 + rand.Float64()*0.8,
		Y:      0.1 + rand.Float64()*0.8,
		Radius: 0.04,
	}
}

type racePlayer struct {
	seat  int
	score int
}

// ClickRace is a reaction duel: a target pops up at a random spot after a
// random delay and the first seat to tap it takes the round. First to
// raceWinScore wins the game.
type ClickRace struct {
	names   NameProvider
	phase   string // idle, waiting, armed, results, over
	seats   []int
	players map[int]*racePlayer

	target       raceTarget
	armAt        time.Time
	armedAt      time.Time
	resultsUntil time.Time

	round        int
	roundWinner  int
	lastReaction time.Duration
	winner       int
	exit         bool
}

func NewClickRace() *ClickRace {
	return &ClickRace{phase: "idle", players: make(map[int]*racePlayer)}
}

func (g *ClickRace) Key() string                        { return "clickrace" }
func (g *ClickRace) Title() string                      { return "Click Race" }
func (g *ClickRace) MinPlayers() int                    { return 2 }
func (g *ClickRace) WebPlayerSelect() bool              { return false }
func (g *ClickRace) SetNameProvider(names NameProvider) { g.names = names }
func (g *ClickRace) Finished() bool                     { return g.exit }

func (g *ClickRace) Start(seats []int) {
	g.seats = append([]int(nil), seats...)
	g.players = make(map[int]*racePlayer, len(seats))
	for _, seat := range seats {
		g.players[seat] = &racePlayer{seat: seat}
	}
	g.round = 0
	g.winner = -1
	g.exit = false
	g.startRound()
}

func (g *ClickRace) startRound() {
	g.round++
	g.roundWinner = -1
	g.lastReaction = 0
	g.phase = "waiting"
	// 2-4s delay before the target appears, server-controlled
	g.armAt = time.Now().Add(time.Duration(2000+rand.Intn(2000)) * time.Millisecond)
}

func (g *ClickRace) Update(dt float64) {
	now := time.Now()
	switch g.phase {
	case "waiting":
		if now.After(g.armAt) {
			g.target = newRaceTarget()
			g.armedAt = now
			g.phase = "armed"
		}
	case "results":
		if now.After(g.resultsUntil) {
			g.startRound()
		}
	}
}

func (g *ClickRace) HandlePointerClick(seat int, x, y float64) {
	if g.phase != "armed" {
		return
	}
	p, ok := g.players[seat]
	if !ok {
		return
	}
	dx, dy := x-g.target.X, y-g.target.Y
	if dx*dx+dy*dy > g.target.Radius*g.target.Radius {
		return
	}

	p.score++
	g.roundWinner = seat
	g.lastReaction = time.Since(g.armedAt)
	if p.score >= raceWinScore {
		g.winner = seat
		g.phase = "over"
		return
	}
	g.phase = "results"
	g.resultsUntil = time.Now().Add(raceResultsHold)
}

func (g *ClickRace) HandleButtonClick(seat int, id string) {
	if g.phase != "over" {
		return
	}
	switch id {
	case "rematch":
		g.Start(g.seats)
	case "exit":
		g.exit = true
	}
}

func (g *ClickRace) Buttons() []net.PanelButton {
	return nil
}

func (g *ClickRace) Popup() *net.Popup {
	if g.phase != "over" {
		return nil
	}
	return &net.Popup{
		Active: true,
		Kind:   "game_over",
		Lines:  []string{fmt.Sprintf("%s wins!", g.names(g.winner))},
		Buttons: []net.PanelButton{
			{ID: "rematch", Text: "Rematch", Enabled: true},
			{ID: "exit", Text: "Back to menu", Enabled: true},
		},
	}
}

type raceScore struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type raceState struct {
	Phase       string      `json:"phase"`
	Round       int         `json:"round"`
	Target      *raceTarget `json:"target,omitempty"`
	Scores      []raceScore `json:"scores"`
	RoundWinner int         `json:"round_winner"`
	ReactionMs  int64       `json:"reaction_ms,omitempty"`
}

func (g *ClickRace) ExportState() any {
	state := raceState{
		Phase:       g.phase,
		Round:       g.round,
		RoundWinner: g.roundWinner,
		ReactionMs:  g.lastReaction.Milliseconds(),
	}
	if g.phase == "armed" {
		target := g.target
		state.Target = &target
	}
	for _, seat := range g.seats {
		state.Scores = append(state.Scores, raceScore{
			Seat:  seat,
			Name:  g.names(seat),
			Score: g.players[seat].score,
		})
	}
	return state
}

func (g *ClickRace) Draw(screen *ebiten.Image) {
	if g.phase != "armed" {
		return
	}
	bounds := screen.Bounds()
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	r := float32(g.target.Radius) * min(w, h)
	vector.DrawFilledCircle(screen, float32(g.target.X)*w, float32(g.target.Y)*h, r,
		color.RGBA{R: 230, G: 70, B: 70, A: 255}, true)
}
