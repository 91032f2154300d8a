package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"partyhost/internal/net"
)

const (
	mathRounds       = 10
	mathQuestionTime = 15 * time.Second
)

type mathQuestion struct {
	Display string
	Answer  int
}

func generateMathQuestion() mathQuestion {
	if rand.Intn(2) == 0 {
		// Addition or subtraction (1 to 999)
		if rand.Intn(2) == 0 {
			a, b := rand.Intn(999)+1, rand.Intn(999)+1
			return mathQuestion{Display: fmt.Sprintf("%d + %d", a, b), Answer: a + b}
		}
		a := rand.Intn(999) + 1
		b := rand.Intn(a) + 1 // keep the result positive
		return mathQuestion{Display: fmt.Sprintf("%d - %d", a, b), Answer: a - b}
	}
	// Multiplication or division (up to 12x12)
	if rand.Intn(2) == 0 {
		a, b := rand.Intn(12)+1, rand.Intn(12)+1
		return mathQuestion{Display: fmt.Sprintf("%d × %d", a, b), Answer: a * b}
	}
	b := rand.Intn(12) + 1
	answer := rand.Intn(12) + 1
	return mathQuestion{Display: fmt.Sprintf("%d ÷ %d", b*answer, b), Answer: answer}
}

// QuickMath is an arithmetic sprint: everyone sees one question with four
// answer buttons, the first seat to press the right one scores. Runs
// through the web-driven player selection phase before starting.
type QuickMath struct {
	names  NameProvider
	seats  []int
	scores map[int]int

	phase    string // idle, question, over
	question mathQuestion
	choices  [4]int
	deadline time.Time
	round    int
	exit     bool
}

func NewQuickMath() *QuickMath {
	return &QuickMath{phase: "idle", scores: make(map[int]int)}
}

func (g *QuickMath) Key() string                        { return "quickmath" }
func (g *QuickMath) Title() string                      { return "Quick Math" }
func (g *QuickMath) MinPlayers() int                    { return 2 }
func (g *QuickMath) WebPlayerSelect() bool              { return true }
func (g *QuickMath) SetNameProvider(names NameProvider) { g.names = names }
func (g *QuickMath) Finished() bool                     { return g.exit }

func (g *QuickMath) Start(seats []int) {
	g.seats = append([]int(nil), seats...)
	g.scores = make(map[int]int, len(seats))
	for _, seat := range seats {
		g.scores[seat] = 0
	}
	g.round = 0
	g.exit = false
	g.nextQuestion()
}

func (g *QuickMath) nextQuestion() {
	if g.round >= mathRounds {
		g.phase = "over"
		return
	}
	g.round++
	g.question = generateMathQuestion()
	g.choices = scrambleChoices(g.question.Answer)
	g.deadline = time.Now().Add(mathQuestionTime)
	g.phase = "question"
}

// scrambleChoices builds four distinct answer options including the right
// one at a random position.
func scrambleChoices(answer int) [4]int {
	var choices [4]int
	correct := rand.Intn(4)
	used := map[int]bool{answer: true}
	for i := range choices {
		if i == correct {
			choices[i] = answer
			continue
		}
		for {
			delta := rand.Intn(10) + 1
			if rand.Intn(2) == 0 {
				delta = -delta
			}
			candidate := answer + delta
			if candidate >= 0 && !used[candidate] {
				used[candidate] = true
				choices[i] = candidate
				break
			}
		}
	}
	return choices
}

func (g *QuickMath) Update(dt float64) {
	if g.phase == "question" && time.Now().After(g.deadline) {
		// nobody got it in time
		g.nextQuestion()
	}
}

func (g *QuickMath) HandlePointerClick(seat int, x, y float64) {}

func (g *QuickMath) HandleButtonClick(seat int, id string) {
	switch g.phase {
	case "question":
		if _, ok := g.scores[seat]; !ok {
			return
		}
		for i, choice := range g.choices {
			if id != fmt.Sprintf("answer_%d", i) {
				continue
			}
			if choice == g.question.Answer {
				g.scores[seat]++
				g.nextQuestion()
			}
			return
		}
	case "over":
		switch id {
		case "play_again":
			g.Start(g.seats)
		case "exit":
			g.exit = true
		}
	}
}

func (g *QuickMath) Buttons() []net.PanelButton {
	if g.phase != "question" {
		return nil
	}
	buttons := make([]net.PanelButton, 0, len(g.choices))
	for i, choice := range g.choices {
		buttons = append(buttons, net.PanelButton{
			ID:      fmt.Sprintf("answer_%d", i),
			Text:    fmt.Sprintf("%d", choice),
			Enabled: true,
		})
	}
	return buttons
}

func (g *QuickMath) Popup() *net.Popup {
	if g.phase != "over" {
		return nil
	}
	best, bestScore := -1, -1
	for _, seat := range g.seats {
		if g.scores[seat] > bestScore {
			best, bestScore = seat, g.scores[seat]
		}
	}
	return &net.Popup{
		Active: true,
		Kind:   "game_over",
		Lines:  []string{fmt.Sprintf("%s wins with %d points", g.names(best), bestScore)},
		Buttons: []net.PanelButton{
			{ID: "play_again", Text: "Play again", Enabled: true},
			{ID: "exit", Text: "Back to menu", Enabled: true},
		},
	}
}

type mathScore struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type mathState struct {
	Phase       string      `json:"phase"`
	Round       int         `json:"round"`
	TotalRounds int         `json:"total_rounds"`
	Question    string      `json:"question,omitempty"`
	TimeLeftMs  int64       `json:"time_left_ms"`
	Scores      []mathScore `json:"scores"`
}

func (g *QuickMath) ExportState() any {
	state := mathState{
		Phase:       g.phase,
		Round:       g.round,
		TotalRounds: mathRounds,
	}
	if g.phase == "question" {
		state.Question = g.question.Display
		if left := time.Until(g.deadline); left > 0 {
			state.TimeLeftMs = left.Milliseconds()
		}
	}
	for _, seat := range g.seats {
		state.Scores = append(state.Scores, mathScore{
			Seat:  seat,
			Name:  g.names(seat),
			Score: g.scores[seat],
		})
	}
	return state
}

func (g *QuickMath) Draw(screen *ebiten.Image) {
	if g.phase != "question" {
		return
	}
	bounds := screen.Bounds()
	ebitenutil.DebugPrintAt(screen, g.question.Display, bounds.Dx()/2-40, bounds.Dy()/2)
}
