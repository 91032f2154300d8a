package game

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func newTestMath() *QuickMath {
	g := NewQuickMath()
	g.SetNameProvider(func(seat int) string { return fmt.Sprintf("Player %d", seat+1) })
	g.Start([]int{1, 2})
	return g
}

// correctButton finds the answer button carrying the right value.
func correctButton(g *QuickMath) string {
	for i, choice := range g.choices {
		if choice == g.question.Answer {
			return fmt.Sprintf("answer_%d", i)
		}
	}
	return ""
}

func wrongButton(g *QuickMath) string {
	for i, choice := range g.choices {
		if choice != g.question.Answer {
			return fmt.Sprintf("answer_%d", i)
		}
	}
	return ""
}

func TestGenerateMathQuestion(t *testing.T) {
	for i := 0; i < 200; i++ {
		q := generateMathQuestion()
		if q.Answer < 0 {
			t.Fatalf("negative answer for %q", q.Display)
		}
		if q.Display == "" {
			t.Fatal("empty question display")
		}
	}
}

func TestScrambleChoices(t *testing.T) {
	for i := 0; i < 200; i++ {
		answer := i % 50
		choices := scrambleChoices(answer)
		seen := make(map[int]bool)
		found := false
		for _, c := range choices {
			if seen[c] {
				t.Fatalf("duplicate choice %d in %v", c, choices)
			}
			if c < 0 {
				t.Fatalf("negative choice in %v", choices)
			}
			seen[c] = true
			if c == answer {
				found = true
			}
		}
		if !found {
			t.Fatalf("answer %d missing from %v", answer, choices)
		}
	}
}

func TestQuickMathCorrectAnswerScores(t *testing.T) {
	g := newTestMath()
	if g.phase != "question" || g.round != 1 {
		t.Fatalf("phase=%q round=%d after Start", g.phase, g.round)
	}

	g.HandleButtonClick(1, correctButton(g))
	if g.scores[1] != 1 {
		t.Errorf("score = %d, want 1", g.scores[1])
	}
	if g.round != 2 {
		t.Errorf("round = %d, want 2 after a correct answer", g.round)
	}
}

func TestQuickMathWrongAnswerIgnored(t *testing.T) {
	g := newTestMath()
	g.HandleButtonClick(2, wrongButton(g))
	if g.scores[2] != 0 {
		t.Errorf("score = %d, want 0", g.scores[2])
	}
	if g.round != 1 {
		t.Errorf("round advanced on a wrong answer")
	}
}

func TestQuickMathNonPlayerIgnored(t *testing.T) {
	g := newTestMath()
	g.HandleButtonClick(7, correctButton(g))
	if g.round != 1 {
		t.Error("unselected seat advanced the round")
	}
}

func TestQuickMathTimeoutAdvances(t *testing.T) {
	g := newTestMath()
	g.deadline = time.Now().Add(-time.Millisecond)
	g.Update(1.0 / 60)
	if g.round != 2 {
		t.Errorf("round = %d, want 2 after timeout", g.round)
	}
	if g.scores[1] != 0 || g.scores[2] != 0 {
		t.Error("timeout granted a score")
	}
}

func TestQuickMathGameOver(t *testing.T) {
	g := newTestMath()
	for i := 0; i < mathRounds; i++ {
		g.HandleButtonClick(2, correctButton(g))
	}
	if g.phase != "over" {
		t.Fatalf("phase = %q, want over after %d rounds", g.phase, mathRounds)
	}

	popup := g.Popup()
	if popup == nil || !popup.Active {
		t.Fatal("no popup at game over")
	}
	if !strings.HasPrefix(popup.Lines[0], "Player 3 wins") {
		t.Errorf("popup line = %q", popup.Lines[0])
	}
	if g.Buttons() != nil {
		t.Error("answer buttons still offered after game over")
	}

	g.HandleButtonClick(1, "play_again")
	if g.phase != "question" || g.round != 1 || g.scores[2] != 0 {
		t.Error("play_again did not reset the game")
	}

	for i := 0; i < mathRounds; i++ {
		g.HandleButtonClick(1, correctButton(g))
	}
	g.HandleButtonClick(2, "exit")
	if !g.Finished() {
		t.Error("exit did not finish the module")
	}

	// A fresh Start clears the exit flag along with the rest.
	g.Start([]int{1, 2})
	if g.Finished() {
		t.Error("Finished survived a restart")
	}
	if g.Popup() != nil {
		t.Error("game-over popup survived a restart")
	}
}

func TestQuickMathExport(t *testing.T) {
	g := newTestMath()
	state := g.ExportState().(mathState)
	if state.Question == "" {
		t.Error("question missing from export")
	}
	if state.TotalRounds != mathRounds {
		t.Errorf("total_rounds = %d, want %d", state.TotalRounds, mathRounds)
	}
	if len(state.Scores) != 2 || state.Scores[0].Name != "Player 2" {
		t.Errorf("scores = %v", state.Scores)
	}

	g.phase = "over"
	state = g.ExportState().(mathState)
	if state.Question != "" {
		t.Error("question exported after the game ended")
	}
}
