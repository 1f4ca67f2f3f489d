package engine

import (
	"testing"
	"time"

	"github.com/hailam/gomokuplay/internal/board"
)

func midGameBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.NewBoard()
	place(t, b, 7, 7, board.SideBlack)
	place(t, b, 7, 8, board.SideWhite)
	place(t, b, 8, 8, board.SideBlack)
	place(t, b, 6, 6, board.SideWhite)
	place(t, b, 9, 9, board.SideBlack)
	place(t, b, 6, 8, board.SideWhite)
	place(t, b, 8, 7, board.SideBlack)
	return b
}

func TestMCTSSingleWorkerFixedSeedDeterministic(t *testing.T) {
	b := midGameBoard(t)
	cfg := MCTSConfig{
		TotalIterations:             200,
		MaxTimeSeconds:              5,
		CPUCT:                       1.4,
		NumWorkers:                  1,
		MaxSimulationDepth:          20,
		MinVisitsForExpansion:       1,
		ProgressiveWideningExponent: 0.5,
		Seed:                        42,
	}

	first := NewMCTS(cfg).Choose(b, board.SideWhite)
	for i := 0; i < 3; i++ {
		if got := NewMCTS(cfg).Choose(b, board.SideWhite); got != first {
			t.Fatalf("MCTS single-worker fixed-seed run drifted: got %v, want %v", got, first)
		}
	}
}

func TestMCTSUrgentWin(t *testing.T) {
	b := board.NewBoard()
	place(t, b, 7, 7, board.SideBlack)
	place(t, b, 7, 8, board.SideBlack)
	place(t, b, 7, 9, board.SideBlack)
	place(t, b, 7, 10, board.SideBlack)
	place(t, b, 0, 0, board.SideWhite)
	place(t, b, 0, 1, board.SideWhite)

	got := NewMCTS(DefaultMCTSConfig()).Choose(b, board.SideBlack)
	if got != (board.Move{7, 6}) && got != (board.Move{7, 11}) {
		t.Fatalf("MCTS with an open four for the mover = %v, want (7,6) or (7,11)", got)
	}
}

func TestMCTSUrgentBlock(t *testing.T) {
	b := board.NewBoard()
	place(t, b, 7, 7, board.SideBlack)
	place(t, b, 7, 8, board.SideBlack)
	place(t, b, 7, 9, board.SideBlack)
	place(t, b, 7, 10, board.SideBlack)
	place(t, b, 6, 7, board.SideWhite)

	got := NewMCTS(DefaultMCTSConfig()).Choose(b, board.SideWhite)
	if got != (board.Move{7, 6}) && got != (board.Move{7, 11}) {
		t.Fatalf("MCTS facing an opponent open four = %v, want (7,6) or (7,11)", got)
	}
}

func TestMCTSOpensCentreOnEmptyBoard(t *testing.T) {
	b := board.NewBoard()
	got := NewMCTS(DefaultMCTSConfig()).Choose(b, board.SideBlack)
	want := board.Move{Row: boardCentre, Col: boardCentre}
	if got != want {
		t.Fatalf("Choose on empty board = %v, want %v", got, want)
	}
}

func TestMCTSPanicsWhenNothingVisited(t *testing.T) {
	b := midGameBoard(t)
	cfg := DefaultMCTSConfig()
	cfg.TotalIterations = 0
	cfg.NumWorkers = 1
	cfg.MaxTimeSeconds = 0.0001

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Choose with an exhausted budget did not panic")
		}
		if _, ok := r.(*EngineBudgetExhausted); !ok {
			t.Fatalf("Choose panicked with %T, want *EngineBudgetExhausted", r)
		}
	}()
	NewMCTS(cfg).Choose(b, board.SideWhite)
}

func TestSafeChooseFallsBackWhenMCTSBudgetExhausted(t *testing.T) {
	b := midGameBoard(t)
	cfg := DefaultMCTSConfig()
	cfg.TotalIterations = 0
	cfg.NumWorkers = 1
	cfg.MaxTimeSeconds = 0.0001

	got, err := SafeChoose(NewMCTS(cfg), b, board.SideWhite)
	if err == nil {
		t.Fatalf("SafeChoose with an exhausted MCTS budget returned no error")
	}
	if _, ok := err.(*EngineBudgetExhausted); !ok {
		t.Fatalf("SafeChoose error = %T, want *EngineBudgetExhausted", err)
	}
	if !got.IsValid() || !b.IsEmpty(got.Row, got.Col) {
		t.Fatalf("SafeChoose fallback move = %v, want a valid empty cell (classical fallback)", got)
	}
}

func TestMCTSStopAbortsBeforeDeadline(t *testing.T) {
	b := midGameBoard(t)
	cfg := DefaultMCTSConfig()
	cfg.TotalIterations = 200000
	cfg.NumWorkers = 1
	cfg.MaxTimeSeconds = 30

	m := NewMCTS(cfg)
	done := make(chan board.Move, 1)
	go func() { done <- m.Choose(b, board.SideWhite) }()

	time.Sleep(10 * time.Millisecond)
	m.Stop()

	select {
	case got := <-done:
		if !got.IsValid() {
			t.Fatalf("Choose after Stop returned %v, want a valid move", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Choose did not honour Stop well within its time budget")
	}
}

func TestMCTSLeavesBoardUnmodified(t *testing.T) {
	b := midGameBoard(t)
	before := b.Hash()
	cfg := DefaultMCTSConfig()
	cfg.TotalIterations = 100
	cfg.NumWorkers = 2
	NewMCTS(cfg).Choose(b, board.SideWhite)
	if b.Hash() != before {
		t.Fatalf("Choose mutated the caller's board: hash changed")
	}
}
