// Package engine implements the three interchangeable Gomoku move-choosing
// engines — Classical, Minimax, and MCTS — behind a single GomokuAI
// interface, plus the shared candidate-generation and urgent-move logic
// they all build on.
package engine

import (
	"log"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/pattern"
)

// GomokuAI is the programmatic contract every engine satisfies. Choose never
// mutates b; engines operate on clones.
type GomokuAI interface {
	Choose(b *board.Board, side board.Side) board.Move
}

// boardCentre is the fixed opening square for a 15x15 board.
const boardCentre = (board.Size - 1) / 2

// WinThreshold is the score an evaluate_move result must reach to be
// treated as "this move wins outright" by the Classical engine.
const WinThreshold = pattern.FIVE

// SafeChoose runs engine.Choose and recovers a panic into the classical
// engine's answer, logging the failure the way the teacher logs a failed
// NNUE load and continues with a safe default. A panic carrying one of this
// package's own error kinds (e.g. MCTS's zero-visits EngineBudgetExhausted)
// is classified as that kind; any other recovered value is wrapped as
// EngineInternal. Callers that already know their engine is Classical don't
// need it (Classical never panics on a well-formed board).
func SafeChoose(ai GomokuAI, b *board.Board, side board.Side) (move board.Move, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch kind := r.(type) {
			case *EngineBudgetExhausted:
				err = kind
			case *EngineInternal:
				err = kind
			default:
				err = &EngineInternal{Cause: r}
			}
			log.Printf("engine: recovered panic in Choose, falling back to classical: %v", err)
			move = NewClassical().Choose(b, side)
		}
	}()
	move = ai.Choose(b, side)
	return move, nil
}
