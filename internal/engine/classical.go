package engine

import (
	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/pattern"
)

// Classical is the one-ply composite-score engine: no search tree, just the
// pattern evaluator applied to every candidate cell from both sides' point
// of view. It's also the fallback SafeChoose plays when another engine's
// Choose panics (e.g. MCTS with no visited move).
type Classical struct{}

// NewClassical returns a Classical engine. It holds no state, so a shared
// package-level instance would work just as well; a constructor keeps the
// call sites symmetric with Minimax/MCTS.
func NewClassical() *Classical {
	return &Classical{}
}

// Choose implements GomokuAI.
func (c *Classical) Choose(b *board.Board, side board.Side) board.Move {
	if b.MoveCount() == 0 {
		return board.Move{Row: boardCentre, Col: boardCentre}
	}

	if win, ok := findImmediateWin(b, side); ok {
		return win
	}
	if block, ok := findImmediateWin(b, side.Opponent()); ok {
		return block
	}

	candidates := candidateMoves(b, neighbourRadius)

	var (
		best        board.Move
		bestCombined int64
		haveBest    bool

		bestAttack      board.Move
		bestAttackScore int64
		haveAttack      bool
	)

	for _, m := range candidates {
		attack := pattern.EvaluateMove(b, m.Row, m.Col, side)
		defense := pattern.EvaluateMove(b, m.Row, m.Col, side.Opponent())
		combined := int64(1.1*float64(attack)) + defense

		if !haveAttack || attack > bestAttackScore ||
			(attack == bestAttackScore && isEarlier(m, bestAttack)) {
			bestAttackScore = attack
			bestAttack = m
			haveAttack = true
		}

		if !haveBest || combined > bestCombined ||
			(combined == bestCombined && isEarlier(m, best)) {
			bestCombined = combined
			best = m
			haveBest = true
		}
	}

	if haveAttack && bestAttackScore >= WinThreshold {
		return bestAttack
	}
	if haveBest {
		return best
	}
	return board.Move{Row: boardCentre, Col: boardCentre}
}

// isEarlier applies the deterministic tie-break: lower row, then lower col.
func isEarlier(candidate, current board.Move) bool {
	if candidate.Row != current.Row {
		return candidate.Row < current.Row
	}
	return candidate.Col < current.Col
}
