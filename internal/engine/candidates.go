package engine

import (
	"sort"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/pattern"
)

// neighbourRadius is the Chebyshev distance defining the bound set: the pool
// of empty cells a move may be chosen from. Restricting to cells near played
// stones is what keeps Classical/Minimax/MCTS from wasting time on dead
// corners of an otherwise-empty 15x15 board.
const neighbourRadius = 2

// candidateMoves returns the empty cells within radius of any existing
// stone. An empty board yields the centre only (there is nothing to be
// "near" yet, and every engine opens there).
func candidateMoves(b *board.Board, radius int) []board.Move {
	if b.MoveCount() == 0 {
		return []board.Move{{Row: boardCentre, Col: boardCentre}}
	}

	seen := make(map[board.Move]bool)
	var moves []board.Move
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if !b.IsEmpty(row, col) {
				continue
			}
			if !hasNeighbourStone(b, row, col, radius) {
				continue
			}
			m := board.Move{Row: row, Col: col}
			if !seen[m] {
				seen[m] = true
				moves = append(moves, m)
			}
		}
	}
	if len(moves) == 0 {
		return []board.Move{{Row: boardCentre, Col: boardCentre}}
	}
	return moves
}

func hasNeighbourStone(b *board.Board, row, col, radius int) bool {
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if board.InBounds(r, c) && !b.IsEmpty(r, c) {
				return true
			}
		}
	}
	return false
}

// scoredMove pairs a candidate with its ordering score for one side.
type scoredMove struct {
	move  board.Move
	score int64
}

// orderedCandidates returns candidateMoves sorted by the pattern evaluator's
// score for side, descending, breaking ties by (lower row, lower col) per
// the deterministic rule the evaluator itself uses.
func orderedCandidates(b *board.Board, side board.Side, radius int) []board.Move {
	raw := candidateMoves(b, radius)
	scored := make([]scoredMove, len(raw))
	for i, m := range raw {
		scored[i] = scoredMove{move: m, score: pattern.EvaluateMove(b, m.Row, m.Col, side)}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].move.Row != scored[j].move.Row {
			return scored[i].move.Row < scored[j].move.Row
		}
		return scored[i].move.Col < scored[j].move.Col
	})
	ordered := make([]board.Move, len(scored))
	for i, s := range scored {
		ordered[i] = s.move
	}
	return ordered
}

// findImmediateWin reports a move, if any, that would give side a five in a
// row right now. Shared by every engine's urgent-move pre-check.
func findImmediateWin(b *board.Board, side board.Side) (board.Move, bool) {
	for _, m := range candidateMoves(b, neighbourRadius) {
		clone := b.Clone()
		if err := clone.Place(m.Row, m.Col, side); err != nil {
			continue
		}
		if winner, ok := clone.Winner(); ok && winner == side {
			return m, true
		}
	}
	return board.NoMove, false
}
