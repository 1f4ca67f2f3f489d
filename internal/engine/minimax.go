package engine

import (
	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/pattern"
)

// mateLikeScore dominates any achievable sum of pattern-evaluator deltas, so
// it stands in for the spec's "±infinity-surrogate" terminal score.
const mateLikeScore = int64(WinThreshold) * 10

// Minimax is the fixed-depth alpha-beta engine. It keeps one transposition
// table across calls, the way the teacher's Engine keeps one TT across
// searches and only ages it between them.
type Minimax struct {
	Depth           int
	TableCapacityMB int

	tt *TranspositionTable
}

// defaultMinimaxDepth matches the "default 3" configuration option.
const defaultMinimaxDepth = 3

// NewMinimax returns a Minimax engine at the given depth (<=0 uses the
// default) with a transposition table sized tableCapacityMB megabytes
// (<=0 uses 16MB).
func NewMinimax(depth, tableCapacityMB int) *Minimax {
	if depth <= 0 {
		depth = defaultMinimaxDepth
	}
	if tableCapacityMB <= 0 {
		tableCapacityMB = 16
	}
	return &Minimax{
		Depth:           depth,
		TableCapacityMB: tableCapacityMB,
		tt:              NewTranspositionTable(tableCapacityMB),
	}
}

// Choose implements GomokuAI.
func (m *Minimax) Choose(b *board.Board, side board.Side) board.Move {
	if b.MoveCount() == 0 {
		return board.Move{Row: boardCentre, Col: boardCentre}
	}
	if win, ok := findImmediateWin(b, side); ok {
		return win
	}
	if block, ok := findImmediateWin(b, side.Opponent()); ok {
		return block
	}

	clone := b.Clone()
	m.tt.NewSearch()

	_, bestMove := m.negamax(clone, m.Depth, 0, -mateLikeScore*2, mateLikeScore*2, side, 0)
	if !bestMove.IsValid() {
		candidates := candidateMoves(clone, neighbourRadius)
		if len(candidates) > 0 {
			return candidates[0]
		}
		return board.Move{Row: boardCentre, Col: boardCentre}
	}
	return bestMove
}

// negamax searches depth plies from sideToMove's perspective. value is the
// Black-centric incremental board value accumulated along this path: every
// move's pattern-evaluator delta is added for Black and subtracted for
// White, so a leaf's score from sideToMove's perspective is value (Black)
// or -value (White) — no full-board rescan at the leaf.
func (m *Minimax) negamax(b *board.Board, depth, ply int, alpha, beta int64, sideToMove board.Side, value int64) (int64, board.Move) {
	if winner, ok := b.Winner(); ok {
		score := mateLikeScore - int64(ply)
		if winner == sideToMove {
			return score, board.NoMove
		}
		return -score, board.NoMove
	}
	if depth == 0 {
		return perspectiveValue(value, sideToMove), board.NoMove
	}

	hash := b.Hash()
	if entry, ok := m.tt.Probe(hash); ok && int(entry.Depth) >= depth {
		return AdjustScoreFromTT(entry.Score, ply), entry.BestMove
	}

	candidates := orderedCandidates(b, sideToMove, neighbourRadius)
	if len(candidates) == 0 {
		return perspectiveValue(value, sideToMove), board.NoMove
	}

	best := -mateLikeScore * 2
	bestMove := candidates[0]
	flag := TTUpperBound

	for _, cand := range candidates {
		delta := pattern.EvaluateMove(b, cand.Row, cand.Col, sideToMove)
		signedDelta := delta
		if sideToMove == board.SideWhite {
			signedDelta = -delta
		}

		if err := b.Place(cand.Row, cand.Col, sideToMove); err != nil {
			continue
		}
		childScore, _ := m.negamax(b, depth-1, ply+1, -beta, -alpha, sideToMove.Opponent(), value+signedDelta)
		b.Undo()
		score := -childScore

		if score > best {
			best = score
			bestMove = cand
		}
		if score > alpha {
			alpha = score
			flag = TTExact
		}
		if alpha >= beta {
			flag = TTLowerBound
			break
		}
	}

	m.tt.Store(hash, depth, AdjustScoreToTT(best, ply), flag, bestMove)
	return best, bestMove
}

func perspectiveValue(value int64, sideToMove board.Side) int64 {
	if sideToMove == board.SideWhite {
		return -value
	}
	return value
}
