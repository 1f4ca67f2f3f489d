package pattern

import (
	"math"
	"strings"

	"github.com/hailam/gomokuplay/internal/board"
)

// windowRadius is how far back/forward each axis window extends from the
// candidate cell: 4 cells either side, giving the 9-cell window the attack
// table is matched against.
const windowRadius = 4

// axisDirections are the 4 lines through a cell a pattern can run along.
var axisDirections = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

const boardCentre = (board.Size - 1) / 2

// EvaluateMove returns the signed utility of placing side's stone at
// (row, col), which must be empty. It sums attack-window scores, defense-
// window scores (the threats this move blocks), tactical double-threat
// bonuses, and a small positional term.
func EvaluateMove(b *board.Board, row, col int, side board.Side) int64 {
	var total int64
	threeAxes := 0
	fourAxes := 0

	opponent := side.Opponent()

	for _, dir := range axisDirections {
		attackWindow := buildWindow(b, row, col, dir[0], dir[1], side)
		sum, hasThree, hasFour := matchSum(attackWindow, attackTable)
		total += sum
		if hasThree {
			threeAxes++
		}
		if hasFour {
			fourAxes++
		}

		defenseWindow := buildWindow(b, row, col, dir[0], dir[1], opponent)
		defSum, _, _ := matchSum(defenseWindow, defenseTable)
		total += defSum
	}

	if threeAxes >= 2 {
		total += DoubleThreeBonus
	}
	if fourAxes >= 2 {
		total += DoubleFourBonus
	}

	total += positionalScore(b, row, col)

	return total
}

// buildWindow encodes the 2*windowRadius+1 cells centred on (row, col) along
// (dr, dc) relative to perspective: the candidate cell itself is always
// "own" (it's the hypothetical or real stone being evaluated), a matching
// stone is own, an opposing stone or an off-board cell is opp ("Opp-or-Wall"
// per the pattern table's X), and an empty cell is empty.
func buildWindow(b *board.Board, row, col, dr, dc int, perspective board.Side) []cell {
	window := make([]cell, 2*windowRadius+1)
	for i := -windowRadius; i <= windowRadius; i++ {
		idx := i + windowRadius
		if i == 0 {
			window[idx] = own
			continue
		}
		r, c := row+i*dr, col+i*dc
		if !board.InBounds(r, c) {
			window[idx] = opp
			continue
		}
		stone := b.Get(r, c)
		switch stone {
		case board.Empty:
			window[idx] = empty
		default:
			if board.SideOf(stone) == perspective {
				window[idx] = own
			} else {
				window[idx] = opp
			}
		}
	}
	return window
}

// matchSum slides every shape in table across window and sums the scores of
// every match. It also reports whether any three- or four-category shape
// matched, for the double-threat tactical bonuses.
func matchSum(window []cell, table []shape) (sum int64, hasThree, hasFour bool) {
	for _, s := range table {
		for start := 0; start+len(s.cells) <= len(window); start++ {
			if windowMatches(window[start:start+len(s.cells)], s.cells) {
				sum += s.score
				if strings.Contains(s.name, "THREE") {
					hasThree = true
				}
				if strings.Contains(s.name, "FOUR") {
					hasFour = true
				}
			}
		}
	}
	return sum, hasThree, hasFour
}

func windowMatches(slice, want []cell) bool {
	for i, c := range want {
		if slice[i] != c {
			return false
		}
	}
	return true
}

// positionalScore favours the centre and cells near existing stones, per
// the spec's small positional term: a distance-to-centre bonus and a
// proximity-density bonus from nearby stones.
func positionalScore(b *board.Board, row, col int) int64 {
	dr := float64(row - boardCentre)
	dc := float64(col - boardCentre)
	euclid := math.Sqrt(dr*dr + dc*dc)
	centreScore := 100 - 5*euclid
	if centreScore < 0 {
		centreScore = 0
	}

	density := int64(0)
	for r := row - 2; r <= row+2; r++ {
		for c := col - 2; c <= col+2; c++ {
			if r == row && c == col {
				continue
			}
			if !board.InBounds(r, c) || b.Get(r, c) == board.Empty {
				continue
			}
			chebyshev := abs(r - row)
			if d := abs(c - col); d > chebyshev {
				chebyshev = d
			}
			if chebyshev <= 2 {
				density += int64(3-chebyshev) * 10
			}
		}
	}

	return int64(centreScore) + density
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
