package board

// axisDirections are the 4 lines through a stone a win can run along:
// horizontal, vertical, and both diagonals. Each entry is one direction;
// the opposite direction is checked by negating dr/dc.
var axisDirections = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// detectWin scans the 4 axes through (row, col) for a run of >= 5
// same-colored stones (spec.md §4.1.1). No rule against overlines: a run of
// 6 still counts, and the emitted winning_line is the earliest 5-stone
// window of the run (walking in the axis's positive direction) that still
// contains the origin.
func (b *Board) detectWin(row, col int, side Side) {
	stone := side.Stone()

	for _, dir := range axisDirections {
		dr, dc := dir[0], dir[1]

		// Walk backward from the origin to find the run's start, counting
		// how many steps the origin sits from that start (k).
		startR, startC := row, col
		k := 0
		for b.Get(startR-dr, startC-dc) == stone {
			startR -= dr
			startC -= dc
			k++
		}

		// Count the run length from the start walking forward.
		length := 0
		r, c := startR, startC
		for b.Get(r, c) == stone {
			length++
			r += dr
			c += dc
		}

		if length >= 5 {
			// Choose the 5-long window within the run that contains the
			// origin (at step k), so an overline's winning_line still
			// includes the just-placed stone as the invariant requires.
			ws := k - 4
			if ws < 0 {
				ws = 0
			}
			if maxStart := length - 5; ws > maxStart {
				ws = maxStart
			}

			b.winner = stone
			b.winningLine = make([]Move, 0, 5)
			r, c = startR+ws*dr, startC+ws*dc
			for i := 0; i < 5; i++ {
				b.winningLine = append(b.winningLine, Move{Row: r, Col: c})
				r += dr
				c += dc
			}
			return
		}
	}
}
