package board

import "testing"

func TestPlaceSoundness(t *testing.T) {
	b := NewBoard()

	if err := b.Place(7, 7, SideBlack); err != nil {
		t.Fatalf("Place on empty cell failed: %v", err)
	}
	if got := b.Get(7, 7); got != Black {
		t.Fatalf("Get(7,7) = %v, want Black", got)
	}

	if err := b.Place(7, 7, SideWhite); err == nil {
		t.Fatalf("Place on occupied cell succeeded, want ErrOccupied")
	} else if de, ok := err.(*DomainError); !ok || de.Kind != ErrOccupied {
		t.Fatalf("Place on occupied cell = %v, want ErrOccupied", err)
	}

	for _, m := range []Move{{-1, 0}, {0, -1}, {Size, 0}, {0, Size}} {
		if err := b.Place(m.Row, m.Col, SideBlack); err == nil {
			t.Fatalf("Place%v succeeded, want ErrOutOfRange", m)
		} else if de, ok := err.(*DomainError); !ok || de.Kind != ErrOutOfRange {
			t.Fatalf("Place%v = %v, want ErrOutOfRange", m, err)
		}
	}

	if b.MoveCount() != 1 {
		t.Fatalf("MoveCount() = %d, want 1", b.MoveCount())
	}
}

func TestPlaceAfterGameOverRejected(t *testing.T) {
	b := NewBoard()
	for i := 0; i < 5; i++ {
		mustPlace(t, b, 0, i, SideBlack)
	}
	if _, ok := b.Winner(); !ok {
		t.Fatalf("expected a winner after 5 in a row")
	}
	if err := b.Place(5, 5, SideWhite); err == nil {
		t.Fatalf("Place after game over succeeded, want ErrGameOver")
	} else if de, ok := err.(*DomainError); !ok || de.Kind != ErrGameOver {
		t.Fatalf("Place after game over = %v, want ErrGameOver", err)
	}
}

func TestUndoRedoReversibility(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, 3, 3, SideBlack)
	mustPlace(t, b, 3, 4, SideWhite)
	hashAfterTwo := b.Hash()

	mv, side, err := b.Undo()
	if err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if mv != (Move{3, 4}) || side != SideWhite {
		t.Fatalf("Undo() = (%v, %v), want ((3,4), White)", mv, side)
	}
	if !b.IsEmpty(3, 4) {
		t.Fatalf("cell (3,4) not empty after undo")
	}
	if !b.HasRedo() {
		t.Fatalf("HasRedo() = false after an undo")
	}

	mv, side, err = b.Redo()
	if err != nil {
		t.Fatalf("Redo() error: %v", err)
	}
	if mv != (Move{3, 4}) || side != SideWhite {
		t.Fatalf("Redo() = (%v, %v), want ((3,4), White)", mv, side)
	}
	if b.Get(3, 4) != White {
		t.Fatalf("cell (3,4) not restored by redo")
	}
	if b.Hash() != hashAfterTwo {
		t.Fatalf("Hash() after undo+redo = %x, want %x", b.Hash(), hashAfterTwo)
	}

	// A fresh placement after an undo must drop the redo branch (Place
	// clears redo_stack; Undo/Redo themselves never do).
	b.Undo()
	mustPlace(t, b, 10, 10, SideWhite)
	if b.HasRedo() {
		t.Fatalf("HasRedo() = true after a placement following an undo")
	}
}

func TestUndoRedoOnEmptyHistory(t *testing.T) {
	b := NewBoard()
	if _, _, err := b.Undo(); err == nil {
		t.Fatalf("Undo() on empty board succeeded, want ErrEmpty")
	} else if de, ok := err.(*DomainError); !ok || de.Kind != ErrEmpty {
		t.Fatalf("Undo() on empty board = %v, want ErrEmpty", err)
	}
	if _, _, err := b.Redo(); err == nil {
		t.Fatalf("Redo() on empty board succeeded, want ErrEmpty")
	} else if de, ok := err.(*DomainError); !ok || de.Kind != ErrEmpty {
		t.Fatalf("Redo() on empty board = %v, want ErrEmpty", err)
	}
}

func TestUndoClearsWinner(t *testing.T) {
	b := NewBoard()
	for i := 0; i < 4; i++ {
		mustPlace(t, b, 1, i, SideBlack)
		mustPlace(t, b, 2, i, SideWhite)
	}
	mustPlace(t, b, 1, 4, SideBlack)
	if _, ok := b.Winner(); !ok {
		t.Fatalf("expected a winner before undo")
	}
	b.Undo()
	if _, ok := b.Winner(); ok {
		t.Fatalf("Winner() still set after undoing the winning move")
	}
	if err := b.Place(5, 5, SideWhite); err != nil {
		t.Fatalf("Place after undoing a win failed: %v", err)
	}
}

func TestWinDetectionAllAxes(t *testing.T) {
	cases := []struct {
		name  string
		moves []Move
	}{
		{"horizontal", []Move{{5, 0}, {5, 1}, {5, 2}, {5, 3}, {5, 4}}},
		{"vertical", []Move{{0, 5}, {1, 5}, {2, 5}, {3, 5}, {4, 5}}},
		{"diagonal-down-right", []Move{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}},
		{"diagonal-down-left", []Move{{0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard()
			for _, m := range tc.moves {
				mustPlace(t, b, m.Row, m.Col, SideBlack)
			}
			winner, ok := b.Winner()
			if !ok || winner != SideBlack {
				t.Fatalf("Winner() = (%v, %v), want (Black, true)", winner, ok)
			}
			line := b.WinningLine()
			if len(line) != 5 {
				t.Fatalf("WinningLine() has %d cells, want 5", len(line))
			}
			for _, m := range tc.moves {
				if !containsMove(line, m) {
					t.Fatalf("WinningLine() %v missing %v", line, m)
				}
			}
		})
	}
}

func TestWinDetectionNoFalsePositive(t *testing.T) {
	b := NewBoard()
	// Four in a row only: no winner yet.
	mustPlace(t, b, 5, 0, SideBlack)
	mustPlace(t, b, 5, 1, SideBlack)
	mustPlace(t, b, 5, 2, SideBlack)
	mustPlace(t, b, 5, 3, SideBlack)
	if _, ok := b.Winner(); ok {
		t.Fatalf("Winner() true after only 4 in a row")
	}
}

func TestWinDetectionOverlineIncludesOrigin(t *testing.T) {
	b := NewBoard()
	// Complete a plain five first and check the emitted winning_line contains
	// the move that completed it; then undo that move, leave a gap, and close
	// it to form a 6-run, checking the same for the overline.
	mustPlace(t, b, 8, 1, SideBlack)
	mustPlace(t, b, 8, 2, SideBlack)
	mustPlace(t, b, 8, 3, SideBlack)
	mustPlace(t, b, 8, 4, SideBlack)
	mustPlace(t, b, 8, 5, SideBlack)
	// Only Black stones are placed: Board itself doesn't enforce turn order;
	// that's the Coordinator's job.
	if _, ok := b.Winner(); !ok {
		t.Fatalf("expected a winner after placing 5 in a row at col 1..5")
	}
	line := b.WinningLine()
	if !containsMove(line, Move{8, 5}) {
		t.Fatalf("WinningLine() %v does not include the triggering move (8,5)", line)
	}

	b.Undo()
	mustPlace(t, b, 8, 6, SideBlack) // cols 1..4 and 6: no five yet
	if _, ok := b.Winner(); ok {
		t.Fatalf("Winner() true with a gap at (8,5)")
	}
	mustPlace(t, b, 8, 5, SideBlack) // closes the gap: a 6-run, 1..6
	if _, ok := b.Winner(); !ok {
		t.Fatalf("expected a winner after closing the gap into a 6-run")
	}
	line = b.WinningLine()
	if len(line) != 5 {
		t.Fatalf("WinningLine() has %d cells, want 5", len(line))
	}
	if !containsMove(line, Move{8, 5}) {
		t.Fatalf("WinningLine() %v does not include the triggering overline move (8,5)", line)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, 0, 0, SideBlack)
	clone := b.Clone()

	if err := clone.Place(0, 1, SideWhite); err != nil {
		t.Fatalf("Place on clone failed: %v", err)
	}
	if !b.IsEmpty(0, 1) {
		t.Fatalf("mutating a clone mutated the original")
	}
	if b.Hash() == clone.Hash() {
		t.Fatalf("clone and original share a hash after diverging")
	}
}

func mustPlace(t *testing.T, b *Board, row, col int, side Side) {
	t.Helper()
	if err := b.Place(row, col, side); err != nil {
		t.Fatalf("Place(%d,%d,%v) failed: %v", row, col, side, err)
	}
}

func containsMove(line []Move, m Move) bool {
	for _, l := range line {
		if l == m {
			return true
		}
	}
	return false
}
