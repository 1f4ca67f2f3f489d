// Package pattern implements the Gomoku threat-shape evaluator: scoring a
// candidate placement by the attack and defense windows it opens along the
// four board axes. The score table is built once and shared by reference,
// the way the teacher's piece-value and MVV-LVA tables are.
package pattern

// Attack score magnitudes (spec pattern table, "own stone" side).
const (
	FIVE         = 1_000_000
	OpenFour     = 100_000
	ClosedFour   = 10_000
	OpenThree    = 5_000
	LongOpenThree = 8_000
	ClosedThree  = 1_000
	BrokenThree  = 800
	OpenTwo      = 200
	LongOpenTwo  = 300
	ClosedTwo    = 50
)

// Defense multiplier: blocking a threat is worth roughly half of making it,
// since the blocked threat gets recounted from the opponent's own call.
const defenseWeight = 0.5

// DOUBLE_THREE_BONUS and DOUBLE_FOUR_BONUS reward a move that opens two
// simultaneous threats across different axes — the combination, on top of
// the individual pattern scores already summed per axis.
const (
	DoubleThreeBonus = 6_000
	DoubleFourBonus  = 50_000
)

// cell is a window slot's content relative to the candidate's own side.
type cell uint8

const (
	own cell = iota
	opp
	empty
)

// shape is one recognized pattern: a window of cells (centered implicitly by
// how callers slide it) and the axis score it contributes when matched.
type shape struct {
	name  string
	cells []cell
	score int64
}

// attackTable and defenseTable are built once in init and never mutated
// afterward — a process-wide read-only table, shared by reference like the
// teacher's pieceValues/mvvLva tables.
var attackTable []shape
var defenseTable []shape

func init() {
	attackTable = []shape{
		{"FIVE", []cell{own, own, own, own, own}, FIVE},
		{"OPEN_FOUR", []cell{empty, own, own, own, own, empty}, OpenFour},
		{"CLOSED_FOUR_LEFT", []cell{opp, own, own, own, own, empty}, ClosedFour},
		{"CLOSED_FOUR_RIGHT", []cell{empty, own, own, own, own, opp}, ClosedFour},
		{"OPEN_THREE", []cell{empty, own, own, own, empty}, OpenThree},
		{"LONG_OPEN_THREE", []cell{empty, empty, own, own, own, empty, empty}, LongOpenThree},
		{"CLOSED_THREE_LEFT", []cell{opp, own, own, own, empty}, ClosedThree},
		{"CLOSED_THREE_RIGHT", []cell{empty, own, own, own, opp}, ClosedThree},
		{"BROKEN_THREE_LEFT", []cell{opp, own, empty, own, own, empty}, BrokenThree},
		{"BROKEN_THREE_RIGHT", []cell{empty, own, own, empty, own, opp}, BrokenThree},
		{"OPEN_TWO", []cell{empty, own, own, empty}, OpenTwo},
		{"LONG_OPEN_TWO", []cell{empty, empty, own, own, empty, empty}, LongOpenTwo},
		{"CLOSED_TWO_LEFT", []cell{opp, own, own, empty}, ClosedTwo},
		{"CLOSED_TWO_RIGHT", []cell{empty, own, own, opp}, ClosedTwo},
	}

	defenseTable = make([]shape, len(attackTable))
	for i, s := range attackTable {
		defenseTable[i] = shape{
			name:  s.name,
			cells: s.cells,
			score: int64(float64(s.score) * defenseWeight),
		}
	}
}
