package board

// ErrorKind classifies a DomainError (spec.md §7).
type ErrorKind uint8

const (
	ErrOccupied ErrorKind = iota
	ErrOutOfRange
	ErrGameOver
	ErrEmpty    // Undo/Redo called with nothing to undo/redo
	ErrWrongTurn // caller's side does not match the board's side to move
)

// DomainError is a recoverable, caller-facing error: an invalid move or an
// undo/redo called with no history. Grounded on the teacher's plain-error
// style (fmt.Errorf/errors.New, no third-party error-wrapping library
// appears anywhere in the pack's chess engines for this concern).
type DomainError struct {
	Kind ErrorKind
	Row  int
	Col  int
}

func (e *DomainError) Error() string {
	switch e.Kind {
	case ErrOccupied:
		return "board: cell already occupied"
	case ErrOutOfRange:
		return "board: row/col out of range"
	case ErrGameOver:
		return "board: game is already over"
	case ErrEmpty:
		return "board: nothing to undo/redo"
	case ErrWrongTurn:
		return "board: not this side's turn"
	default:
		return "board: domain error"
	}
}

// Is supports errors.Is(err, &DomainError{Kind: ...}) comparisons by Kind.
func (e *DomainError) Is(target error) bool {
	other, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}
