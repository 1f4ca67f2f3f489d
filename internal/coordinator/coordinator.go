// Package coordinator owns the live Board and the selected engine, and
// drives the AwaitingHuman/AwaitingAI/GameOver state machine a front-end
// plays through. Grounded on the teacher's top-level Engine orchestration
// (internal/engine/engine.go) plus internal/ui/game.go's pattern of calling
// into storage once a game ends.
package coordinator

import (
	"log"
	"time"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
)

// State is a position in the Coordinator's state machine.
type State int

const (
	AwaitingHuman State = iota
	AwaitingAI
	GameOver
)

func (s State) String() string {
	switch s {
	case AwaitingAI:
		return "AwaitingAI"
	case GameOver:
		return "GameOver"
	default:
		return "AwaitingHuman"
	}
}

// Coordinator owns the live Board and a selected engine. Callers must
// serialize their own calls into it (single UI event loop) — it holds no
// lock across AIMove, so a UI thread is never blocked behind one.
type Coordinator struct {
	board     *board.Board
	ai        engine.GomokuAI
	aiSide    board.Side
	aiEngine  storage.EngineKind
	store     *storage.Storage
	state     State
	gameStart time.Time
}

// New returns a Coordinator ready to play. store may be nil — stats then
// simply aren't recorded. aiEngineKind names the concrete engine behind ai,
// purely so finished games can be attributed correctly in storage; it has
// no effect on play.
func New(ai engine.GomokuAI, aiSide board.Side, aiEngineKind storage.EngineKind, store *storage.Storage) *Coordinator {
	c := &Coordinator{
		board:     board.NewBoard(),
		ai:        ai,
		aiSide:    aiSide,
		aiEngine:  aiEngineKind,
		store:     store,
		gameStart: time.Now(),
	}
	c.state = AwaitingHuman
	if aiSide == board.SideBlack {
		c.state = AwaitingAI
	}
	return c
}

// State returns the coordinator's current state.
func (c *Coordinator) State() State {
	return c.state
}

// Board returns the live board, for read-only rendering. Callers must not
// mutate it directly.
func (c *Coordinator) Board() *board.Board {
	return c.board
}

func (c *Coordinator) humanSide() board.Side {
	return c.aiSide.Opponent()
}

// AISide returns the side the engine plays.
func (c *Coordinator) AISide() board.Side {
	return c.aiSide
}

// Engine returns the underlying engine, so a caller can run its own search
// on a cloned board off the main goroutine (see internal/ui.Game, which
// computes the AI's move in a goroutine over Board().Clone() and only
// applies it on the main goroutine via ApplyAIMove — mirroring the
// teacher's Game.startAIThinking/checkAIMove split).
func (c *Coordinator) Engine() engine.GomokuAI {
	return c.ai
}

// HumanPlace validates that it's the human's turn, then forwards to
// Board.Place.
func (c *Coordinator) HumanPlace(row, col int) error {
	if c.state == GameOver {
		return &board.DomainError{Kind: board.ErrGameOver, Row: row, Col: col}
	}
	if c.state != AwaitingHuman {
		return &board.DomainError{Kind: board.ErrWrongTurn, Row: row, Col: col}
	}

	if err := c.board.Place(row, col, c.humanSide()); err != nil {
		return err
	}

	c.advanceAfterMove()
	return nil
}

// AIMove invokes the engine and applies its move. Must be called only in
// AwaitingAI. If the engine fails internally, it falls back to the
// classical engine's choice and logs the failure rather than aborting the
// game (EngineInternal policy).
func (c *Coordinator) AIMove() (board.Move, error) {
	if c.state != AwaitingAI {
		return board.NoMove, &board.DomainError{Kind: board.ErrWrongTurn}
	}

	move, engErr := engine.SafeChoose(c.ai, c.board, c.aiSide)
	if engErr != nil {
		log.Printf("coordinator: AI failed, replayed safe move: %v", engErr)
	}

	if err := c.ApplyAIMove(move); err != nil {
		return board.NoMove, err
	}
	return move, nil
}

// ApplyAIMove places a move already chosen for the AI's side — the second
// half of AIMove, split out so a caller can compute the move off the main
// goroutine (on a Board.Clone()) and apply it here once ready, without
// mutating the live board from the background goroutine.
func (c *Coordinator) ApplyAIMove(move board.Move) error {
	if c.state != AwaitingAI {
		return &board.DomainError{Kind: board.ErrWrongTurn}
	}
	if err := c.board.Place(move.Row, move.Col, c.aiSide); err != nil {
		return err
	}
	c.advanceAfterMove()
	return nil
}

func (c *Coordinator) advanceAfterMove() {
	if _, ok := c.board.Winner(); ok || c.board.IsFull() {
		c.state = GameOver
		c.recordResult()
		return
	}
	if c.board.SideToMove() == c.aiSide {
		c.state = AwaitingAI
	} else {
		c.state = AwaitingHuman
	}
}

func (c *Coordinator) recordResult() {
	if c.store == nil {
		return
	}
	result := storage.GameResult{
		Engine:   c.aiEngine,
		Duration: time.Since(c.gameStart),
	}
	if winner, ok := c.board.Winner(); ok {
		result.Won = winner == c.humanSide()
	} else {
		result.Draw = true
	}
	if err := c.store.RecordGameResult(result); err != nil {
		log.Printf("coordinator: failed to record game result: %v", err)
	}
}

// Undo pops one move if the AI has not replied yet (undoing the human's move
// already hands the turn back), or two (the AI's reply and the human's move
// before it) if the AI has already answered — always landing back on
// AwaitingHuman.
func (c *Coordinator) Undo() error {
	if !c.board.HasUndo() {
		return &board.DomainError{Kind: board.ErrEmpty}
	}

	if _, _, err := c.board.Undo(); err != nil {
		return err
	}
	if c.board.SideToMove() != c.humanSide() && c.board.HasUndo() {
		if _, _, err := c.board.Undo(); err != nil {
			return err
		}
	}

	c.state = AwaitingHuman
	return nil
}

// Redo re-applies one undone human move, plus the AI's reply after it if one
// was undone alongside it and the board still has it queued — the mirror
// image of Undo's pairing logic, always landing back on whichever state
// SideToMove implies.
func (c *Coordinator) Redo() error {
	if !c.board.HasRedo() {
		return &board.DomainError{Kind: board.ErrEmpty}
	}

	if _, _, err := c.board.Redo(); err != nil {
		return err
	}
	if c.board.HasRedo() && c.board.SideToMove() == c.aiSide {
		if _, _, err := c.board.Redo(); err != nil {
			return err
		}
	}

	c.advanceAfterMove()
	return nil
}

// Restart clears the board and resets the state machine, starting the
// game's clock over.
func (c *Coordinator) Restart() {
	c.board.Clear()
	c.gameStart = time.Now()
	c.state = AwaitingHuman
	if c.aiSide == board.SideBlack {
		c.state = AwaitingAI
	}
}
