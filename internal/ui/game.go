package ui

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/coordinator"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
)

// UI layout constants, in logical (unscaled) pixels.
const (
	cellSize   = 40
	margin     = 30
	PanelWidth = 280
)

// UIScale is the global HiDPI scale factor, set by Game.Layout.
var UIScale float64 = 1.0

// Game is a thin Ebitengine front-end over a coordinator.Coordinator. It
// owns no decision logic — every placement goes through HumanPlace or
// ApplyAIMove and every highlight it draws comes straight off the live Board. Grounded
// on the teacher's Game (internal/ui/game.go): same aiMove-channel +
// aiThinking-flag split between a background search goroutine and the
// Update-loop goroutine that applies the result, same Layout/Draw/Update
// shape, adapted from chess's drag-and-drop piece model to a
// click-to-place stone model.
type Game struct {
	coordinator *coordinator.Coordinator
	renderer    *Renderer
	input       *InputHandler
	audioMgr    *AudioManager

	store    *storage.Storage
	aiEngine storage.EngineKind

	aiThinking bool
	aiMoveCh   chan board.Move

	status string
	scale  float64
}

// NewGame wires a Coordinator around ai and starts a game with humanSide
// playing against it. aiEngineKind labels ai for storage attribution
// (spec.md's engine-selection option, surfaced here instead of via flags
// the way the teacher's SettingsModal surfaces difficulty).
func NewGame(ai engine.GomokuAI, humanSide board.Side, aiEngineKind storage.EngineKind) *Game {
	store, err := storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
		store = nil
	}

	g := &Game{
		coordinator: coordinator.New(ai, humanSide.Opponent(), aiEngineKind, store),
		renderer:    NewRenderer(cellSize, margin),
		input:       NewInputHandler(),
		audioMgr:    NewAudioManager(),
		store:       store,
		aiEngine:    aiEngineKind,
		aiMoveCh:    make(chan board.Move, 1),
		status:      "Your move",
	}

	if g.coordinator.State() == coordinator.AwaitingAI {
		g.startAIThinking()
	}

	return g
}

// Update handles one tick of input, AI polling, and state transitions.
func (g *Game) Update() error {
	g.input.Update()

	g.handleBoardInput()
	g.checkAIMove()

	return nil
}

// handleBoardInput processes clicks on the grid when it's the human's turn.
func (g *Game) handleBoardInput() {
	if IsKeyJustPressed(ebiten.KeyR) {
		g.Restart()
		return
	}
	if IsKeyJustPressed(ebiten.KeyU) {
		g.undo()
	}
	if g.coordinator.State() != coordinator.AwaitingHuman {
		return
	}
	if !g.input.IsLeftJustPressed() {
		return
	}

	mx, my := g.input.MousePosition()
	move := g.renderer.ScreenToIntersection(mx, my)
	if !move.IsValid() {
		return
	}

	if err := g.coordinator.HumanPlace(move.Row, move.Col); err != nil {
		g.audioMgr.Play(SoundInvalid)
		g.status = err.Error()
		return
	}

	g.audioMgr.Play(SoundPlace)
	g.afterMove()
}

// undo steps the game back to the human's last decision point, cancelling
// an in-flight AI search rather than refusing the undo outright.
func (g *Game) undo() {
	g.stopThinking()
	g.aiThinking = false
	select {
	case <-g.aiMoveCh:
	default:
	}
	if err := g.coordinator.Undo(); err != nil {
		return
	}
	g.status = "Your move"
}

// afterMove updates status text and kicks off the AI after a human move,
// or reports the final result when the game just ended.
func (g *Game) afterMove() {
	if g.coordinator.State() == coordinator.GameOver {
		g.reportGameOver()
		return
	}
	g.status = "AI thinking..."
	g.startAIThinking()
}

// reportGameOver sets the status line and plays the end-of-game sound.
func (g *Game) reportGameOver() {
	g.audioMgr.Play(SoundGameEnd)
	b := g.coordinator.Board()
	if winner, ok := b.Winner(); ok {
		if winner == g.coordinator.AISide() {
			g.status = "AI wins"
		} else {
			g.status = "You win!"
		}
		return
	}
	g.status = "Draw — board full"
}

// startAIThinking computes the AI's move on a cloned board in a
// background goroutine, then hands the result to Update via aiMoveCh —
// the live Board is never touched off the main goroutine, matching the
// teacher's Game.startAIThinking/checkAIMove split.
func (g *Game) startAIThinking() {
	if g.coordinator.State() != coordinator.AwaitingAI {
		return
	}
	g.aiThinking = true
	g.status = "AI thinking..."

	clone := g.coordinator.Board().Clone()
	ai := g.coordinator.Engine()
	side := g.coordinator.AISide()

	go func() {
		move, engErr := engine.SafeChoose(ai, clone, side)
		if engErr != nil {
			log.Printf("ui: AI search failed, falling back: %v", engErr)
		}
		g.aiMoveCh <- move
	}()
}

// checkAIMove applies a finished AI search, if one is ready.
func (g *Game) checkAIMove() {
	if !g.aiThinking {
		return
	}
	select {
	case move := <-g.aiMoveCh:
		g.aiThinking = false
		if err := g.coordinator.ApplyAIMove(move); err != nil {
			log.Printf("ui: ApplyAIMove failed: %v", err)
			return
		}
		g.audioMgr.Play(SoundPlace)
		if g.coordinator.State() == coordinator.GameOver {
			g.reportGameOver()
		} else {
			g.status = "Your move"
		}
	default:
	}
}

// stoppable is satisfied by engines that support cooperative cancellation
// (currently only MCTS); engines that don't just run to completion on the
// clone and their result is discarded.
type stoppable interface {
	Stop()
}

// stopThinking cancels an in-flight search, if the engine supports it,
// rather than letting an abandoned clone-board search run to completion.
func (g *Game) stopThinking() {
	if !g.aiThinking {
		return
	}
	if s, ok := g.coordinator.Engine().(stoppable); ok {
		s.Stop()
	}
}

// Restart clears the board and, if the AI plays Black, starts it thinking.
func (g *Game) Restart() {
	g.stopThinking()
	g.coordinator.Restart()
	g.aiThinking = false
	select {
	case <-g.aiMoveCh:
	default:
	}
	g.status = "Your move"
	if g.coordinator.State() == coordinator.AwaitingAI {
		g.startAIThinking()
	}
}

// Draw renders the board, stones, highlights, and status panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)
	g.renderer.DrawBoard(screen)

	b := g.coordinator.Board()
	lastMove, _ := b.LastMove()
	g.renderer.DrawStones(screen, b, lastMove)

	if _, ok := b.Winner(); ok {
		g.renderer.DrawWinningLine(screen, b.WinningLine())
	} else if g.coordinator.State() == coordinator.AwaitingHuman && !g.aiThinking {
		mx, my := g.input.MousePosition()
		g.renderer.DrawHover(screen, b, g.renderer.ScreenToIntersection(mx, my))
	}

	g.drawPanel(screen)
}

// drawPanel renders the status text and move count to the right of the
// board, in the teacher's Panel.drawText style (no widgets/buttons —
// input is keyboard-only: R to restart, U to undo).
func (g *Game) drawPanel(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	x := g.renderer.BoardPixels() + 20
	theme := g.renderer.Theme()

	g.drawText(screen, face, fmt.Sprintf("Gomoku vs %s", g.aiEngine), x, 30, theme.TextColor)
	g.drawText(screen, face, g.status, x, 60, theme.TextColor)
	g.drawText(screen, face, fmt.Sprintf("Moves: %d", g.coordinator.Board().MoveCount()), x, 90, theme.TextColor)
	g.drawText(screen, face, "[U] undo   [R] restart", x, 130, theme.TextColor)
}

func (g *Game) drawText(screen *ebiten.Image, face *text.GoTextFace, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)*g.scale, float64(y)*g.scale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Layout returns the game's screen dimensions, scaled for HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	UIScale = g.scale

	w := g.renderer.BoardPixels() + PanelWidth
	h := g.renderer.BoardPixels()
	return int(float64(w) * g.scale), int(float64(h) * g.scale)
}

// Close cancels any in-flight search and releases storage resources.
func (g *Game) Close() {
	g.stopThinking()
	if g.store != nil {
		g.store.Close()
	}
}
