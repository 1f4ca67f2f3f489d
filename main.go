// Gomokuplay - a Gomoku game built with Ebitengine, playing against one of
// three interchangeable engines (classical, minimax, mcts).
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
	"github.com/hailam/gomokuplay/internal/ui"
)

func main() {
	engineFlag := flag.String("engine", "minimax", "AI engine: classical, minimax, or mcts")
	depthFlag := flag.Int("depth", 3, "minimax search depth")
	workersFlag := flag.Int("workers", 4, "MCTS root-parallel worker count")
	blackFlag := flag.Bool("ai-black", false, "AI plays Black (moves first) instead of White")
	flag.Parse()

	ai, kind := newEngine(*engineFlag, *depthFlag, *workersFlag)

	humanSide := board.SideBlack
	if *blackFlag {
		humanSide = board.SideWhite
	}

	game := ui.NewGame(ai, humanSide, kind)
	defer game.Close()

	ebiten.SetWindowSize(ui.PanelWidth+600, 640)
	ebiten.SetWindowTitle("Gomokuplay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenFilterEnabled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func newEngine(name string, depth, workers int) (engine.GomokuAI, storage.EngineKind) {
	switch name {
	case "classical":
		return engine.NewClassical(), storage.EngineClassical
	case "mcts":
		cfg := engine.DefaultMCTSConfig()
		cfg.NumWorkers = workers
		return engine.NewMCTS(cfg), storage.EngineMCTS
	case "minimax":
		fallthrough
	default:
		return engine.NewMinimax(depth, 64), storage.EngineMinimax
	}
}
