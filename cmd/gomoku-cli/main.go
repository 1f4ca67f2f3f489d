// gomoku-cli is a local, line-oriented REPL for headless Gomoku play and
// benchmarking. It is not a wire protocol — no socket, no structured
// message format — just bufio.Scanner over stdin, the way the teacher's
// cmd/chessplay-uci is a developer harness rather than an exposed service.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/coordinator"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
)

func main() {
	engineFlag := flag.String("engine", "minimax", "AI engine: classical, minimax, or mcts")
	depthFlag := flag.Int("depth", 3, "minimax search depth")
	workersFlag := flag.Int("workers", 4, "MCTS root-parallel worker count")
	iterationsFlag := flag.Int("iterations", 4000, "MCTS total iterations")
	blackFlag := flag.Bool("ai-black", false, "AI plays Black (moves first) instead of White")
	flag.Parse()

	ai, kind := newEngine(*engineFlag, *depthFlag, *workersFlag, *iterationsFlag)

	humanSide := board.SideBlack
	if *blackFlag {
		humanSide = board.SideWhite
	}

	c := coordinator.New(ai, humanSide.Opponent(), kind, nil)

	fmt.Println("gomoku-cli — place r c | undo | redo | ai | print | new | quit")
	if c.State() == coordinator.AwaitingAI {
		playAI(c)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		run(c, strings.TrimSpace(scanner.Text()))
	}
}

func run(c *coordinator.Coordinator, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "place":
		if len(fields) != 3 {
			fmt.Println("usage: place row col")
			return
		}
		row, err1 := strconv.Atoi(fields[1])
		col, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			fmt.Println("row/col must be integers")
			return
		}
		if err := c.HumanPlace(row, col); err != nil {
			fmt.Println("error:", err)
			return
		}
		printBoard(c)
		if c.State() == coordinator.AwaitingAI {
			playAI(c)
		}
	case "ai":
		playAI(c)
	case "undo":
		if err := c.Undo(); err != nil {
			fmt.Println("error:", err)
			return
		}
		printBoard(c)
	case "redo":
		if err := c.Redo(); err != nil {
			fmt.Println("error:", err)
			return
		}
		printBoard(c)
	case "print":
		printBoard(c)
	case "new":
		c.Restart()
		printBoard(c)
		if c.State() == coordinator.AwaitingAI {
			playAI(c)
		}
	case "quit", "exit":
		os.Exit(0)
	default:
		fmt.Println("unknown command:", fields[0])
	}
}

func playAI(c *coordinator.Coordinator) {
	move, err := c.AIMove()
	if err != nil {
		log.Printf("ai move failed: %v", err)
	}
	fmt.Printf("ai played %v\n", move)
	printBoard(c)
}

func printBoard(c *coordinator.Coordinator) {
	fmt.Println(c.Board().String())
	fmt.Println("state:", c.State())
}

func newEngine(name string, depth, workers, iterations int) (engine.GomokuAI, storage.EngineKind) {
	switch name {
	case "classical":
		return engine.NewClassical(), storage.EngineClassical
	case "mcts":
		cfg := engine.DefaultMCTSConfig()
		cfg.NumWorkers = workers
		cfg.TotalIterations = iterations
		return engine.NewMCTS(cfg), storage.EngineMCTS
	case "minimax":
		fallthrough
	default:
		return engine.NewMinimax(depth, 64), storage.EngineMinimax
	}
}
