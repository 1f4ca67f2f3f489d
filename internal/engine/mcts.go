package engine

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/pattern"
)

// MCTSConfig holds the tunables named in the external-interface option
// table (mcts.iterations, mcts.time_budget_s, mcts.workers, mcts.c_puct,
// plus the two progressive-widening knobs the design pins as implementation
// detail rather than a surfaced option, but which still need a default).
type MCTSConfig struct {
	TotalIterations             int
	MaxTimeSeconds              float64
	CPUCT                       float64
	NumWorkers                  int
	MaxSimulationDepth          int
	MinVisitsForExpansion       int64
	ProgressiveWideningExponent float64

	// Seed overrides the worker RNG seed base (worker PID + wall-clock, per
	// the design notes). Zero means "derive it from time.Now()"; tests pin
	// it to get reproducible single-worker runs.
	Seed int64
}

// DefaultMCTSConfig returns sane defaults for interactive play.
func DefaultMCTSConfig() MCTSConfig {
	return MCTSConfig{
		TotalIterations:             4000,
		MaxTimeSeconds:              5.0,
		CPUCT:                       1.4,
		NumWorkers:                  4,
		MaxSimulationDepth:          30,
		MinVisitsForExpansion:       1,
		ProgressiveWideningExponent: 0.5,
	}
}

// openingMoveLimit: at or below this many stones on the board, MCTS skips
// the tree search entirely and plays the opening rule.
const openingMoveLimit = 6

// playoutTopK and playoutCandidateCap bound the playout policy's randomness
// and per-step candidate scan, per the design's "K≈3" / "≈15 per step".
const playoutTopK = 3
const playoutCandidateCap = 15

// MCTS is the root-parallel Monte Carlo Tree Search engine: num_workers
// independent arenas searched concurrently, merged once at the root.
// Grounded on the teacher's Lazy-SMP worker shape (goroutines + WaitGroup +
// a buffered result channel), generalized to independent per-worker trees
// since root-parallel MCTS shares no transposition table.
type MCTS struct {
	Config MCTSConfig

	// stopFlag is the cooperative cancel flag every worker polls once per
	// iteration, mirroring the teacher's Searcher.stopFlag/Stop() pairing.
	// It is independent of the deadline: Stop can abort a search before its
	// time budget or iteration count is reached.
	stopFlag atomic.Bool
}

// NewMCTS returns an MCTS engine with the given config, filling in any
// zero-valued fields from DefaultMCTSConfig.
func NewMCTS(cfg MCTSConfig) *MCTS {
	defaults := DefaultMCTSConfig()
	if cfg.TotalIterations <= 0 {
		cfg.TotalIterations = defaults.TotalIterations
	}
	if cfg.MaxTimeSeconds <= 0 {
		cfg.MaxTimeSeconds = defaults.MaxTimeSeconds
	}
	if cfg.CPUCT <= 0 {
		cfg.CPUCT = defaults.CPUCT
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = defaults.NumWorkers
	}
	if cfg.MaxSimulationDepth <= 0 {
		cfg.MaxSimulationDepth = defaults.MaxSimulationDepth
	}
	if cfg.MinVisitsForExpansion <= 0 {
		cfg.MinVisitsForExpansion = defaults.MinVisitsForExpansion
	}
	if cfg.ProgressiveWideningExponent <= 0 {
		cfg.ProgressiveWideningExponent = defaults.ProgressiveWideningExponent
	}
	return &MCTS{Config: cfg}
}

// Stop signals every in-flight worker to abort its search at the next
// iteration boundary, independent of the deadline. Safe to call from another
// goroutine (e.g. a UI thread handling quit/restart mid-think).
func (e *MCTS) Stop() {
	e.stopFlag.Store(true)
}

// moveStat is one candidate's merged statistics, translated into the root
// side's win-rate terms so workers' results can be summed directly.
type moveStat struct {
	visits int64
	winSum float64
}

// Choose implements GomokuAI.
func (e *MCTS) Choose(b *board.Board, side board.Side) board.Move {
	if win, ok := findImmediateWin(b, side); ok {
		return win
	}
	if block, ok := findImmediateWin(b, side.Opponent()); ok {
		return block
	}
	if b.MoveCount() <= openingMoveLimit {
		return e.openingMove(b, side)
	}

	e.stopFlag.Store(false)

	deadline := time.Now().Add(time.Duration(e.Config.MaxTimeSeconds * float64(time.Second)))
	perWorker := e.Config.TotalIterations / e.Config.NumWorkers
	if perWorker < 1 {
		perWorker = 1
	}

	resultCh := make(chan map[board.Move]moveStat, e.Config.NumWorkers)
	var wg sync.WaitGroup
	baseSeed := e.Config.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	for w := 0; w < e.Config.NumWorkers; w++ {
		wg.Add(1)
		go func(workerIdx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(baseSeed + int64(workerIdx)))
			work := b.Clone()
			arena := newArena(side)
			ensureExpanded(arena.root(), work)
			runIterations(arena, work, perWorker, deadline, &e.stopFlag, e.Config, rng)
			resultCh <- collectRootStats(arena, side)
		}(w)
	}
	wg.Wait()
	close(resultCh)

	merged := make(map[board.Move]moveStat)
	for stats := range resultCh {
		for mv, st := range stats {
			m := merged[mv]
			m.visits += st.visits
			m.winSum += st.winSum
			merged[mv] = m
		}
	}

	var totalVisits int64
	for _, st := range merged {
		totalVisits += st.visits
	}
	if totalVisits == 0 {
		panic(&EngineBudgetExhausted{})
	}

	return selectFinalMove(b, side, merged)
}

// openingMove plays the centre, or the highest-scored empty neighbour of
// the centre if it's already taken.
func (e *MCTS) openingMove(b *board.Board, side board.Side) board.Move {
	if b.IsEmpty(boardCentre, boardCentre) {
		return board.Move{Row: boardCentre, Col: boardCentre}
	}

	var best board.Move
	haveBest := false
	var bestScore int64
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := boardCentre+dr, boardCentre+dc
			if !b.IsEmpty(r, c) {
				continue
			}
			score := pattern.EvaluateMove(b, r, c, side)
			m := board.Move{Row: r, Col: c}
			if !haveBest || score > bestScore || (score == bestScore && isEarlier(m, best)) {
				haveBest = true
				bestScore = score
				best = m
			}
		}
	}
	if haveBest {
		return best
	}
	candidates := candidateMoves(b, neighbourRadius)
	if len(candidates) > 0 {
		return candidates[0]
	}
	return board.Move{Row: boardCentre, Col: boardCentre}
}

// runIterations drives one worker's search loop against its own arena and
// working board, undoing every move it places before returning. It checks
// the deadline and polls stopFlag once per iteration, so a caller can abort
// the search early regardless of how much time or budget remains.
func runIterations(arena *mctsArena, work *board.Board, iterations int, deadline time.Time, stopFlag *atomic.Bool, cfg MCTSConfig, rng *rand.Rand) {
	for i := 0; i < iterations; i++ {
		if time.Now().After(deadline) {
			return
		}
		if stopFlag.Load() {
			return
		}
		leaf, depth := selectAndExpand(arena, work, cfg)
		rewardBlack := simulate(work, arena.node(leaf).sideToMove, cfg, rng)
		backpropagate(arena, leaf, rewardBlack)
		for j := 0; j < depth; j++ {
			work.Undo()
		}
	}
}

// selectAndExpand descends from the root, placing moves onto work as it
// goes, until it reaches a node that should be simulated from: either a
// freshly expanded child, or an existing node with no candidates left to
// try and no children to descend into. Returns the leaf's arena index and
// how many moves were placed onto work (for the caller's undo count).
func selectAndExpand(arena *mctsArena, work *board.Board, cfg MCTSConfig) (int32, int) {
	idx := int32(0)
	depth := 0

	for {
		node := arena.node(idx)
		ensureExpanded(node, work)

		if _, ok := work.Winner(); ok {
			return idx, depth
		}

		if canExpand(node, cfg) {
			mv := node.untried[0]
			node.untried = node.untried[1:]
			side := node.sideToMove
			if err := work.Place(mv.Row, mv.Col, side); err != nil {
				continue
			}
			depth++
			childIdx := arena.addChild(idx, mv, side.Opponent())
			return childIdx, depth
		}

		if len(node.children) == 0 {
			return idx, depth
		}

		best := selectBestChild(arena, idx, cfg.CPUCT)
		childMove := arena.node(best).move
		if err := work.Place(childMove.Row, childMove.Col, node.sideToMove); err != nil {
			return idx, depth
		}
		depth++
		idx = best
	}
}

func ensureExpanded(node *mctsNode, work *board.Board) {
	if node.expanded {
		return
	}
	node.expanded = true
	if _, ok := work.Winner(); ok {
		return
	}
	node.untried = orderedCandidates(work, node.sideToMove, neighbourRadius)
}

func canExpand(node *mctsNode, cfg MCTSConfig) bool {
	if len(node.untried) == 0 {
		return false
	}
	if node.visits < cfg.MinVisitsForExpansion {
		return false
	}
	return int64(len(node.children)) < int64(progressiveWideningLimit(node.visits, cfg.ProgressiveWideningExponent))
}

func progressiveWideningLimit(visits int64, exponent float64) int {
	if visits < 0 {
		visits = 0
	}
	limit := int(math.Floor(math.Pow(float64(visits), exponent)))
	if limit < 1 {
		limit = 1
	}
	return limit
}

func selectBestChild(arena *mctsArena, parentIdx int32, cpuct float64) int32 {
	parent := arena.node(parentIdx)
	var best int32 = -1
	bestScore := math.Inf(-1)
	for _, childIdx := range parent.children {
		score := ucb1(arena.node(childIdx), parent.visits, cpuct)
		if score > bestScore {
			bestScore = score
			best = childIdx
		}
	}
	return best
}

func ucb1(node *mctsNode, parentVisits int64, cpuct float64) float64 {
	if node.visits == 0 {
		return math.Inf(1)
	}
	winRate := node.winRate()
	explore := cpuct * math.Sqrt(math.Log(float64(parentVisits))/float64(node.visits))
	variance := 0.0
	if node.visits > 1 {
		v := node.sqWins/float64(node.visits) - winRate*winRate
		if v < 0 {
			v = 0
		}
		variance = 0.1 * math.Sqrt(v/float64(node.visits))
	}
	return winRate + explore + variance
}

// simulate plays a heuristic-guided rollout from work's current position,
// returning the outcome as a value in [0,1] for Black winning — a single
// Black-centric convention, not a per-node one, so backpropagate can derive
// each node's own reward by re-deriving it from that node's side, which is
// exactly the "flip whenever side-to-move differs from the child's side"
// rule the design pins.
func simulate(work *board.Board, sideToMove board.Side, cfg MCTSConfig, rng *rand.Rand) float64 {
	if winner, ok := work.Winner(); ok {
		if winner == board.SideBlack {
			return 1
		}
		return 0
	}

	current := sideToMove
	played := 0
	for played < cfg.MaxSimulationDepth {
		mv, ok := choosePlayoutMove(work, current, rng)
		if !ok {
			break
		}
		if err := work.Place(mv.Row, mv.Col, current); err != nil {
			break
		}
		played++
		if winner, ok := work.Winner(); ok {
			result := 0.0
			if winner == board.SideBlack {
				result = 1
			}
			for i := 0; i < played; i++ {
				work.Undo()
			}
			return result
		}
		current = current.Opponent()
	}

	ownSum, oppSum := sumCandidateScores(work, sideToMove)
	var val float64
	if ownSum+oppSum == 0 {
		val = 0.5
	} else {
		val = float64(ownSum) / float64(ownSum+oppSum)
	}
	noise := rng.Float64()*0.06 - 0.03
	val = clip(0.1, 0.9, val+noise)

	result := val
	if sideToMove == board.SideWhite {
		result = 1 - val
	}
	for i := 0; i < played; i++ {
		work.Undo()
	}
	return result
}

func choosePlayoutMove(work *board.Board, side board.Side, rng *rand.Rand) (board.Move, bool) {
	if win, ok := findImmediateWin(work, side); ok {
		return win, true
	}
	if block, ok := findImmediateWin(work, side.Opponent()); ok {
		return block, true
	}
	candidates := orderedCandidates(work, side, neighbourRadius)
	if len(candidates) == 0 {
		return board.NoMove, false
	}
	if len(candidates) > playoutCandidateCap {
		candidates = candidates[:playoutCandidateCap]
	}
	k := playoutTopK
	if k > len(candidates) {
		k = len(candidates)
	}
	return candidates[rng.Intn(k)], true
}

func sumCandidateScores(work *board.Board, side board.Side) (int64, int64) {
	var own, opp int64
	for _, m := range candidateMoves(work, neighbourRadius) {
		own += pattern.EvaluateMove(work, m.Row, m.Col, side)
		opp += pattern.EvaluateMove(work, m.Row, m.Col, side.Opponent())
	}
	return own, opp
}

func clip(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func backpropagate(arena *mctsArena, leaf int32, rewardBlack float64) {
	idx := leaf
	for idx != -1 {
		node := arena.node(idx)
		nodeReward := rewardBlack
		if node.sideToMove != board.SideBlack {
			nodeReward = 1 - rewardBlack
		}
		node.visits++
		node.wins += nodeReward
		node.sqWins += nodeReward * nodeReward
		idx = node.parent
	}
}

func collectRootStats(arena *mctsArena, rootSide board.Side) map[board.Move]moveStat {
	out := make(map[board.Move]moveStat)
	for _, childIdx := range arena.root().children {
		child := arena.node(childIdx)
		if child.visits == 0 {
			continue
		}
		winRate := winRateFromPerspective(child, rootSide)
		out[child.move] = moveStat{visits: child.visits, winSum: winRate * float64(child.visits)}
	}
	return out
}

func winRateFromPerspective(node *mctsNode, perspective board.Side) float64 {
	wr := node.winRate()
	if node.sideToMove == perspective {
		return wr
	}
	return 1 - wr
}

func selectFinalMove(b *board.Board, side board.Side, merged map[board.Move]moveStat) board.Move {
	staticScores := make(map[board.Move]int64, len(merged))
	var maxStatic int64
	var maxVisits int64
	for mv, st := range merged {
		s := pattern.EvaluateMove(b, mv.Row, mv.Col, side)
		staticScores[mv] = s
		if s > maxStatic {
			maxStatic = s
		}
		if st.visits > maxVisits {
			maxVisits = st.visits
		}
	}

	var best board.Move
	haveBest := false
	bestScore := math.Inf(-1)
	var bestVisits int64

	for mv, st := range merged {
		winRate := 0.0
		if st.visits > 0 {
			winRate = st.winSum / float64(st.visits)
		}
		normStatic := 0.0
		if maxStatic > 0 {
			normStatic = float64(staticScores[mv]) / float64(maxStatic)
		}
		visitConfidence := 0.0
		if maxVisits > 0 {
			visitConfidence = float64(st.visits) / float64(maxVisits)
		}
		score := 0.7*winRate + 0.2*normStatic + 0.1*visitConfidence

		better := !haveBest || score > bestScore
		if !better && score == bestScore {
			if st.visits > bestVisits {
				better = true
			} else if st.visits == bestVisits && isEarlier(mv, best) {
				better = true
			}
		}
		if better {
			haveBest = true
			bestScore = score
			best = mv
			bestVisits = st.visits
		}
	}
	return best
}
