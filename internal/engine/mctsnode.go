package engine

import "github.com/hailam/gomokuplay/internal/board"

// mctsNode is one node of an arena-allocated MCTS tree. Children are
// referenced by index into the owning arena's slice, never by pointer —
// parents "own" children in tree order; the parent back-reference is an
// index too, so there is no reference cycle for the garbage collector to
// worry about (Design Notes: "use an arena, never an owning handle back to
// the parent").
type mctsNode struct {
	parent int32
	move   board.Move  // the move that produced this node, from the parent
	sideToMove board.Side

	visits int64
	wins   float64
	sqWins float64

	children []int32
	untried  []board.Move
	expanded bool
}

// mctsArena owns every node of one worker's search tree. Index 0 is always
// the root.
type mctsArena struct {
	nodes []mctsNode
}

func newArena(rootSide board.Side) *mctsArena {
	return &mctsArena{nodes: []mctsNode{{parent: -1, sideToMove: rootSide}}}
}

func (a *mctsArena) root() *mctsNode {
	return &a.nodes[0]
}

func (a *mctsArena) node(i int32) *mctsNode {
	return &a.nodes[i]
}

func (a *mctsArena) addChild(parent int32, move board.Move, side board.Side) int32 {
	idx := int32(len(a.nodes))
	a.nodes = append(a.nodes, mctsNode{parent: parent, move: move, sideToMove: side})
	a.nodes[parent].children = append(a.nodes[parent].children, idx)
	return idx
}

func (n *mctsNode) winRate() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.wins / float64(n.visits)
}
