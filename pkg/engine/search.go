package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoLegalMoves is returned by Search when the side to move has no move
	ErrNoLegalMoves = errors.New("engine: no legal moves")
	// ErrInvalidDepth is returned for depths the search cannot honour
	ErrInvalidDepth = errors.New("engine: invalid search depth")
)

// Engine is the Minimax Engine. It searches the position held by its Board,
// mutating it only through matched Push/Pop pairs.
type Engine struct {
	Board     Board
	Evaluator Evaluator
	last      Stats
}

// Result is the outcome of a root search
type Result struct {
	Move  Move
	Score Score
	Stats Stats
}

// NewEngine returns a new Engine searching b
func NewEngine(b Board, ev Evaluator) *Engine {
	return &Engine{Board: b, Evaluator: ev}
}

// Stats returns the counters of the most recent search
func (e *Engine) Stats() Stats {
	return e.last
}

// searchContext carries the per-search state through the recursion
type searchContext struct {
	board Board
	ev    Evaluator
	stats Stats
}

func (e *Engine) newContext() *searchContext {
	return &searchContext{board: e.Board, ev: e.Evaluator}
}

// Search will Search the Tree using Minimax with Alpha/Beta Pruning and
// return the best move for the side to move. Among equally scored moves the
// last one in enumeration order wins.
func (e *Engine) Search(depth int) (Result, error) {
	sc := e.newContext()
	defer func() { e.last = sc.stats }()
	if depth < 1 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	moves, err := sc.board.LegalMoves()
	if err != nil {
		return Result{}, fmt.Errorf("engine: generating root moves: %w", err)
	}
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}
	var best Move
	bestScore := -Infinity
	for _, mv := range moves {
		// every root child gets the full window so the scores compared
		// below are exact
		score, err := sc.descend(mv, func() (Score, error) {
			return sc.minimize(depth-1, -Infinity, Infinity)
		})
		if err != nil {
			return Result{}, err
		}
		if score >= bestScore {
			bestScore = score
			best = mv
		}
	}
	return Result{Move: best, Score: bestScore, Stats: sc.stats}, nil
}

// AlphaBeta searches the current position as the maximizing side and
// returns its score. At depth 0 it is the negated static evaluation.
func (e *Engine) AlphaBeta(depth int, alpha Score, beta Score) (Score, error) {
	sc := e.newContext()
	defer func() { e.last = sc.stats }()
	if depth < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	return sc.maximize(depth, alpha, beta)
}

// Minimax searches the full tree without pruning. It returns the same score
// as AlphaBeta over the full window and exists to check it.
func (e *Engine) Minimax(depth int) (Score, error) {
	sc := e.newContext()
	defer func() { e.last = sc.stats }()
	if depth < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	return sc.exhaustiveMax(depth)
}

func (sc *searchContext) maximize(depth int, alpha Score, beta Score) (Score, error) {
	sc.stats.Visited++
	if depth == 0 {
		return -sc.ev.Evaluate(sc.board), nil
	}
	moves, err := sc.legalMoves(depth)
	if err != nil {
		return 0, err
	}
	best := -Infinity
	for _, mv := range moves {
		v, err := sc.descend(mv, func() (Score, error) {
			return sc.minimize(depth-1, alpha, beta)
		})
		if err != nil {
			return 0, err
		}
		best = maxOf(best, v)
		alpha = maxOf(alpha, v)
		if beta <= alpha {
			sc.stats.Pruned++
			break
		}
	}
	return best, nil
}

func (sc *searchContext) minimize(depth int, alpha Score, beta Score) (Score, error) {
	sc.stats.Visited++
	if depth == 0 {
		return -sc.ev.Evaluate(sc.board), nil
	}
	moves, err := sc.legalMoves(depth)
	if err != nil {
		return 0, err
	}
	best := Infinity
	for _, mv := range moves {
		v, err := sc.descend(mv, func() (Score, error) {
			return sc.maximize(depth-1, alpha, beta)
		})
		if err != nil {
			return 0, err
		}
		best = minOf(best, v)
		beta = minOf(beta, v)
		if beta <= alpha {
			sc.stats.Pruned++
			break
		}
	}
	return best, nil
}

func (sc *searchContext) exhaustiveMax(depth int) (Score, error) {
	sc.stats.Visited++
	if depth == 0 {
		return -sc.ev.Evaluate(sc.board), nil
	}
	moves, err := sc.legalMoves(depth)
	if err != nil {
		return 0, err
	}
	best := -Infinity
	for _, mv := range moves {
		v, err := sc.descend(mv, func() (Score, error) {
			return sc.exhaustiveMin(depth - 1)
		})
		if err != nil {
			return 0, err
		}
		best = maxOf(best, v)
	}
	return best, nil
}

func (sc *searchContext) exhaustiveMin(depth int) (Score, error) {
	sc.stats.Visited++
	if depth == 0 {
		return -sc.ev.Evaluate(sc.board), nil
	}
	moves, err := sc.legalMoves(depth)
	if err != nil {
		return 0, err
	}
	best := Infinity
	for _, mv := range moves {
		v, err := sc.descend(mv, func() (Score, error) {
			return sc.exhaustiveMax(depth - 1)
		})
		if err != nil {
			return 0, err
		}
		best = minOf(best, v)
	}
	return best, nil
}

func (sc *searchContext) legalMoves(depth int) ([]Move, error) {
	moves, err := sc.board.LegalMoves()
	if err != nil {
		return nil, fmt.Errorf("engine: generating moves %v plies from the horizon: %w", depth, err)
	}
	return moves, nil
}

// descend applies mv, runs next and reverts mv on every exit path, panics
// included
func (sc *searchContext) descend(mv Move, next func() (Score, error)) (score Score, err error) {
	if err := sc.board.Push(mv); err != nil {
		return 0, fmt.Errorf("engine: applying %v: %w", mv, err)
	}
	defer func() {
		if perr := sc.board.Pop(); perr != nil && err == nil {
			err = fmt.Errorf("engine: reverting %v: %w", mv, perr)
		}
	}()
	return next()
}
