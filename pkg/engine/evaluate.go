package engine

import (
	chess "github.com/notnil/chess"
)

// Evaluator scores a board by material only. Pieces of the Reference color
// count positive, pieces of the other color negative, regardless of whose
// turn it is.
type Evaluator struct {
	Reference chess.Color
}

// NewEvaluator returns an Evaluator scoring from the perspective of clr
func NewEvaluator(clr chess.Color) Evaluator {
	return Evaluator{Reference: clr}
}

// Evaluate returns the signed material balance of the board
func (ev Evaluator) Evaluate(b Board) Score {
	score := Score(0)
	for _, p := range b.Pieces() {
		score += ev.pieceScore(p.Piece)
	}
	return score
}

func (ev Evaluator) pieceScore(p chess.Piece) Score {
	v := PieceValue(p)
	switch p.Color() {
	case ev.Reference:
		return v
	case chess.NoColor:
		return 0
	default:
		return -v
	}
}

// PieceValue returns the unsigned weight of a piece, zero for empty squares
// and unknown kinds
func PieceValue(p chess.Piece) Score {
	t := p.Type()
	if t < 0 || int(t) >= len(pieceValues) {
		return 0
	}
	return pieceValues[t]
}
