package engine

import (
	chess "github.com/notnil/chess"
)

// Score is a signed material balance
type Score int32

// KingValue is the weight of a king. The largest material total a side can
// reach without kings is 11300 (nine queens after promotions), so a missing
// king always dominates the sum.
const KingValue = Score(100000)

// Infinity is larger than any reachable evaluation, including both king
// sentinels plus all material, and bounds the alpha-beta window
const Infinity = Score(10000000)

var pieceValues = [7]Score{
	chess.NoPieceType: 0,
	chess.King:        KingValue,
	chess.Queen:       1000,
	chess.Rook:        500,
	chess.Bishop:      350,
	chess.Knight:      300,
	chess.Pawn:        100,
}
