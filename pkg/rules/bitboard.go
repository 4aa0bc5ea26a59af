package rules

import (
	"fmt"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
	chess "github.com/notnil/chess"

	"minichess/pkg/engine"
)

var promotions = [7]chess.PieceType{
	dragontoothmg.Nothing: chess.NoPieceType,
	dragontoothmg.Pawn:    chess.Pawn,
	dragontoothmg.Knight:  chess.Knight,
	dragontoothmg.Bishop:  chess.Bishop,
	dragontoothmg.Rook:    chess.Rook,
	dragontoothmg.Queen:   chess.Queen,
	dragontoothmg.King:    chess.King,
}

// Bitboard is a board backed by dragontoothmg. Moves are applied in place
// and the returned unapply closures are kept for Pop.
type Bitboard struct {
	board   dragontoothmg.Board
	unapply []func()
}

// BitboardFromFEN returns a Bitboard at the position described by fen.
// The fen is checked by notnil first since dragontoothmg panics on bad input.
func BitboardFromFEN(fen string) (*Bitboard, error) {
	if _, err := chess.FEN(fen); err != nil {
		return nil, fmt.Errorf("rules: parsing fen %q: %w", fen, err)
	}
	return &Bitboard{board: dragontoothmg.ParseFen(fen)}, nil
}

// FEN returns the current position in Forsyth-Edwards Notation
func (b *Bitboard) FEN() string {
	return b.board.ToFen()
}

// Turn returns the color to move
func (b *Bitboard) Turn() chess.Color {
	if b.board.Wtomove {
		return chess.White
	}
	return chess.Black
}

// Depth returns the number of moves pushed on top of the origin position
func (b *Bitboard) Depth() int {
	return len(b.unapply)
}

// LegalMoves returns the legal moves of the current position in generator order
func (b *Bitboard) LegalMoves() ([]engine.Move, error) {
	gen := b.board.GenerateLegalMoves()
	moves := make([]engine.Move, 0, len(gen))
	for _, mv := range gen {
		moves = append(moves, fromDragon(mv))
	}
	return moves, nil
}

// Push applies m to the board
func (b *Bitboard) Push(m engine.Move) error {
	for _, mv := range b.board.GenerateLegalMoves() {
		if fromDragon(mv) == m {
			b.unapply = append(b.unapply, b.board.Apply(mv))
			return nil
		}
	}
	return fmt.Errorf("%w: %v in %v", ErrIllegalMove, m, b.board.ToFen())
}

// Pop reverts the most recent Push
func (b *Bitboard) Pop() error {
	n := len(b.unapply)
	if n == 0 {
		return ErrEmptyHistory
	}
	b.unapply[n-1]()
	b.unapply = b.unapply[:n-1]
	return nil
}

// Pieces returns every occupied square of the board
func (b *Bitboard) Pieces() []engine.Placement {
	pieces := make([]engine.Placement, 0, 32)
	pieces = appendSide(pieces, &b.board.White, chess.White)
	pieces = appendSide(pieces, &b.board.Black, chess.Black)
	return pieces
}

func appendSide(pieces []engine.Placement, bbs *dragontoothmg.Bitboards, clr chess.Color) []engine.Placement {
	sets := [6]struct {
		bb uint64
		pt chess.PieceType
	}{
		{bbs.Pawns, chess.Pawn},
		{bbs.Knights, chess.Knight},
		{bbs.Bishops, chess.Bishop},
		{bbs.Rooks, chess.Rook},
		{bbs.Queens, chess.Queen},
		{bbs.Kings, chess.King},
	}
	for _, set := range sets {
		for bb := set.bb; bb != 0; bb &= bb - 1 {
			sq := chess.Square(bits.TrailingZeros64(bb))
			pieces = append(pieces, engine.Placement{Square: sq, Piece: pieceOf(set.pt, clr)})
		}
	}
	return pieces
}

// indexed by chess.PieceType
var whitePieces = [7]chess.Piece{chess.NoPiece, chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn}
var blackPieces = [7]chess.Piece{chess.NoPiece, chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn}

func pieceOf(pt chess.PieceType, clr chess.Color) chess.Piece {
	if clr == chess.White {
		return whitePieces[pt]
	}
	return blackPieces[pt]
}

func fromDragon(mv dragontoothmg.Move) engine.Move {
	return engine.Move{
		From:  chess.Square(mv.From()),
		To:    chess.Square(mv.To()),
		Promo: promotions[mv.Promote()],
	}
}
