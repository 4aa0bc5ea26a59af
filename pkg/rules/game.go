package rules

import (
	"errors"
	"fmt"

	chess "github.com/notnil/chess"

	"minichess/pkg/engine"
)

var (
	// ErrIllegalMove is returned when a move is not legal in the current position
	ErrIllegalMove = errors.New("rules: illegal move")
	// ErrEmptyHistory is returned when Pop is called at the origin position
	ErrEmptyHistory = errors.New("rules: no move to take back")
)

// Game is the authoritative board state backed by notnil/chess. Positions
// are immutable in the library, so pushing keeps every position on a stack
// and popping drops the top one.
type Game struct {
	positions []*chess.Position
	moves     []*chess.Move
}

// NewGame returns a Game at the standard starting position
func NewGame() *Game {
	return &Game{positions: []*chess.Position{chess.NewGame().Position()}}
}

// FromFEN returns a Game at the position described by fen
func FromFEN(fen string) (*Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("rules: parsing fen %q: %w", fen, err)
	}
	return &Game{positions: []*chess.Position{chess.NewGame(opt).Position()}}, nil
}

// Position returns the current position
func (g *Game) Position() *chess.Position {
	return g.positions[len(g.positions)-1]
}

// Turn returns the color to move
func (g *Game) Turn() chess.Color {
	return g.Position().Turn()
}

// FEN returns the current position in Forsyth-Edwards Notation
func (g *Game) FEN() string {
	return g.Position().String()
}

// Draw renders the current board
func (g *Game) Draw() string {
	return g.Position().Board().Draw()
}

// Moves returns the moves played since the origin position
func (g *Game) Moves() []*chess.Move {
	return append([]*chess.Move(nil), g.moves...)
}

// Depth returns the number of moves pushed on top of the origin position
func (g *Game) Depth() int {
	return len(g.moves)
}

// Status returns the library's verdict on the current position
func (g *Game) Status() chess.Method {
	return g.Position().Status()
}

// LegalMoves returns the legal moves of the current position in library order
func (g *Game) LegalMoves() ([]engine.Move, error) {
	valid := g.Position().ValidMoves()
	moves := make([]engine.Move, 0, len(valid))
	for _, mv := range valid {
		moves = append(moves, toMove(mv))
	}
	return moves, nil
}

// Push applies m to the current position
func (g *Game) Push(m engine.Move) error {
	pos := g.Position()
	mv := g.resolve(pos, m)
	if mv == nil {
		return fmt.Errorf("%w: %v in %v", ErrIllegalMove, m, pos)
	}
	g.positions = append(g.positions, pos.Update(mv))
	g.moves = append(g.moves, mv)
	return nil
}

// Pop reverts the most recent Push
func (g *Game) Pop() error {
	if len(g.moves) == 0 {
		return ErrEmptyHistory
	}
	g.positions = g.positions[:len(g.positions)-1]
	g.moves = g.moves[:len(g.moves)-1]
	return nil
}

// Pieces returns every occupied square of the current board
func (g *Game) Pieces() []engine.Placement {
	sqs := g.Position().Board().SquareMap()
	pieces := make([]engine.Placement, 0, len(sqs))
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if p, ok := sqs[sq]; ok && p != chess.NoPiece {
			pieces = append(pieces, engine.Placement{Square: sq, Piece: p})
		}
	}
	return pieces
}

// resolve finds the library move matching m. An exact promotion match wins;
// without a requested promotion a queen is assumed.
func (g *Game) resolve(pos *chess.Position, m engine.Move) *chess.Move {
	var fallback *chess.Move
	for _, mv := range pos.ValidMoves() {
		if mv.S1() != m.From || mv.S2() != m.To {
			continue
		}
		if mv.Promo() == m.Promo {
			return mv
		}
		if m.Promo == chess.NoPieceType && mv.Promo() == chess.Queen {
			fallback = mv
		}
	}
	return fallback
}

func toMove(mv *chess.Move) engine.Move {
	return engine.Move{From: mv.S1(), To: mv.S2(), Promo: mv.Promo()}
}
