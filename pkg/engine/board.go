package engine

import (
	chess "github.com/notnil/chess"
)

// Move is an origin and a destination square. Promo is carried along for the
// rules engine but plays no part in equality.
type Move struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

// Equal reports whether both moves share origin and destination
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// String returns the move in coordinate notation, e.g. e2e4 or e7e8q
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promo != chess.NoPieceType {
		s += m.Promo.String()
	}
	return s
}

// Placement is one occupied square of a board snapshot
type Placement struct {
	Square chess.Square
	Piece  chess.Piece
}

// Board is the rules engine the search drives. It owns the position; the
// search only mutates it through matched Push/Pop calls.
type Board interface {
	// LegalMoves enumerates the legal moves of the current position in a
	// stable order.
	LegalMoves() ([]Move, error)
	// Push applies a move taken from the latest LegalMoves call.
	Push(m Move) error
	// Pop reverts the most recent Push.
	Pop() error
	// Pieces returns every occupied square.
	Pieces() []Placement
}

// Contains reports whether mv is in moves, using Move.Equal
func Contains(moves []Move, mv Move) bool {
	_, ok := Find(moves, mv)
	return ok
}

// Find returns the element of moves equal to mv
func Find(moves []Move, mv Move) (Move, bool) {
	for _, m := range moves {
		if m.Equal(mv) {
			return m, true
		}
	}
	return Move{}, false
}
