package session

import (
	"github.com/notnil/chess/opening"

	"minichess/pkg/rules"
)

// theory names the opening line a game follows. It only reports; the
// engine never consults it when choosing a move.
type theory struct {
	book *opening.BookECO
}

func newTheory() *theory {
	return &theory{book: opening.NewBookECO()}
}

// name returns the ECO code and title of the line reached by g, or "" once
// the game has left known theory
func (t *theory) name(g *rules.Game) string {
	moves := g.Moves()
	if len(moves) == 0 {
		return ""
	}
	op := t.book.Find(moves)
	if op == nil {
		return ""
	}
	return op.Code() + " " + op.Title()
}
