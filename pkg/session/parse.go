package session

import (
	"errors"
	"fmt"
	"strings"

	chess "github.com/notnil/chess"

	"minichess/pkg/engine"
)

// ErrBadMove is returned when the input names fewer than two squares
var ErrBadMove = errors.New("session: expected two squares")

// Command is a slash command such as /setDepth 5
type Command struct {
	Name string
	Arg  string
}

var promotionLetters = map[rune]chess.PieceType{
	'q': chess.Queen,
	'r': chess.Rook,
	'b': chess.Bishop,
	'n': chess.Knight,
}

// ParseCommand splits a line starting with a slash into name and argument
func ParseCommand(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Command{}, false
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return Command{}, true
	}
	return Command{Name: fields[0], Arg: strings.Join(fields[1:], "")}, true
}

// ParseMove reads the first two squares of s, in any case and with any
// separators, followed by an optional promotion letter: "e2 e4", "E2E4",
// "e7-e8=q".
func ParseMove(s string) (engine.Move, error) {
	in := []rune(strings.ToLower(s))
	var sqs []chess.Square
	promo := chess.NoPieceType
	for i := 0; i < len(in); i++ {
		if len(sqs) < 2 {
			if i+1 < len(in) && in[i] >= 'a' && in[i] <= 'h' && in[i+1] >= '1' && in[i+1] <= '8' {
				sqs = append(sqs, chess.Square(int(in[i+1]-'1')*8+int(in[i]-'a')))
				i++
			}
			continue
		}
		if pt, ok := promotionLetters[in[i]]; ok {
			promo = pt
			break
		}
	}
	if len(sqs) < 2 {
		return engine.Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	return engine.Move{From: sqs[0], To: sqs[1], Promo: promo}, nil
}
