package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	chess "github.com/notnil/chess"
)

// MaxDepth bounds the configurable search depth
const MaxDepth = 12

var (
	// ErrBadDepth is returned for depths that are not a number in [1, MaxDepth]
	ErrBadDepth = errors.New("session: bad search depth")
	// ErrBadSide is returned when the engine side is neither white nor black
	ErrBadSide = errors.New("session: bad side")
)

// Config holds the settings of a game against the engine
type Config struct {
	Depth int         // plies searched for every engine move
	Side  chess.Color // color played by the engine
	FEN   string      // starting position, empty for the standard one
}

// DefaultConfig returns the settings of a standard game with the engine
// playing black
func DefaultConfig() Config {
	return Config{Depth: 4, Side: chess.Black}
}

// Validate rejects settings the engine cannot run with
func (c Config) Validate() error {
	if c.Depth < 1 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: %d", ErrBadDepth, c.Depth)
	}
	if c.Side != chess.White && c.Side != chess.Black {
		return fmt.Errorf("%w: %v", ErrBadSide, c.Side)
	}
	return nil
}

// ParseDepth parses a textual search depth
func ParseDepth(s string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDepth, s)
	}
	if d < 1 || d > MaxDepth {
		return 0, fmt.Errorf("%w: %d", ErrBadDepth, d)
	}
	return d, nil
}

// ParseSide parses a color name
func ParseSide(s string) (chess.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return chess.White, nil
	case "b", "black":
		return chess.Black, nil
	}
	return chess.NoColor, fmt.Errorf("%w: %q", ErrBadSide, s)
}
