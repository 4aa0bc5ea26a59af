package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/buger/goterm"
	"github.com/rs/zerolog"

	"minichess/pkg/engine"
	"minichess/pkg/session"
)

var (
	depth    = flag.Int("depth", session.DefaultConfig().Depth, "search depth in plies")
	fen      = flag.String("fen", "", "starting position, empty for the standard one")
	side     = flag.String("side", "black", "color played by the engine")
	logLevel = flag.String("log-level", "warn", "zerolog level")
	clearTTY = flag.Bool("clear", false, "clear the terminal before every turn")
)

var reader *bufio.Reader
var game *session.Session

func main() {
	flag.Parse()
	log := newLogger(*logLevel)
	clr, err := session.ParseSide(*side)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -side")
	}
	cfg := session.Config{Depth: *depth, Side: clr, FEN: *fen}
	game, err = session.New(cfg, os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start game")
	}
	// Create STDIN Reader
	reader = bufio.NewReader(os.Stdin)
	// Enter Game Loop
	for Turn() {
	}
}

// Turn lets the side to move take a turn and reports whether play goes on
func Turn() bool {
	if *clearTTY {
		CallClear()
	}
	game.PrintBoard()
	if game.EngineToMove() {
		start := time.Now()
		_, err := game.Reply()
		if errors.Is(err, engine.ErrNoLegalMoves) {
			fmt.Println("No legal move left, game over:", game.Game().Status())
			return false
		}
		if err != nil {
			fmt.Printf("Search failed, error: %v\n", err)
			return false
		}
		fmt.Printf(" | Search completed in %vms\n", time.Since(start).Milliseconds())
		return true
	}
	legal, err := game.Game().LegalMoves()
	if err != nil {
		fmt.Printf("Move generation failed, error: %v\n", err)
		return false
	}
	if len(legal) == 0 {
		fmt.Println("No legal move left, game over:", game.Game().Status())
		return false
	}
	for {
		fmt.Print("Your move: ")
		inp, err := ReadSTDIN()
		if err != nil {
			return false
		}
		if strings.TrimSpace(inp) == "" {
			continue
		}
		act, err := game.Handle(inp)
		if act == session.Exit {
			return false
		}
		switch {
		case errors.Is(err, session.ErrIllegalMove):
			fmt.Println("Illegal Move! Please enter again.")
		case errors.Is(err, engine.ErrNoLegalMoves):
			fmt.Println("No legal move left, game over:", game.Game().Status())
			return false
		case err != nil:
			fmt.Printf("Your input was invalid, error: %v\n", err)
		default:
			return true
		}
	}
}

// ReadSTDIN will read one line from stdin
func ReadSTDIN() (string, error) {
	text, err := reader.ReadString('\n')
	if err == io.EOF && text != "" {
		return text, nil
	}
	return text, err
}

// CallClear clears the terminal
func CallClear() {
	goterm.Clear()
	goterm.MoveCursor(1, 1)
	goterm.Flush()
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}
