package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	chess "github.com/notnil/chess"
	"github.com/rs/zerolog"

	"minichess/pkg/engine"
)

const stalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"

func newTestSession(t *testing.T, cfg Config) (*Session, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	s, err := New(cfg, out, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s, out
}

func TestParseMove(t *testing.T) {
	cases := map[string]engine.Move{
		"e2e4":      {From: chess.E2, To: chess.E4},
		"E2 E4":     {From: chess.E2, To: chess.E4},
		" g1-f3\n":  {From: chess.G1, To: chess.F3},
		"e7e8q":     {From: chess.E7, To: chess.E8, Promo: chess.Queen},
		"a7 a8 = N": {From: chess.A7, To: chess.A8, Promo: chess.Knight},
	}
	for in, want := range cases {
		got, err := ParseMove(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
	for _, in := range []string{"", "e2", "hello", "z9z9"} {
		if _, err := ParseMove(in); !errors.Is(err, ErrBadMove) {
			t.Fatalf("%q: expected ErrBadMove, got %v", in, err)
		}
	}
}

func TestParseCommand(t *testing.T) {
	cmd, ok := ParseCommand("  /setDepth 6 ")
	if !ok || cmd.Name != "setDepth" || cmd.Arg != "6" {
		t.Fatalf("unexpected command %+v (%v)", cmd, ok)
	}
	if _, ok := ParseCommand("e2e4"); ok {
		t.Fatalf("a move parsed as a command")
	}
}

func TestConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := []Config{{Depth: 0, Side: chess.Black}, {Depth: MaxDepth + 1, Side: chess.White}}
	for _, cfg := range bad {
		if err := cfg.Validate(); !errors.Is(err, ErrBadDepth) {
			t.Fatalf("%+v: expected ErrBadDepth, got %v", cfg, err)
		}
	}
	if err := (Config{Depth: 3}).Validate(); !errors.Is(err, ErrBadSide) {
		t.Fatalf("expected ErrBadSide, got %v", err)
	}
	for _, in := range []string{"x", "-2", "0", "3.5", ""} {
		if _, err := ParseDepth(in); !errors.Is(err, ErrBadDepth) {
			t.Fatalf("%q: expected ErrBadDepth, got %v", in, err)
		}
	}
	if d, err := ParseDepth(" 5 "); err != nil || d != 5 {
		t.Fatalf("expected 5, got %v (%v)", d, err)
	}
	if c, err := ParseSide("White"); err != nil || c != chess.White {
		t.Fatalf("expected white, got %v (%v)", c, err)
	}
	if _, err := ParseSide("red"); !errors.Is(err, ErrBadSide) {
		t.Fatalf("expected ErrBadSide, got %v", err)
	}
}

func TestHandleIllegalMoveLeavesGameAlone(t *testing.T) {
	s, out := newTestSession(t, Config{Depth: 2, Side: chess.Black})
	before := s.Game().FEN()
	_, err := s.Handle("e2e5")
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if s.Game().FEN() != before {
		t.Fatalf("illegal move changed the game: %s", s.Game().FEN())
	}
	if s.Stats().Visited != 0 || out.Len() != 0 {
		t.Fatalf("illegal move triggered a search")
	}
}

func TestHandleMoveIsAnswered(t *testing.T) {
	s, out := newTestSession(t, Config{Depth: 2, Side: chess.Black})
	act, err := s.Handle("e2 e4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if act != Continue {
		t.Fatalf("expected Continue, got %v", act)
	}
	if s.Game().Depth() != 2 {
		t.Fatalf("expected the human move and a reply, got %d moves", s.Game().Depth())
	}
	if s.Game().Turn() != chess.White {
		t.Fatalf("expected white to move again")
	}
	if !strings.Contains(out.String(), "Positions evaled") || !strings.Contains(out.String(), "Positions pruned") {
		t.Fatalf("missing search report in %q", out.String())
	}
	if s.Stats().Visited == 0 {
		t.Fatalf("no nodes counted")
	}
}

func TestHandleCommands(t *testing.T) {
	s, out := newTestSession(t, Config{Depth: 2, Side: chess.Black})
	if _, err := s.Handle("/setDepth abc"); !errors.Is(err, ErrBadDepth) {
		t.Fatalf("expected ErrBadDepth, got %v", err)
	}
	if s.Depth() != 2 {
		t.Fatalf("bad depth was applied")
	}
	if _, err := s.Handle("/setDepth 3"); err != nil || s.Depth() != 3 {
		t.Fatalf("depth not changed: %v (%v)", s.Depth(), err)
	}
	if _, err := s.Handle("/printBoard"); err != nil || out.Len() == 0 {
		t.Fatalf("board not printed: %v", err)
	}
	if _, err := s.Handle("/nope"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if act, err := s.Handle("/exit"); err != nil || act != Exit {
		t.Fatalf("expected Exit, got %v (%v)", act, err)
	}
}

func TestEngineMovesFirst(t *testing.T) {
	s, _ := newTestSession(t, Config{Depth: 1, Side: chess.White})
	if !s.EngineToMove() {
		t.Fatalf("expected the engine to move first")
	}
	if err := s.Play(engine.Move{From: chess.E2, To: chess.E4}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	res, err := s.Reply()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Game().Depth() != 1 || s.EngineToMove() {
		t.Fatalf("engine move %v not played", res.Move)
	}
}

func TestReplyRefusesHumanTurn(t *testing.T) {
	const fen = "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1"
	s, _ := newTestSession(t, Config{Depth: 2, Side: chess.Black, FEN: fen})
	if _, err := s.Reply(); !errors.Is(err, ErrNotEngineTurn) {
		t.Fatalf("expected ErrNotEngineTurn, got %v", err)
	}
	if s.Game().FEN() != fen || s.Game().Depth() != 0 {
		t.Fatalf("game changed: %s", s.Game().FEN())
	}
	if s.Game().Turn() != chess.White {
		t.Fatalf("turn order swapped")
	}
}

func TestReplyWithoutLegalMoves(t *testing.T) {
	s, _ := newTestSession(t, Config{Depth: 2, Side: chess.Black, FEN: stalemateFEN})
	if _, err := s.Reply(); !errors.Is(err, engine.ErrNoLegalMoves) {
		t.Fatalf("expected ErrNoLegalMoves, got %v", err)
	}
	if s.Game().FEN() != stalemateFEN {
		t.Fatalf("game changed: %s", s.Game().FEN())
	}
}

func TestOpeningName(t *testing.T) {
	s, _ := newTestSession(t, Config{Depth: 1, Side: chess.Black})
	if s.OpeningName() != "" {
		t.Fatalf("named an opening before any move")
	}
	for _, mv := range []engine.Move{{From: chess.E2, To: chess.E4}, {From: chess.E7, To: chess.E5}} {
		if err := s.Game().Push(mv); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if s.OpeningName() == "" {
		t.Fatalf("expected 1. e4 e5 to be named")
	}
}
