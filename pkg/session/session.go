package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/buger/goterm"
	"github.com/rs/zerolog"

	"minichess/pkg/engine"
	"minichess/pkg/rules"
)

var (
	// ErrIllegalMove is returned when the human move is not in the legal move list
	ErrIllegalMove    = errors.New("session: illegal move")
	// ErrNotYourTurn is returned for human moves while the engine is to move
	ErrNotYourTurn    = errors.New("session: the engine is to move")
	// ErrNotEngineTurn is returned by Reply while the human is to move
	ErrNotEngineTurn  = errors.New("session: the human is to move")
	// ErrUnknownCommand is returned for slash commands the session does not know
	ErrUnknownCommand = errors.New("session: unknown command")
)

// Action tells the caller what to do after a line was handled
type Action int

const (
	// Continue reading input
	Continue Action = iota
	// Exit the program
	Exit
)

// Session is a game between a human and the engine. It validates and plays
// human moves and answers each one with a searched reply.
type Session struct {
	cfg    Config
	game   *rules.Game
	engine *engine.Engine
	theory *theory
	out    io.Writer
	log    zerolog.Logger
}

// New returns a Session set up from cfg, writing its reports to out
func New(cfg Config, out io.Writer, log zerolog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	game := rules.NewGame()
	if cfg.FEN != "" {
		var err error
		if game, err = rules.FromFEN(cfg.FEN); err != nil {
			return nil, err
		}
	}
	s := &Session{
		cfg:    cfg,
		game:   game,
		engine: engine.NewEngine(game, engine.NewEvaluator(cfg.Side.Other())),
		out:    out,
		log:    log,
	}
	if cfg.FEN == "" {
		s.theory = newTheory()
	}
	return s, nil
}

// Game returns the game being played
func (s *Session) Game() *rules.Game {
	return s.game
}

// Depth returns the current search depth
func (s *Session) Depth() int {
	return s.cfg.Depth
}

// EngineToMove reports whether the engine has the move
func (s *Session) EngineToMove() bool {
	return s.game.Turn() == s.cfg.Side
}

// Stats returns the counters of the last engine search
func (s *Session) Stats() engine.Stats {
	return s.engine.Stats()
}

// Handle processes one line of input: a slash command or a human move.
// A legal move is played and answered by the engine.
func (s *Session) Handle(line string) (Action, error) {
	if cmd, ok := ParseCommand(line); ok {
		return s.command(cmd)
	}
	mv, err := ParseMove(line)
	if err != nil {
		return Continue, err
	}
	if err := s.Play(mv); err != nil {
		return Continue, err
	}
	_, err = s.Reply()
	return Continue, err
}

func (s *Session) command(cmd Command) (Action, error) {
	switch cmd.Name {
	case "setDepth":
		d, err := ParseDepth(cmd.Arg)
		if err != nil {
			return Continue, err
		}
		s.cfg.Depth = d
		s.log.Info().Int("depth", d).Msg("search depth changed")
	case "printBoard":
		s.PrintBoard()
	case "exit":
		return Exit, nil
	default:
		return Continue, fmt.Errorf("%w: /%s", ErrUnknownCommand, cmd.Name)
	}
	return Continue, nil
}

// Play validates a human move against the legal moves and applies it.
// Nothing changes when the move is rejected.
func (s *Session) Play(mv engine.Move) error {
	if s.EngineToMove() {
		return ErrNotYourTurn
	}
	legal, err := s.game.LegalMoves()
	if err != nil {
		return err
	}
	if !engine.Contains(legal, mv) {
		s.log.Debug().Str("move", mv.String()).Msg("rejected illegal move")
		return fmt.Errorf("%w: %v", ErrIllegalMove, mv)
	}
	if err := s.game.Push(mv); err != nil {
		return err
	}
	s.log.Debug().Str("move", mv.String()).Msg("human move")
	return nil
}

// Reply searches the current position, plays the chosen move and reports it
func (s *Session) Reply() (engine.Result, error) {
	if !s.EngineToMove() {
		return engine.Result{}, ErrNotEngineTurn
	}
	start := time.Now()
	res, err := s.engine.Search(s.cfg.Depth)
	if err != nil {
		return res, err
	}
	if err := s.game.Push(res.Move); err != nil {
		return res, err
	}
	s.log.Info().
		Str("move", res.Move.String()).
		Int32("score", int32(res.Score)).
		Int("depth", s.cfg.Depth).
		Uint64("visited", res.Stats.Visited).
		Uint64("pruned", res.Stats.Pruned).
		Dur("took", time.Since(start)).
		Msg("engine move")
	fmt.Fprintf(s.out, " | Positions evaled: %v\n", res.Stats.Visited)
	fmt.Fprintf(s.out, " | Positions pruned: %v\n", res.Stats.Pruned)
	fmt.Fprintf(s.out, " | (%v)\n", goterm.Color(res.Move.String(), goterm.CYAN))
	if name := s.OpeningName(); name != "" {
		fmt.Fprintf(s.out, " | %v\n", name)
	}
	return res, nil
}

// OpeningName returns the opening line the game follows, if any
func (s *Session) OpeningName() string {
	if s.theory == nil {
		return ""
	}
	return s.theory.name(s.game)
}

// PrintBoard writes the current board
func (s *Session) PrintBoard() {
	fmt.Fprintln(s.out, s.game.Draw())
}
