package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	chess "github.com/notnil/chess"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"minichess/pkg/engine"
	"minichess/pkg/rules"
)

var cpuprofile = flag.String("cpuprofile", "", "write a cpu profile to this directory")
var depth = flag.Int("depth", 3, "search depth in plies")
var workers = flag.Int("workers", runtime.NumCPU(), "concurrent searches")

// suite is searched once per backend
var suite = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
	"5B2/PP1k2P1/p3pr1p/7p/1p2p3/8/3K2Rn/4r3 w - - 0 1",
	"4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
}

// board is what both backends offer
type board interface {
	engine.Board
	Turn() chess.Color
}

var backends = map[string]func(fen string) (board, error){
	"notnil":      openGame,
	"dragontooth": openBitboard,
}

func openGame(fen string) (board, error) {
	return rules.FromFEN(fen)
}

func openBitboard(fen string) (board, error) {
	return rules.BitboardFromFEN(fen)
}

func main() {
	flag.Parse()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	// Setup Profiling
	if *cpuprofile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuprofile), profile.Quiet).Stop()
	}
	fmt.Println("----BEGIN MINICHESS BENCHMARK----")
	results := NewResults()
	start := time.Now()
	g := new(errgroup.Group)
	g.SetLimit(*workers)
	for _, fen := range suite {
		for name, open := range backends {
			fen, name, open := fen, name, open
			g.Go(func() error {
				return searchPosition(results, fen, name, open)
			})
		}
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}
	total := time.Since(start)
	var visited uint64
	for _, row := range results.Rows() {
		visited += row.Result.Stats.Visited
		fmt.Printf("[%-11s] %-70s %-6v score:%-6v %v %vms\n", row.Backend, row.FEN, row.Result.Move, row.Result.Score, row.Result.Stats, row.Took.Milliseconds())
	}
	fmt.Printf("%v positions visited in %vms (%v per second)\n", visited, total.Milliseconds(), int(float64(visited)/total.Seconds()))
	if bad := results.Mismatches(); len(bad) > 0 {
		log.Error().Strs("fens", bad).Msg("backends disagree")
	}
	fmt.Println("----END  MINICHESS  BENCHMARK----")
}

// searchPosition searches fen on one backend and stores the outcome
func searchPosition(results *Results, fen string, name string, open func(string) (board, error)) error {
	b, err := open(fen)
	if err != nil {
		return err
	}
	eng := engine.NewEngine(b, engine.NewEvaluator(b.Turn().Other()))
	start := time.Now()
	res, err := eng.Search(*depth)
	if err != nil {
		return fmt.Errorf("%s on %s: %w", name, fen, err)
	}
	results.Add(Row{FEN: fen, Backend: name, Result: res, Took: time.Since(start)})
	return nil
}
