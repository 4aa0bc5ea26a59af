package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"minichess/pkg/api"
)

var addr = flag.String("addr", ":8080", "listen address")

func main() {
	flag.Parse()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.NewRouter(log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", *addr).Msg("search service listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
