package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/fplpulse/internal/testsnapshot"
	"github.com/okian/fplpulse/pkg/logger"
)

func main() {
	var (
		addr       = flag.String("addr", "127.0.0.1:9090", "Listen address")
		players    = flag.Int("players", testsnapshot.DefaultPlayers, "Number of generated players")
		teams      = flag.Int("teams", testsnapshot.DefaultTeams, "Number of generated teams")
		seed       = flag.Int64("seed", testsnapshot.DefaultSeed, "Generator seed")
		outputFile = flag.String("output", "", "Also write the document, pretty printed, to this file")
		verbose    = flag.Bool("verbose", false, "Log every request")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testsnapshot.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &testsnapshot.Config{
		Addr:       *addr,
		Players:    *players,
		Teams:      *teams,
		Seed:       *seed,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	}
	if err := testsnapshot.Run(ctx, cfg); err != nil {
		_, _ = os.Stderr.WriteString("snapshot server failed: " + err.Error() + "\n")
		stop()
		os.Exit(1) //nolint:gocritic // stop already called
	}
}
