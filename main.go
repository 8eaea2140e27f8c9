package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"othello/cli"
	"othello/communication/server"
	"othello/experiments"
	"othello/searcher/agent"
	"othello/storage"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	args := os.Args[1:]
	command := "play"
	if len(args) > 0 && (args[0] == "play" || args[0] == "experiment" || args[0] == "serve") {
		command, args = args[0], args[1:]
	}

	switch command {
	case "experiment":
		runExperiment(args)
	case "serve":
		runAgentServer(args)
	default:
		runPlay(args)
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Msgf("unknown log level %q, using info", level)
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	db := fs.String("db", "othello.db", "SQLite database for saved games, settings and statistics")
	logLevel := fs.String("log-level", "warn", "Log level")
	exportAddr := fs.String("export-addr", "", "Serve the current game record over HTTP on this address")
	historyFile := fs.String("history", "", "File keeping the command history")
	fs.Parse(args)

	setupLogging(*logLevel)

	store, err := storage.Open(*db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	rl, err := cli.NewReadline(*historyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open terminal")
	}
	defer rl.Close()

	var options []cli.Option
	if *exportAddr != "" {
		sc := server.NewServerCommunicator()
		addr, err := sc.Start(*exportAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start export server")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			sc.Shutdown(ctx)
		}()
		fmt.Fprintf(rl.Stdout(), "Game record at http://%s/record\n", addr)
		options = append(options, cli.WithPublisher(sc))
	}

	session := cli.NewSession(rl.Stdout(), store, options...)
	if err := cli.Shell(session, rl); err != nil {
		log.Error().Err(err).Msg("shell stopped")
	}
}

func runExperiment(args []string) {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML experiment configuration, the built-in difficulty ladder when empty")
	logLevel := fs.String("log-level", "info", "Log level")
	fs.Parse(args)

	setupLogging(*logLevel)

	cfg := experiments.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = experiments.LoadConfig(*configPath); err != nil {
			log.Fatal().Err(err).Msg("invalid experiment configuration")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := experiments.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	fmt.Printf("Results written to %s\n", summary.Dir)
	for _, m := range summary.Matchups {
		fmt.Printf("agent %d vs agent %d: %d-%d, %d draws\n", m.Agent1, m.Agent2, m.Agent1Wins, m.Agent2Wins, m.Draws)
	}
}

func runAgentServer(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8081", "Address to serve move searches on")
	logLevel := fs.String("log-level", "info", "Log level")
	fs.Parse(args)

	setupLogging(*logLevel)
	log.Fatal().Err(agent.StartAgentServer(*addr)).Msg("agent server stopped")
}
