// cmd/vexation/main.go
// Vexation runs batch simulations or an interactive console game.
//
//	vexation sim  [-games N] [-workers W] [-seed S] [-power-ups]
//	vexation play [-seed S] [-human red] [-events]
//
// Defaults come from VEXATION_* environment variables or a .env file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/vexation/internal/config"
	"github.com/jason-s-yu/vexation/internal/sim"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log := cfg.Logger()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "sim":
		err = runSim(cfg, log, os.Args[2:])
	case "play":
		err = runPlay(cfg, log, os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.WithError(err).Fatal("Command failed.")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vexation sim|play [flags]")
	fmt.Fprintln(os.Stderr, "  sim   play many seeded all-computer games and report statistics")
	fmt.Fprintln(os.Stderr, "  play  play a game on the console")
}

func runSim(cfg config.Config, log *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	games := fs.Int("games", cfg.Games, "number of games to simulate")
	workers := fs.Int("workers", cfg.Workers, "concurrent games")
	seed := fs.Uint64("seed", cfg.GameSeed(), "seed of the first game; game i uses seed+i")
	powerUps := fs.Bool("power-ups", false, "let computer players spend drafted power-ups")
	maxTurns := fs.Uint("max-turns", uint(cfg.MaxTurns), "turn limit per game (0 uses the simulator default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules := cfg.Rules()
	rules.MaxTurns = uint16(*maxTurns)
	log.WithFields(logrus.Fields{
		"games":   *games,
		"workers": *workers,
		"seed":    *seed,
	}).Info("Starting simulation.")

	rep, err := sim.Run(ctx, sim.Options{
		Games:            *games,
		Workers:          *workers,
		Seed:             *seed,
		Rules:            rules,
		ComputerPowerUps: *powerUps,
		Logger:           log,
	})
	fmt.Println(rep)
	return err
}

func runPlay(cfg config.Config, log *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Uint64("seed", cfg.GameSeed(), "game seed")
	human := fs.String("human", "red", "comma-separated human colors, or none")
	events := fs.Bool("events", false, "print every game event")
	if err := fs.Parse(args); err != nil {
		return err
	}
	seats, err := config.ParseHuman(*human)
	if err != nil {
		return fmt.Errorf("-human: %w", err)
	}
	cfg.Human = seats
	log.WithField("seed", *seed).Debug("Starting console game.")
	return playConsole(os.Stdin, os.Stdout, cfg.Rules(), *seed, *events, log)
}
