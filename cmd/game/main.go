package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/host/tcellhost"
	"github.com/tomz197/asteroids-classic/internal/loop"
)

func main() {
	backend := flag.String("backend", "ansi", "terminal backend: ansi or tcell")
	seed := flag.Uint64("seed", 0, "game seed (0 picks one from the clock)")
	flag.Parse()

	if err := run(*backend, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(backend string, seed uint64) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	out, closeLog, err := config.LogOutput()
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()
	logger := config.NewLogger(out, "game")

	cfg := config.FromEnv()
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch backend {
	case "tcell":
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer screen.Fini()
		host := tcellhost.New(screen, cfg, tcellhost.WithSeed(seed), tcellhost.WithLogger(logger))
		return host.Run(ctx)
	case "ansi":
		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("enable raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
		}()
		return loop.RunTerminal(ctx, os.Stdin, os.Stdout, loop.TerminalOptions{
			Config: cfg,
			Seed:   seed,
			Logger: logger,
		})
	default:
		return fmt.Errorf("unknown backend %q", backend)
	}
}
