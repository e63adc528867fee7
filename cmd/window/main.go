package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/host/window"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, "window")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := uint64(time.Now().UnixNano())
	if err := window.New(ctx, config.FromEnv(), seed, logger).Run(); err != nil {
		logger.Error("window closed", "err", err)
		os.Exit(1)
	}
}
