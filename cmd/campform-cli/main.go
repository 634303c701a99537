// Package main tags camp registration surveys from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	clicmd "github.com/goliatone/go-campform/internal/cmd/cli"
	"github.com/goliatone/go-campform/internal/prompt"
)

func main() {
	cfg, err := clicmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := clicmd.Run(ctx, cfg, clicmd.Deps{}); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		log.Fatalf("campform-cli: %v", err)
	}
}
