// Package main seeds the reference-data collections used by the project
// forms.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	seedcmd "github.com/linguahub/linguahub/internal/cmd/seed"
	"github.com/linguahub/linguahub/internal/platform/config"
)

func main() {
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}
	log.SetPrefix("[SEED] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seedcmd.Run(ctx, cfg); err != nil {
		config.Exitf("seed: %v", err)
	}
}
