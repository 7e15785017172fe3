// Package main is the entry point for the fstelegraf binary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/fstelegraf/cmd/fstelegraf/cmd"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fstelegraf: %v\n", err)
		stop()
		os.Exit(1)
	}
}
