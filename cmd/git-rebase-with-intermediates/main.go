package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"instafix.dev/instafix/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRebaseWithIntermediatesCmd(filepath.Base(os.Args[0]), version, commit, date)
	// Interrupts cancel the running operation instead of killing the process
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
