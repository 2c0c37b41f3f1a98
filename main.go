// Package main is the entry point for the snyk-ignores CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/snykops/snyk-ignores/cmd"
	"github.com/snykops/snyk-ignores/internal/logging"
)

// Exit codes: 0 normal completion, 1 command failure, 130 interrupted.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logging.Warn("interrupted, exiting")
			stop()
			os.Exit(exitInterrupted)
		}

		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
