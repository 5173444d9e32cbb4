package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/smart-attendance/cmd/attendance/commands"
)

// Version information (set via ldflags during build)
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx, Version); err != nil {
		commands.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
