package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katyella/kubex/internal/cli"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, cli.Options{
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}, os.Args[1:])

	stop()
	os.Exit(code)
}
