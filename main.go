package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/musical/cli"
	"github.com/ardnew/musical/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)
	stop()

	if err != nil {
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
