package main

import (
	"context"
	"os"
	"os/signal"
)

// -------------------- MAIN --------------------

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}
