// Command service-delivery serves the delivery HTTP API and the live tracking websockets.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"textbook-logistics/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	container := app.MustBuildContainer(ctx)
	app.NewRunner().MustRun(container)
}
