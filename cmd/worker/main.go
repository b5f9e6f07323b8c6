// Command worker applies M-Pesa payment results read from Kafka to deliveries.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"textbook-logistics/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	container := app.MustBuildWorkerContainer(ctx)
	if err := app.NewWorkerRunner().Run(container); err != nil {
		log.Printf("payment worker stopped: %v", err)
		cancel()
		os.Exit(1)
	}
}
