package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/config"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting product feed server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}

	log.Info("Server shut down successfully")
}
