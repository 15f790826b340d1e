package main

import (
	"context"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/config"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting product feed generation...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	if err := app.GenerateOnce(context.Background()); err != nil {
		log.Fatalf("Feed generation failed: %v", err)
	}

	log.Info("Feed generation finished successfully")
}
