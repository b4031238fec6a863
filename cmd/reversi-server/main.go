package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/stephentim/Reversi/internal"
	"github.com/stephentim/Reversi/internal/config"
)

func main() {
	// Load .env if present. Real environment variables take precedence.
	_ = godotenv.Load()

	config.SetLogLevel()

	// Setup app
	app, cfg, registry := internal.SetupApp()

	// Evict abandoned sessions in the background
	registry.StartSweeper(context.Background(), cfg.SweepInterval)

	// Start server
	log.Fatal(app.Listen(cfg.Address()))
}
