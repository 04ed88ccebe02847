package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/vibespecs/vibespecs/internal/api"
	"github.com/vibespecs/vibespecs/internal/app"
	"github.com/vibespecs/vibespecs/internal/config"
)

// vibespecs-api is the headless API server entrypoint, for deployments
// that want the REST surface without the CLI.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on environment")
	}

	cfg, err := config.Load(false)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize application", "error", err)
	}
	defer application.Close()

	var generator api.Generator
	if application.Gateway != nil {
		generator = application.Gateway
	}
	var prdStore api.PRDStore
	if application.Store != nil {
		prdStore = application.Store
	}

	server := api.NewServer(generator, prdStore)
	log.Info("Starting API server", "addr", cfg.Server.Addr)
	if err := server.Start(cfg.Server.Addr); err != nil {
		log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
