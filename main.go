package main

import (
	"log"

	"github.com/joho/godotenv"

	"teamcomp/adapters/api"
	"teamcomp/app"
	"teamcomp/domain/overlay"
	"teamcomp/internal"
	"teamcomp/internal/config"
	"teamcomp/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))

	client := api.NewClient(api.Config{
		BaseURL: appConfig.API.BaseURL,
		Timeout: appConfig.API.Timeout,
	}, logger)
	resolver := overlay.NewResolver(client, appConfig.API.ImageConcurrency, logger)

	registry := app.NewRegistry(app.DefaultPages(), client, resolver, app.ControllerOptions{
		Timeout: appConfig.API.Timeout,
		TTL:     appConfig.Server.PageTTL,
		Logger:  logger,
	})

	server, err := ui.NewServer(registry, ui.Config{GinMode: appConfig.Server.GinMode}, logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("🚀 Starting teamcomp on port %s (data API %s)", appConfig.Server.Port, client.BaseURL())
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
