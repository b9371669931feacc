package main

import (
	"log"

	"github.com/joho/godotenv"

	"teamcomp/internal"
	"teamcomp/internal/config"
	"teamcomp/internal/dataapi"
)

// The data API serves the scraped boss lineups from a JSON file
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))

	store := dataapi.NewStore(appConfig.DataAPI.DataFile, logger)
	if err := store.Load(); err != nil {
		log.Fatalf("Failed to load %s: %v", appConfig.DataAPI.DataFile, err)
	}

	server := dataapi.NewServer(store, dataapi.Config{ImageBaseURL: appConfig.DataAPI.ImageBaseURL}, logger)
	log.Fatal(server.Start(":" + appConfig.DataAPI.Port))
}
