package main

import (
	"context"
	"log"

	"edustat/adapters/api"
	"edustat/internal/config"
	"edustat/internal/container"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	server := api.NewServer(
		appContainer.Service,
		appContainer.Reader,
		appContainer.Renderer,
		appConfig.Paths.OutputDir,
		appContainer.Logger,
	)

	appContainer.Logger.Info("Reports will be written to %s", appConfig.Paths.OutputDir)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		appContainer.Logger.Error("Server stopped: %v", err)
	}
}
