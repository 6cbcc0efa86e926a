package main

import (
	"os"

	"github.com/joho/godotenv"

	"ArticleCrawler/internal/api"
	"ArticleCrawler/internal/app"
	"ArticleCrawler/internal/config"
	"ArticleCrawler/internal/logging"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	if envErr != nil {
		logger.Debug(".env not loaded", "error", envErr)
	}

	application := app.New(cfg, logger)
	server := api.NewServer(application.Crawler(), application.Defaults(), cfg.Location(), logger.With("component", "api"))

	logger.Info("listening", "addr", cfg.Server.Addr)
	if err := server.SetupRouter().Run(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
