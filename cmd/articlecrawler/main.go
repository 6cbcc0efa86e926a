package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ArticleCrawler/internal/app"
	"ArticleCrawler/internal/config"
	"ArticleCrawler/internal/logging"
	"ArticleCrawler/internal/params"
)

func main() {
	var raw params.RawParams
	flag.StringVar(&raw.CategoryURL, "category", "", "category listing URL (default from config)")
	flag.StringVar(&raw.Date, "date", "", "target day as YYYY-MM-DD in the target timezone (default today)")
	flag.StringVar(&raw.Limit, "limit", "", "maximum links to visit, clamped to [1, 80]")
	flag.StringVar(&raw.Sleep, "sleep", "", "pause between article requests in seconds, clamped to [0, 2]")
	flag.Parse()

	envErr := godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	if envErr != nil {
		logger.Debug(".env not loaded", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := app.New(cfg, logger).Run(ctx, raw)
	if err != nil {
		logger.Error("crawl failed", "error", err)
		stop()
		if errors.Is(err, params.ErrInvalidDate) || errors.Is(err, params.ErrInvalidParameter) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("write result", "error", err)
		stop()
		os.Exit(1)
	}
}
