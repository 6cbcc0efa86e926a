package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"ArticleCrawler/internal/api"
	"ArticleCrawler/internal/app"
	"ArticleCrawler/internal/config"
	"ArticleCrawler/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)
	server := api.NewServer(application.Crawler(), application.Defaults(), cfg.Location(), logger.With("component", "lambda"))

	lambda.Start(api.NewLambdaHandler(server).Handle)
}
