package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-buk-export/internal/app"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunExport(); err != nil {
		logger.Fatal("export failed", zap.Error(err))
	}
}
