package main

import (
	"context"
	"fmt"
	"os"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/config"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/orchestrator"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/utils"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		// the configured level is unknown at this point, default to info
		log := logger.NewLogger("bootstrap", "info")
		log.Error().Err(err).Str("stage", "config").Msg("bootstrap failed")
		os.Exit(orchestrator.ExitBootstrapError)
	}

	log := logger.NewLogger("bootstrap", cfg.EffectiveLogLevel())
	log = &logger.Logger{Logger: log.With().Str("bootstrap_id", utils.NewUUIDGenerator().Generate()).Logger()}

	log.Debug().Any("config", cfg).Msg("received configs")

	code := orchestrator.New(cfg, log).Run(context.Background())
	os.Exit(code)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
