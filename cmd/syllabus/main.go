package main

import (
	"fmt"
	"os"

	"syllabus-builder/internal/adapter/coursegen"
	"syllabus-builder/internal/cli"
	"syllabus-builder/internal/config"
	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the course JSON.
	cfg.Logger.Output = "stderr"
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	if cfg.File != "" {
		logger.Get().Debug("Using config file", zap.String("path", cfg.File))
	}

	app := &cli.App{
		NewGenerator: func() (domain.CourseGenerationService, error) {
			return coursegen.NewFromConfig(cfg.LLM, logger.Get())
		},
		DefaultWeeks: cfg.Generation.DefaultWeeks,
		MaxWeeks:     cfg.Generation.MaxWeeks,
	}

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}
