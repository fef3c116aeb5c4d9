// Package main provides the skillsage command line: the HTTP API server and an
// offline assessment runner.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillsage/internal/config"
	"github.com/jonathan/skillsage/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "skillsage",
	Short: "SkillSage career readiness assistant",
	Long: "SkillSage builds a student profile, runs a short psychometric questionnaire and turns the answers " +
		"into a career readiness dashboard with skill gaps, a roadmap and course suggestions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (environment variables still override it)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRuntime reads configuration and builds the logger it describes.
func loadRuntime() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Options{
		Mode:     cfg.Log.Mode,
		Level:    cfg.Log.Level,
		HashSalt: cfg.Log.HashSalt,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}
