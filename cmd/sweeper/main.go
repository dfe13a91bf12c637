// Package main is the entry point for the sweeper terminal game.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AdamLandfrasz/sweeper-of-mines/internal/game"
	"github.com/AdamLandfrasz/sweeper-of-mines/internal/telemetry"
)

var (
	cfg     game.Config
	logFile string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sweeper",
		Short:        "Minesweeper in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Difficulty, "difficulty", "d", "", "preset: beginner, intermediate or expert")
	flags.IntVar(&cfg.Width, "width", 0, "custom board width (with --height and --mines)")
	flags.IntVar(&cfg.Height, "height", 0, "custom board height")
	flags.IntVar(&cfg.Mines, "mines", 0, "custom mine count")
	flags.Int64Var(&cfg.Seed, "seed", 0, "seed for reproducible boards (0 = random)")
	flags.IntVar(&cfg.StarterZone, "starter-zone", 0, "cells kept clear around the first click (0 = default)")
	flags.StringVar(&logFile, "log-file", "", "write log output to this file while the game runs")
	cmd.MarkFlagsRequiredTogether("width", "height", "mines")
	cmd.MarkFlagsMutuallyExclusive("difficulty", "width")
	return cmd
}

func run(ctx context.Context) error {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// The terminal belongs to the game once it starts
	closeLog, err := redirectLog(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

// redirectLog sends the standard logger to path, or discards it when path
// is empty. The returned function restores stderr.
func redirectLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env
// vars. Returns false if no exporter is configured.
func setupOTelEnv() bool {
	endpoint := os.Getenv("SWEEPER_OTLP_ENDPOINT")
	apiKey := os.Getenv("SWEEPER_HONEYCOMB_API_KEY")

	if apiKey != "" && endpoint == "" {
		endpoint = "https://api.honeycomb.io"
	}
	if endpoint == "" {
		return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", endpoint)

	// Built here because a .env file may carry an unexpanded reference
	if apiKey != "" {
		dataset := os.Getenv("SWEEPER_HONEYCOMB_DATASET")
		if dataset == "" {
			dataset = "sweeper"
		}
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
	return true
}
