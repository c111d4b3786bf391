// Package main is the entry point for the rpg-core CLI
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenfall/rpg-core/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "rpgcore",
	Short: "Adaptive RPG simulation core",
	Long:  `rpgcore runs the single-player simulation core: character creation, turn-based combat, adaptive difficulty, and variable-ratio rewards.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(enemiesCmd)
}

// loadConfig loads the environment configuration and applies the log
// level before any command runs.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return cfg, nil
}
