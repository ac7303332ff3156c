package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ironsheep/lightness-curve/internal/app"
	"github.com/ironsheep/lightness-curve/internal/config"
	"github.com/ironsheep/lightness-curve/internal/logger"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var configPath string

	// Handle --version and --help; any other argument is the config file.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("lightness-curve %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		default:
			configPath = os.Args[1]
		}
	}

	os.Exit(run(configPath))
}

func run(configPath string) int {
	ctx := context.Background()
	start := time.Now()

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lightness-curve: %v\n", err)
		return 1
	}

	// Logs go to stderr; stdout carries the report.
	log, err := logger.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lightness-curve: %v\n", err)
		return 1
	}
	log.Debug(ctx, "starting",
		logger.String("version", Version),
		logger.String("build_time", BuildTime),
		logger.String("commit", GitCommit))

	plan, err := cfg.Resolve()
	if err != nil {
		log.Error(ctx, "invalid configuration", logger.Error(err))
		return 1
	}

	if _, err := app.New(log).Run(ctx, plan); err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		return 1
	}

	fmt.Fprintf(os.Stderr, "Elapsed: %v\n", time.Since(start))
	return 0
}

func usage() {
	fmt.Println("lightness-curve - lightness curve of an image sequence")
	fmt.Println()
	fmt.Println("Usage: lightness-curve [config.yaml]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("The config file defaults to $LIGHTNESS_CONFIG, then config.yaml")
	fmt.Println("next to the executable. Every key can be overridden from the")
	fmt.Println("environment, e.g.:")
	fmt.Println("  LIGHTNESS_INPUT_PATH=frames/    Directory or single image")
	fmt.Println("  LIGHTNESS_ORDER_BY=name         name, created or modified")
	fmt.Println("  LIGHTNESS_MODE=hsp              mean, hsp, r, g, b, h, s, v")
	fmt.Println("  LIGHTNESS_LOG_LEVEL=debug       Enable debug logging")
	fmt.Println()
	fmt.Println("Without output_data_path or output_plot_path the report is")
	fmt.Println("printed to stdout.")
}
