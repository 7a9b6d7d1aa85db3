package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"campus-waterworks/internal/app"
	"campus-waterworks/internal/config"
	"campus-waterworks/internal/schedule"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to the YAML configuration file")
		analysis   = flag.String("analysis", "full", "analysis to run: full, relationship, leakage or area")
		dataDir    = flag.String("data-dir", "", "override the input data directory")
		outDir     = flag.String("out", "", "override the output directory")
		dailyAt    = flag.String("daily-at", "", "run daily at HH:MM instead of once")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "waterworks ", log.LstdFlags)

	// A missing .env file is fine; explicit environment always wins.
	if err := godotenv.Load(); err == nil {
		logger.Printf("environment loaded from .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load configuration: %v", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}
	if *dailyAt != "" {
		cfg.DailyAt = *dailyAt
	}

	selected, err := app.ParseAnalysis(*analysis)
	if err != nil {
		logger.Fatalf("select analysis: %v", err)
	}

	runner, err := app.New(cfg, app.NewFileSources(cfg), logger)
	if err != nil {
		logger.Fatalf("build pipeline: %v", err)
	}

	if cfg.DailyAt == "" {
		if err := runner.Run(selected); err != nil {
			logger.Fatalf("run %s: %v", selected, err)
		}
		return
	}

	scheduler, err := schedule.New(cfg.DailyAt, logger, func() {
		if err := runner.Run(selected); err != nil {
			logger.Printf("scheduled run failed analysis=%s err=%v", selected, err)
		}
	})
	if err != nil {
		logger.Fatalf("build scheduler: %v", err)
	}
	scheduler.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	sig := <-stop
	logger.Printf("signal received signal=%s", sig)
	scheduler.Stop()
}
