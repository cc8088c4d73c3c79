package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"ChipTick/internal/di"
	"ChipTick/pkg/config"
	"ChipTick/pkg/util"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	mode := flag.String("mode", "tick", "run mode: tick (one daily invocation) or serve (HTTP API)")
	dateStr := flag.String("date", "", "simulate this day instead of today (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	switch *mode {
	case "tick":
		today := time.Now()
		if *dateStr != "" {
			today, err = util.ParseDay(*dateStr)
			if err != nil {
				log.Fatalf("bad -date: %v", err)
			}
		}
		if err := app.RunTick(context.Background(), today); err != nil {
			os.Exit(1)
		}
	case "serve":
		if err := app.RunServe(); err != nil {
			os.Exit(1)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}
