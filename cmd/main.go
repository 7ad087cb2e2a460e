package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuathan/stock-signals/internal/config"
	"github.com/tuathan/stock-signals/internal/db"
	"github.com/tuathan/stock-signals/internal/scan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stop on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var storage db.Storage
	if cfg.DBConnStr != "" {
		pg, err := db.NewPostgres(cfg.DBConnStr, 10, 5)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}
		defer pg.GetDB().Close()
		storage = pg
	} else {
		log.Println("No DB connection string configured, using in-memory storage (empty)")
		storage = db.NewMemory()
	}

	results, err := scan.Run(ctx, cfg, storage)
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	for _, r := range results {
		fmt.Printf("%s [%s]: %d signal events\n", r.Symbol, r.Strategy, len(r.Events))
		for _, e := range r.Events {
			fmt.Printf("  %s  %-40s close=%.2f\n", e.Date.Format("2006-01-02"), e.Label, e.Values["close"])
		}
	}

	if cfg.OutputCSV != "" {
		if err := scan.WriteCSV(cfg.OutputCSV, results); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		log.Printf("Saved signal events to %s", cfg.OutputCSV)
	}
}
