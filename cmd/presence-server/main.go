package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cardtrack/presence-server/internal/config"
	"github.com/cardtrack/presence-server/internal/db"
	"github.com/cardtrack/presence-server/internal/httpapi"
	"github.com/cardtrack/presence-server/internal/presence/service"
	"github.com/cardtrack/presence-server/internal/presence/store/sqlite"
)

func main() {
	logger := log.New(os.Stdout, "presence-server ", log.LstdFlags|log.LUTC)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatalf("db open: %v", err)
	}
	defer conn.Close()

	if cfg.Env == "dev" {
		if err := db.SeedDev(ctx, conn); err != nil {
			logger.Fatalf("seed dev: %v", err)
		}
	}

	writer := db.NewWorker(conn)
	defer writer.Close()

	// Stores
	personStore := sqlite.NewPersonStore(conn, writer)
	logStore := sqlite.NewLogStore(conn)
	heartbeatStore := sqlite.NewHeartbeatStore(conn, writer)

	// Services
	scanSvc := service.NewScanService(personStore, time.Duration(cfg.CooldownSeconds)*time.Second)
	registrationSvc := service.NewRegistrationService(personStore)
	directorySvc := service.NewDirectoryService(personStore, logStore)
	heartbeatSvc := service.NewHeartbeatService(heartbeatStore)

	pruner := service.NewHeartbeatPruner(heartbeatStore, service.PrunerConfig{
		RetentionDays: cfg.HeartbeatRetentionDays,
		IntervalHours: cfg.PruneIntervalHours,
	}, logger)
	pruner.Start(ctx)
	defer pruner.Stop()

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:           logger,
		Addr:             cfg.HTTPAddr,
		ScanService:      scanSvc,
		Registration:     registrationSvc,
		Directory:        directorySvc,
		HeartbeatService: heartbeatSvc,
	})

	go func() {
		logger.Printf("listening on %s (env=%s, cooldown=%ds)", cfg.HTTPAddr, cfg.Env, cfg.CooldownSeconds)
		if err := srv.Start(); err != nil {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
