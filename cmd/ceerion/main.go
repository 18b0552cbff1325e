package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ceerion/internal/config"
	"ceerion/internal/db"
	httpx "ceerion/internal/http"
	"ceerion/internal/jobs"
	"ceerion/internal/mail"

	"go.uber.org/zap"
)

func main() {
	cfg, _ := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect", zap.Error(err))
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	if err := db.SeedProductTypes(gdb); err != nil {
		logger.Fatal("seed product types", zap.Error(err))
	}

	notify := &jobs.Notifier{DB: gdb, Log: logger}
	r := httpx.NewRouter(cfg, gdb, logger, notify)

	// email worker
	mailer := mail.NewSMTPMailer(cfg.SMTP, logger)
	worker := &jobs.Worker{ID: "worker-1", Repo: &jobs.Repo{DB: gdb}, Mailer: mailer, Log: logger}

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
