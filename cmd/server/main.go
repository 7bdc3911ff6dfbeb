package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dokan-be/internal/config"
	"dokan-be/internal/db"
	"dokan-be/internal/logger"
	"dokan-be/internal/server"

	"go.uber.org/zap"
)

// Indirection points so run() can be exercised without a real database or
// a listening socket.
var (
	initDBFunc = db.InitDB

	startServerFunc = func(s *server.Server, address string) error {
		return s.Start(address)
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	srv := server.NewServer(cfg, database)

	errCh := make(chan error, 1)
	go func() {
		errCh <- startServerFunc(srv, ":"+cfg.AppPort)
	}()

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.L().Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
