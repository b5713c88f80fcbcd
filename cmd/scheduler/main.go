package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"DayFlow/config"
	"DayFlow/internal/schedule"
	"DayFlow/pkg/logger"
	"DayFlow/pkg/snowflake"
	"DayFlow/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "dayflow-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	if err := schedule.GetScheduler().Run(ctx); err != nil && err != context.Canceled {
		logger.Logger.Error("Scheduler loop exited", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service shutting down gracefully")
}
