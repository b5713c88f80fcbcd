package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"DayFlow/config"
	"DayFlow/internal/queue"
	"DayFlow/internal/service"
	"DayFlow/pkg/logger"
	"DayFlow/pkg/snowflake"
	"DayFlow/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	// 导出渲染由 service 层承担，避免 queue 和 service 互相依赖
	queue.SetExportProcessor(service.Export())

	logger.Logger.Info("Worker service starting",
		zap.String("service", "dayflow-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	var wg sync.WaitGroup
	consumers := []struct {
		name string
		run  func(context.Context) error
	}{
		{"export", queue.StartExportConsumer},
		{"streak-reminder", queue.StartStreakReminderConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, run func(context.Context) error) {
			defer wg.Done()
			if err := run(ctx); err != nil && err != context.Canceled {
				logger.Logger.Error("Consumer stopped",
					zap.String("consumer", name),
					zap.Error(err))
				cancel()
			}
		}(c.name, c.run)
	}

	wg.Wait()

	logger.Logger.Info("Worker service shutting down gracefully")
}
