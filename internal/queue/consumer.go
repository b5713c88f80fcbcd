package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"DayFlow/internal/cache"
	"DayFlow/internal/model"
	"DayFlow/pkg/errors"
	"DayFlow/pkg/logger"
	"DayFlow/storage/mq"
)

// ExportProcessor 由 worker 启动时注入，避免与 service 层互相依赖
type ExportProcessor interface {
	Process(ctx context.Context, msg *model.ExportJobMessage) error
}

var exportProcessor ExportProcessor

// SetExportProcessor 设置导出处理器（worker 启动时调用）
func SetExportProcessor(p ExportProcessor) {
	exportProcessor = p
}

// StartExportConsumer 启动导出任务消费者，阻塞到 ctx 取消
func StartExportConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.ExportJobMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("malformed export message: %v", err)}
		}

		first, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err))
			// 检查失败时继续处理，宁可重复不可丢
		} else if !first {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing export job",
			zap.String("message_id", msg.MessageID),
			zap.String("job_id", msg.JobID),
			zap.String("format", msg.Format))

		if exportProcessor == nil {
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("export processor not set")
		}

		if err := exportProcessor.Process(ctx, &msg); err != nil {
			// 失败时取消标记允许重投
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("failed to process export job %s: %w", msg.JobID, err)
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err))
		}
		return nil
	}

	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         mq.QueueExportJobs,
		ConsumerTag:   "dayflow-export-worker",
		PrefetchCount: 4,
		Handler:       handler,
	})
}

// StartStreakReminderConsumer 启动 streak 濒危提醒消费者
// 目前提醒只做结构化日志投递，邮件/推送通道留待接入
func StartStreakReminderConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.StreakReminderMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("malformed reminder message: %v", err)}
		}

		first, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err))
		} else if !first {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing streak reminder batch",
			zap.String("message_id", msg.MessageID),
			zap.String("batch_id", msg.BatchID),
			zap.String("date", msg.DateKey),
			zap.Int("habit_count", len(msg.Habits)))

		for _, item := range msg.Habits {
			logger.Logger.Info("Streak at risk",
				zap.Int64("user_id", item.UserID),
				zap.Int64("habit_id", item.HabitID),
				zap.String("habit_title", item.HabitTitle),
				zap.Int("current_streak", item.CurrentStreak))
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err))
		}
		return nil
	}

	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         mq.QueueStreakReminder,
		ConsumerTag:   "dayflow-reminder-worker",
		PrefetchCount: 8,
		Handler:       handler,
	})
}
