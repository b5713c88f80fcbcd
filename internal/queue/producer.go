package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"DayFlow/internal/model"
	"DayFlow/pkg/logger"
	"DayFlow/pkg/snowflake"
	"DayFlow/storage/mq"
)

// PublishExportJob 投递导出任务消息
func PublishExportJob(ctx context.Context, jobID string, userID int64, format, scope string) error {
	messageID, err := snowflake.NextID()
	if err != nil {
		return fmt.Errorf("failed to generate message id: %w", err)
	}

	msg := model.ExportJobMessage{
		MessageID: strconv.FormatInt(messageID, 10),
		JobID:     jobID,
		UserID:    userID,
		Format:    format,
		Scope:     scope,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	if err := mq.PublishMessage(mq.ExchangeJobs, mq.QueueExportJobs, msg); err != nil {
		return fmt.Errorf("failed to publish export job message: %w", err)
	}

	logger.Logger.Info("Export job message published",
		zap.String("message_id", msg.MessageID),
		zap.String("job_id", jobID))
	return nil
}

// PublishStreakReminderBatch 投递一批 streak 濒危提醒
func PublishStreakReminderBatch(ctx context.Context, batchID, dateKey string, habits []model.StreakReminderItem) error {
	if len(habits) == 0 {
		return nil
	}

	messageID, err := snowflake.NextID()
	if err != nil {
		return fmt.Errorf("failed to generate message id: %w", err)
	}

	msg := model.StreakReminderMessage{
		MessageID: strconv.FormatInt(messageID, 10),
		BatchID:   batchID,
		DateKey:   dateKey,
		Habits:    habits,
	}

	if err := mq.PublishMessage(mq.ExchangeJobs, mq.QueueStreakReminder, msg); err != nil {
		return fmt.Errorf("failed to publish streak reminder message: %w", err)
	}

	logger.Logger.Info("Streak reminder batch published",
		zap.String("message_id", msg.MessageID),
		zap.String("batch_id", batchID),
		zap.Int("habit_count", len(habits)))
	return nil
}
