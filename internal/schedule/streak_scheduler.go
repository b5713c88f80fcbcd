package schedule

// streak 提醒调度器：每天定点扫描活跃习惯，把昨天打过卡、今天还没打的批量投给 worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"DayFlow/config"
	"DayFlow/internal/analytics"
	"DayFlow/internal/model"
	"DayFlow/internal/queue"
	"DayFlow/pkg/logger"
	"DayFlow/storage/database"
)

var (
	schedulerOnce sync.Once
	schedulerInst *StreakScheduler
)

type StreakScheduler struct {
	logger       *zap.Logger
	scanRunning  bool
	scanMu       sync.Mutex
	lastScanTime time.Time
}

func GetScheduler() *StreakScheduler {
	schedulerOnce.Do(func() {
		schedulerInst = &StreakScheduler{
			logger: logger.Logger,
		}
	})
	return schedulerInst
}

// ScanStreaksAtRisk 扫描全部活跃习惯，濒危的按批次投递提醒消息
func (s *StreakScheduler) ScanStreaksAtRisk(ctx context.Context) error {
	s.scanMu.Lock()
	if s.scanRunning {
		s.scanMu.Unlock()
		s.logger.Info("Streak scan already running, skipping")
		return nil
	}
	s.scanRunning = true
	s.scanMu.Unlock()

	defer func() {
		s.scanMu.Lock()
		s.scanRunning = false
		s.scanMu.Unlock()
	}()

	startTime := time.Now()
	s.lastScanTime = startTime

	// 服务默认时区决定「今天」，个别用户时区偏差由提醒文案容忍
	today := analytics.Today(config.Cfg.Location())
	yesterday := today.AddDays(-1)

	s.logger.Info("Starting streak risk scan",
		zap.String("date", string(today)))

	// 濒危 = 最近一次打卡恰好是昨天
	type riskRow struct {
		HabitID       int64
		HabitPublicID int64
		UserPublicID  int64
		Title         string
		LastDate      time.Time
	}
	var rows []riskRow
	err := database.DB().WithContext(ctx).
		Table("habits").
		Select("habits.id as habit_id, habits.public_id as habit_public_id, users.public_id as user_public_id, habits.title, MAX(habit_completions.completion_date) as last_date").
		Joins("JOIN users ON users.id = habits.user_id").
		Joins("JOIN habit_completions ON habit_completions.habit_id = habits.id AND habit_completions.deleted_at IS NULL").
		Where("habits.is_active = ? AND habits.deleted_at IS NULL", true).
		Group("habits.id, habits.public_id, users.public_id, habits.title").
		Having("MAX(habit_completions.completion_date) = ?", string(yesterday)).
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to scan habits at risk: %w", err)
	}

	if len(rows) == 0 {
		s.logger.Info("No streaks at risk today")
		return nil
	}

	batchSize := config.Cfg.ReminderBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	batchID := uuid.NewString()
	published := 0
	items := make([]model.StreakReminderItem, 0, batchSize)

	flush := func() error {
		if len(items) == 0 {
			return nil
		}
		if err := queue.PublishStreakReminderBatch(ctx, batchID, string(today), items); err != nil {
			return err
		}
		published += len(items)
		items = make([]model.StreakReminderItem, 0, batchSize)
		return nil
	}

	for _, r := range rows {
		streak, err := s.currentStreak(ctx, r.HabitID, today)
		if err != nil {
			s.logger.Warn("Failed to compute streak for reminder",
				zap.Int64("habit_id", r.HabitID),
				zap.Error(err))
			continue
		}

		items = append(items, model.StreakReminderItem{
			UserID:        r.UserPublicID,
			HabitID:       r.HabitPublicID,
			HabitTitle:    r.Title,
			CurrentStreak: streak,
		})

		if len(items) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	s.logger.Info("Streak risk scan finished",
		zap.String("batch_id", batchID),
		zap.Int("habit_count", published),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

// currentStreak 提醒里带上的连续天数，直接按打卡历史算
func (s *StreakScheduler) currentStreak(ctx context.Context, habitDBID int64, today analytics.DateKey) (int, error) {
	var dates []time.Time
	err := database.DB().WithContext(ctx).
		Model(&model.HabitCompletion{}).
		Where("habit_id = ?", habitDBID).
		Order("completion_date ASC").
		Pluck("completion_date", &dates).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load completions: %w", err)
	}

	keys := make([]analytics.DateKey, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, analytics.ToDateKey(d))
	}
	return analytics.ComputeStreak(keys, today).Current, nil
}

// Run 阻塞运行调度循环：每天 ReminderScanHour:ReminderScanMinute 触发一次
// 开发环境下缩短为每分钟检查，便于调试
func (s *StreakScheduler) Run(ctx context.Context) error {
	for {
		next := s.nextScanTime(time.Now())
		s.logger.Info("Next streak scan scheduled", zap.Time("at", next))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(next)):
			if err := s.ScanStreaksAtRisk(ctx); err != nil {
				s.logger.Error("Streak scan failed", zap.Error(err))
			}
		}
	}
}

func (s *StreakScheduler) nextScanTime(now time.Time) time.Time {
	if config.Cfg.IsDevelopment() {
		return now.Add(time.Minute)
	}

	loc := config.Cfg.Location()
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(),
		config.Cfg.ReminderScanHour, config.Cfg.ReminderScanMinute, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
