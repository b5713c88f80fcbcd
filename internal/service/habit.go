package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"DayFlow/internal/analytics"
	"DayFlow/internal/cache"
	"DayFlow/internal/model"
	"DayFlow/internal/model/dto"
	pkgerrors "DayFlow/pkg/errors"
	"DayFlow/pkg/logger"
	"DayFlow/pkg/snowflake"
	"DayFlow/storage/database"
)

var (
	habitService *HabitService
	habitOnce    sync.Once
)

func Habit() *HabitService {
	habitOnce.Do(func() {
		habitService = &HabitService{}
	})
	return habitService
}

type HabitService struct{}

// Create 创建习惯
func (s *HabitService) Create(ctx context.Context, userID string, req *dto.CreateHabitRequest) (*dto.HabitItem, error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ReminderTime != "" && !validReminderTime(req.ReminderTime) {
		return nil, pkgerrors.InvalidReminderTime
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	habit := &model.Habit{
		PublicID:     publicID,
		UserID:       user.ID,
		Title:        req.Title,
		ReminderTime: req.ReminderTime,
		Location:     req.Location,
		IsActive:     true,
	}

	if err := database.DB().WithContext(ctx).Create(habit).Error; err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	today := analytics.Today(userLocation(user))
	return s.habitToItem(ctx, habit, today)
}

// List 列出用户的全部习惯，带实时 streak
func (s *HabitService) List(ctx context.Context, userID string) ([]*dto.HabitItem, error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var habits []*model.Habit
	err = database.DB().WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("id ASC").
		Find(&habits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	today := analytics.Today(userLocation(user))
	items := make([]*dto.HabitItem, 0, len(habits))
	for _, h := range habits {
		item, err := s.habitToItem(ctx, h, today)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Get 查询单个习惯
func (s *HabitService) Get(ctx context.Context, userID, habitID string) (*dto.HabitItem, error) {
	user, habit, err := s.findOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	today := analytics.Today(userLocation(user))
	return s.habitToItem(ctx, habit, today)
}

// Update 部分更新习惯
func (s *HabitService) Update(ctx context.Context, userID, habitID string, req *dto.UpdateHabitRequest) (*dto.HabitItem, error) {
	user, habit, err := s.findOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ReminderTime != nil {
		if *req.ReminderTime != "" && !validReminderTime(*req.ReminderTime) {
			return nil, pkgerrors.InvalidReminderTime
		}
		updates["reminder_time"] = *req.ReminderTime
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB().WithContext(ctx).Model(habit).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update habit: %w", err)
		}
	}

	today := analytics.Today(userLocation(user))
	return s.habitToItem(ctx, habit, today)
}

// Delete 软删除习惯，打卡历史保留
func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	_, habit, err := s.findOwned(ctx, userID, habitID)
	if err != nil {
		return err
	}

	if err := database.DB().WithContext(ctx).Delete(habit).Error; err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// CheckIn 当天打卡，重复打卡幂等返回当前状态
func (s *HabitService) CheckIn(ctx context.Context, userID, habitID string) (*dto.CheckInResponse, error) {
	user, habit, err := s.findOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	if !habit.IsActive {
		return nil, pkgerrors.HabitInactive
	}

	loc := userLocation(user)
	today := analytics.Today(loc)
	// DSN 带 loc=Local，driver 按本地时区序列化 DATE 列，
	// 这里必须用同一时区建 midnight，否则东西半球会写错一天
	day, err := time.ParseInLocation("2006-01-02", string(today), time.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to parse today: %w", err)
	}

	alreadyDone := false
	completion := &model.HabitCompletion{
		HabitID:        habit.ID,
		UserID:         user.ID,
		CompletionDate: day,
	}
	if err := database.DB().WithContext(ctx).Create(completion).Error; err != nil {
		// (habit_id, completion_date) 唯一索引保证幂等
		if strings.Contains(err.Error(), "Duplicate entry") {
			alreadyDone = true
		} else {
			return nil, fmt.Errorf("failed to record completion: %w", err)
		}
	}

	if !alreadyDone {
		if err := cache.InvalidateStreak(ctx, habit.ID, today); err != nil {
			logger.Logger.Warn("Failed to invalidate streak cache", zap.Error(err))
		}
	}

	streak, _, err := s.computeStreak(ctx, habit.ID, today)
	if err != nil {
		return nil, err
	}

	return &dto.CheckInResponse{
		HabitID:        strconv.FormatInt(habit.PublicID, 10),
		CompletionDate: string(today),
		AlreadyDone:    alreadyDone,
		CurrentStreak:  streak.Current,
		LongestStreak:  streak.Longest,
	}, nil
}

// GetStreak 查询单个习惯的 streak 详情
func (s *HabitService) GetStreak(ctx context.Context, userID, habitID string) (*dto.StreakResponse, error) {
	user, habit, err := s.findOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	today := analytics.Today(userLocation(user))
	streak, last, err := s.computeStreak(ctx, habit.ID, today)
	if err != nil {
		return nil, err
	}

	resp := &dto.StreakResponse{
		HabitID:       strconv.FormatInt(habit.PublicID, 10),
		CurrentStreak: streak.Current,
		LongestStreak: streak.Longest,
		Risk:          string(analytics.EvaluateRisk(last, today)),
	}
	if last != nil {
		resp.LastCompleted = string(*last)
	}
	return resp, nil
}

// ListCompletions 列出用户在日期区间内的打卡记录
// from/to 可省略，缺省为截止今天的最近 30 天
func (s *HabitService) ListCompletions(ctx context.Context, userID, from, to string) ([]*dto.CompletionItem, error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := analytics.Today(userLocation(user))
	toKey := today
	if to != "" {
		if toKey, err = analytics.ParseDateKey(to); err != nil {
			return nil, pkgerrors.InvalidDateRange
		}
	}
	fromKey := toKey.AddDays(-29)
	if from != "" {
		if fromKey, err = analytics.ParseDateKey(from); err != nil {
			return nil, pkgerrors.InvalidDateRange
		}
	}
	if days, err := analytics.DaysBetween(fromKey, toKey); err != nil || days < 0 {
		return nil, pkgerrors.InvalidDateRange
	}

	type completionRow struct {
		PublicID       int64
		Title          string
		CompletionDate time.Time
	}
	var rows []completionRow
	err = database.DB().WithContext(ctx).
		Table("habit_completions").
		Select("habits.public_id, habits.title, habit_completions.completion_date").
		Joins("JOIN habits ON habits.id = habit_completions.habit_id").
		Where("habit_completions.user_id = ?", user.ID).
		Where("habit_completions.completion_date BETWEEN ? AND ?", string(fromKey), string(toKey)).
		Where("habits.deleted_at IS NULL").
		Where("habit_completions.deleted_at IS NULL").
		Order("habit_completions.completion_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	items := make([]*dto.CompletionItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, &dto.CompletionItem{
			HabitID:        strconv.FormatInt(r.PublicID, 10),
			HabitTitle:     r.Title,
			CompletionDate: string(analytics.ToDateKey(r.CompletionDate)),
		})
	}
	return items, nil
}

// computeStreak streak 读穿缓存，命中时连打卡历史的查询一起省掉
func (s *HabitService) computeStreak(ctx context.Context, habitDBID int64, today analytics.DateKey) (analytics.Streak, *analytics.DateKey, error) {
	if entry, hit, err := cache.GetStreak(ctx, habitDBID, today); err == nil && hit {
		return entry.Streak, entry.LastCompleted, nil
	}

	keys, err := s.completionKeys(ctx, habitDBID)
	if err != nil {
		return analytics.Streak{}, nil, err
	}
	last := analytics.LastCompleted(keys)

	streak := analytics.ComputeStreak(keys, today)
	entry := cache.StreakEntry{Streak: streak, LastCompleted: last}
	if err := cache.SetStreak(ctx, habitDBID, today, entry); err != nil {
		logger.Logger.Warn("Failed to cache streak", zap.Error(err))
	}
	return streak, last, nil
}

// completionKeys 取某习惯的全部打卡日期
func (s *HabitService) completionKeys(ctx context.Context, habitDBID int64) ([]analytics.DateKey, error) {
	var dates []time.Time
	err := database.DB().WithContext(ctx).
		Model(&model.HabitCompletion{}).
		Where("habit_id = ?", habitDBID).
		Order("completion_date ASC").
		Pluck("completion_date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	keys := make([]analytics.DateKey, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, analytics.ToDateKey(d))
	}
	return keys, nil
}

func (s *HabitService) habitToItem(ctx context.Context, h *model.Habit, today analytics.DateKey) (*dto.HabitItem, error) {
	streak, last, err := s.computeStreak(ctx, h.ID, today)
	if err != nil {
		return nil, err
	}

	item := &dto.HabitItem{
		ID:             strconv.FormatInt(h.PublicID, 10),
		Title:          h.Title,
		ReminderTime:   h.ReminderTime,
		Location:       h.Location,
		IsActive:       h.IsActive,
		CurrentStreak:  streak.Current,
		LongestStreak:  streak.Longest,
		Risk:           string(analytics.EvaluateRisk(last, today)),
		CompletedToday: last != nil && *last == today,
		CreatedAt:      h.CreatedAt,
	}
	if last != nil {
		item.LastCompleted = string(*last)
	}
	return item, nil
}

func (s *HabitService) findOwned(ctx context.Context, userID, habitID string) (*model.User, *model.Habit, error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	publicID, err := strconv.ParseInt(habitID, 10, 64)
	if err != nil {
		return nil, nil, pkgerrors.HabitNotFound
	}

	var habit model.Habit
	err = database.DB().WithContext(ctx).
		Where("public_id = ? AND user_id = ?", publicID, user.ID).
		First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.HabitNotFound
		}
		return nil, nil, fmt.Errorf("failed to query habit: %w", err)
	}
	return user, &habit, nil
}

// validReminderTime 校验 HH:MM 格式
func validReminderTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
