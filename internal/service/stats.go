package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"DayFlow/internal/analytics"
	"DayFlow/internal/model"
	"DayFlow/internal/model/dto"
	pkgerrors "DayFlow/pkg/errors"
	"DayFlow/storage/database"
)

var (
	statsService *StatsService
	statsOnce    sync.Once
)

func Stats() *StatsService {
	statsOnce.Do(func() {
		statsService = &StatsService{}
	})
	return statsService
}

type StatsService struct{}

// Dashboard 聚合仪表盘数据，window 只接受 7 或 30
func (s *StatsService) Dashboard(ctx context.Context, userID string, window int) (*dto.DashboardResponse, error) {
	if window != 7 && window != 30 {
		return nil, pkgerrors.InvalidWindow
	}

	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := userLocation(user)
	today := analytics.Today(loc)

	taskStats, err := s.taskStats(ctx, user.ID, loc)
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

	habitStats, streaks, err := s.habitStats(ctx, habits, today)
	if err != nil {
		return nil, err
	}

	windowDays, err := s.completionWindow(ctx, user.ID, habitStats.Active, window, today)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Tasks:   *taskStats,
		Habits:  *habitStats,
		Window:  windowDays,
		Streaks: streaks,
	}, nil
}

func (s *StatsService) taskStats(ctx context.Context, userDBID int64, loc *time.Location) (*dto.TaskStats, error) {
	type statusCount struct {
		Status string
		Count  int
	}
	var rows []statusCount
	err := database.DB().WithContext(ctx).
		Model(&model.Task{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userDBID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	stats := &dto.TaskStats{}
	for _, r := range rows {
		stats.Total += r.Count
		switch model.TaskStatus(r.Status) {
		case model.TaskStatusPending:
			stats.Pending = r.Count
		case model.TaskStatusCompleted:
			stats.Completed = r.Count
		}
	}

	// 逾期：pending 且截止时间已过
	var overdue int64
	err = database.DB().WithContext(ctx).
		Model(&model.Task{}).
		Where("user_id = ? AND status = ? AND due_date IS NOT NULL AND due_date < ?",
			userDBID, model.TaskStatusPending, time.Now().In(loc)).
		Count(&overdue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}
	stats.Overdue = int(overdue)

	return stats, nil
}

func (s *StatsService) habitStats(ctx context.Context, habits []*model.Habit, today analytics.DateKey) (*dto.HabitStats, []dto.HabitStreak, error) {
	stats := &dto.HabitStats{Total: len(habits)}
	streaks := make([]dto.HabitStreak, 0, len(habits))

	habitSvc := Habit()
	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		stats.Active++

		streak, last, err := habitSvc.computeStreak(ctx, h.ID, today)
		if err != nil {
			return nil, nil, err
		}
		risk := analytics.EvaluateRisk(last, today)

		if risk == analytics.RiskSafe {
			stats.CompletedToday++
		}
		if risk == analytics.RiskInDanger {
			stats.AtRisk++
		}

		streaks = append(streaks, dto.HabitStreak{
			HabitID:       strconv.FormatInt(h.PublicID, 10),
			Title:         h.Title,
			CurrentStreak: streak.Current,
			LongestStreak: streak.Longest,
			Risk:          string(risk),
		})
	}

	return stats, streaks, nil
}

func (s *StatsService) completionWindow(ctx context.Context, userDBID int64, totalActive, window int, today analytics.DateKey) ([]dto.DayCompletion, error) {
	from := today.AddDays(-(window - 1))

	type completionRow struct {
		HabitID        int64
		CompletionDate time.Time
	}
	var rows []completionRow
	err := database.DB().WithContext(ctx).
		Model(&model.HabitCompletion{}).
		Select("habit_id, completion_date").
		Where("user_id = ? AND completion_date BETWEEN ? AND ?", userDBID, string(from), string(today)).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load window completions: %w", err)
	}

	completions := make([]analytics.Completion, 0, len(rows))
	for _, r := range rows {
		completions = append(completions, analytics.Completion{
			HabitID: r.HabitID,
			Date:    analytics.ToDateKey(r.CompletionDate),
		})
	}

	days := analytics.CompletionWindow(totalActive, completions, window, today)
	out := make([]dto.DayCompletion, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DayCompletion{
			Date:       string(d.Date),
			Completed:  d.Completed,
			Total:      d.Total,
			Percentage: d.Percentage,
			Level:      string(analytics.ClassifyPercentage(d.Percentage)),
		})
	}
	return out, nil
}
