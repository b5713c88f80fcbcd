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
	calendarService *CalendarService
	calendarOnce    sync.Once
)

func Calendar() *CalendarService {
	calendarOnce.Do(func() {
		calendarService = &CalendarService{}
	})
	return calendarService
}

type CalendarService struct{}

// Events 把区间内的任务和打卡投影成日历事件，kind 取 all / tasks / habits
func (s *CalendarService) Events(ctx context.Context, userID, from, to, kind string) (*dto.CalendarResponse, error) {
	var filterKind analytics.EventKind
	switch kind {
	case "", "all":
		filterKind = ""
	case "tasks":
		filterKind = analytics.KindTask
	case "habits":
		filterKind = analytics.KindHabit
	default:
		return nil, pkgerrors.InvalidEventKind
	}

	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fromKey, err := analytics.ParseDateKey(from)
	if err != nil {
		return nil, pkgerrors.InvalidDateRange
	}
	toKey, err := analytics.ParseDateKey(to)
	if err != nil {
		return nil, pkgerrors.InvalidDateRange
	}
	if days, err := analytics.DaysBetween(fromKey, toKey); err != nil || days < 0 {
		return nil, pkgerrors.InvalidDateRange
	}

	loc := userLocation(user)
	taskEntries, err := s.taskEntries(ctx, user.ID, fromKey, toKey, loc)
	if err != nil {
		return nil, err
	}
	completionEntries, err := s.completionEntries(ctx, user.ID, fromKey, toKey)
	if err != nil {
		return nil, err
	}

	events := analytics.ProjectEvents(taskEntries, completionEntries)
	events = analytics.FilterEvents(events, filterKind)

	resp := &dto.CalendarResponse{Events: make([]*dto.CalendarEventItem, 0, len(events))}
	for i, e := range events {
		resp.Events = append(resp.Events, &dto.CalendarEventItem{
			ID:           fmt.Sprintf("%s-%d-%d", e.Kind, e.SourceID, i),
			Date:         string(e.Date),
			Title:        e.Title,
			Color:        e.Color,
			Kind:         string(e.Kind),
			SourceID:     strconv.FormatInt(e.SourceID, 10),
			ReminderTime: e.ReminderTime,
			Location:     e.Location,
			Display:      e.Display,
		})
	}
	return resp, nil
}

func (s *CalendarService) taskEntries(ctx context.Context, userDBID int64, from, to analytics.DateKey, loc *time.Location) ([]analytics.TaskEntry, error) {
	fromDay, _ := time.ParseInLocation("2006-01-02", string(from), loc)
	toDay, _ := time.ParseInLocation("2006-01-02", string(to), loc)
	toDayEnd := toDay.AddDate(0, 0, 1)

	var tasks []*model.Task
	err := database.DB().WithContext(ctx).
		Where("user_id = ? AND due_date IS NOT NULL AND due_date >= ? AND due_date < ?",
			userDBID, fromDay, toDayEnd).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for calendar: %w", err)
	}

	entries := make([]analytics.TaskEntry, 0, len(tasks))
	for _, t := range tasks {
		dueKey := analytics.ToDateKey(t.DueDate.In(loc))
		entries = append(entries, analytics.TaskEntry{
			ID:        t.PublicID,
			Title:     t.Title,
			Priority:  string(t.Priority),
			Completed: t.Status == model.TaskStatusCompleted,
			Due:       &dueKey,
		})
	}
	return entries, nil
}

func (s *CalendarService) completionEntries(ctx context.Context, userDBID int64, from, to analytics.DateKey) ([]analytics.CompletionEntry, error) {
	type row struct {
		PublicID       int64
		Title          string
		ReminderTime   string
		Location       string
		CompletionDate time.Time
	}
	var rows []row
	err := database.DB().WithContext(ctx).
		Table("habit_completions").
		Select("habits.public_id, habits.title, habits.reminder_time, habits.location, habit_completions.completion_date").
		Joins("JOIN habits ON habits.id = habit_completions.habit_id").
		Where("habit_completions.user_id = ?", userDBID).
		Where("habit_completions.completion_date BETWEEN ? AND ?", string(from), string(to)).
		Where("habits.deleted_at IS NULL").
		Where("habit_completions.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completions for calendar: %w", err)
	}

	entries := make([]analytics.CompletionEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, analytics.CompletionEntry{
			HabitID:      r.PublicID,
			HabitTitle:   r.Title,
			Date:         analytics.ToDateKey(r.CompletionDate),
			ReminderTime: r.ReminderTime,
			Location:     r.Location,
		})
	}
	return entries, nil
}
