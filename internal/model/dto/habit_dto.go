package dto

import "time"

// ========== Habit 相关 DTO ==========

// CreateHabitRequest 创建习惯请求
type CreateHabitRequest struct {
	Title        string `json:"title" binding:"required"`
	ReminderTime string `json:"reminder_time,omitempty"` // HH:MM
	Location     string `json:"location,omitempty"`
}

// UpdateHabitRequest 更新习惯请求
type UpdateHabitRequest struct {
	Title        *string `json:"title,omitempty"`
	ReminderTime *string `json:"reminder_time,omitempty"`
	Location     *string `json:"location,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// HabitItem 习惯条目，streak 字段为实时派生值
type HabitItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ReminderTime   string    `json:"reminder_time,omitempty"`
	Location       string    `json:"location,omitempty"`
	IsActive       bool      `json:"is_active"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
	LastCompleted  string    `json:"last_completed,omitempty"` // YYYY-MM-DD
	Risk           string    `json:"risk"`                     // safe, in_danger, no_streak
	CompletedToday bool      `json:"completed_today"`
	CreatedAt      time.Time `json:"created_at"`
}

// CheckInResponse 打卡响应
type CheckInResponse struct {
	HabitID        string `json:"habit_id"`
	CompletionDate string `json:"completion_date"` // YYYY-MM-DD
	AlreadyDone    bool   `json:"already_done"`    // 当天重复打卡时为 true
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
}

// StreakResponse 单个习惯的 streak 查询响应
type StreakResponse struct {
	HabitID       string `json:"habit_id"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastCompleted string `json:"last_completed,omitempty"`
	Risk          string `json:"risk"`
}

// CompletionItem 打卡记录条目
type CompletionItem struct {
	HabitID        string `json:"habit_id"`
	HabitTitle     string `json:"habit_title"`
	CompletionDate string `json:"completion_date"` // YYYY-MM-DD
}
