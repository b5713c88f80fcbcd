package dto

// ========== 统计面板相关 DTO ==========

// DashboardResponse 仪表盘统计响应
type DashboardResponse struct {
	Tasks   TaskStats       `json:"tasks"`
	Habits  HabitStats      `json:"habits"`
	Window  []DayCompletion `json:"window"` // 最旧 → 最新
	Streaks []HabitStreak   `json:"streaks"`
}

// TaskStats 任务统计
type TaskStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// HabitStats 习惯统计
type HabitStats struct {
	Total          int `json:"total"`
	Active         int `json:"active"`
	CompletedToday int `json:"completed_today"`
	AtRisk         int `json:"at_risk"` // InDanger 的习惯数
}

// DayCompletion 窗口内单日完成度
type DayCompletion struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"` // 0-100
	Level      string `json:"level"`      // good, warning, bad
}

// HabitStreak 单个习惯的 streak 概览
type HabitStreak struct {
	HabitID       string `json:"habit_id"`
	Title         string `json:"title"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Risk          string `json:"risk"`
}
