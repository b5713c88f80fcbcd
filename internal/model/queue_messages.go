package model

// ExportJobMessage 导出任务消息，API 侧投递，worker 侧消费
type ExportJobMessage struct {
	MessageID string `json:"message_id"`
	JobID     string `json:"job_id"`
	UserID    int64  `json:"user_id"` // public_id
	Format    string `json:"format"`  // xlsx, pdf
	Scope     string `json:"scope"`   // all, tasks, habits
	CreatedAt string `json:"created_at"`
}

// StreakReminderMessage streak 濒危提醒批次，scheduler 侧投递
type StreakReminderMessage struct {
	MessageID string               `json:"message_id"`
	BatchID   string               `json:"batch_id"`
	DateKey   string               `json:"date_key"` // 扫描当天的 YYYY-MM-DD
	Habits    []StreakReminderItem `json:"habits"`
}

// StreakReminderItem 单个濒危习惯条目
type StreakReminderItem struct {
	UserID        int64  `json:"user_id"` // public_id
	HabitID       int64  `json:"habit_id"`
	HabitTitle    string `json:"habit_title"`
	CurrentStreak int    `json:"current_streak"`
}
