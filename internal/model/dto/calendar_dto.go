package dto

// ========== 日历相关 DTO ==========

// CalendarEventItem 日历事件投影条目
type CalendarEventItem struct {
	ID       string `json:"id"`
	Date     string `json:"date"` // YYYY-MM-DD
	Title    string `json:"title"`
	Color    string `json:"color"`
	Kind     string `json:"kind"` // task, habit
	SourceID string `json:"source_id"`

	// habit 事件的点击穿透信息
	ReminderTime string `json:"reminder_time,omitempty"`
	Location     string `json:"location,omitempty"`
	Display      string `json:"display,omitempty"` // habit 事件为 background
}

// CalendarResponse 日历事件响应
type CalendarResponse struct {
	Events []*CalendarEventItem `json:"events"`
}
