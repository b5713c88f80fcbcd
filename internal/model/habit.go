package model

// Habit 习惯模型
// streak 和 last_completed 是派生属性，由 analytics 层从 completions 实时计算，不落表
type Habit struct {
	BaseModel
	PublicID     int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID       int64  `gorm:"not null;index:idx_habits_user_active" json:"user_id"`
	Title        string `gorm:"type:varchar(255);not null" json:"title"`
	ReminderTime string `gorm:"type:varchar(8)" json:"reminder_time,omitempty"` // HH:MM
	Location     string `gorm:"type:varchar(255)" json:"location,omitempty"`
	IsActive     bool   `gorm:"not null;default:true;index:idx_habits_user_active" json:"is_active"`
}

// TableName 指定表名
func (Habit) TableName() string {
	return "habits"
}
