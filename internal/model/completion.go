package model

import "time"

// HabitCompletion 习惯打卡记录，append-only 事实表
// (habit_id, completion_date) 唯一，重复打卡是幂等空操作
type HabitCompletion struct {
	BaseModel
	HabitID        int64     `gorm:"not null;uniqueIndex:uidx_completions_habit_date" json:"habit_id"`
	UserID         int64     `gorm:"not null;index:idx_completions_user_date" json:"user_id"`
	CompletionDate time.Time `gorm:"type:date;not null;uniqueIndex:uidx_completions_habit_date;index:idx_completions_user_date" json:"completion_date"`
}

// TableName 指定表名
func (HabitCompletion) TableName() string {
	return "habit_completions"
}
