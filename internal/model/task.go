package model

import "time"

// TaskPriority 任务优先级枚举
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ValidPriority 校验优先级取值
func ValidPriority(p string) bool {
	switch TaskPriority(p) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// TaskStatus 任务状态枚举
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"   // 待完成
	TaskStatusCompleted TaskStatus = "completed" // 已完成
)

// Task 任务模型
type Task struct {
	BaseModel
	PublicID    int64        `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID      int64        `gorm:"not null;index:idx_tasks_user_status" json:"user_id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(16);not null;default:'medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(16);not null;default:'pending';index:idx_tasks_user_status" json:"status"`
	DueDate     *time.Time   `gorm:"type:datetime;index" json:"due_date,omitempty"`
	CompletedAt *time.Time   `gorm:"type:datetime" json:"completed_at,omitempty"`
}

// TableName 指定表名
func (Task) TableName() string {
	return "tasks"
}
