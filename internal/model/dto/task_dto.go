package dto

import "time"

// ========== Task 相关 DTO ==========

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"` // low, medium, high，缺省 medium
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest 更新任务请求，指针字段区分「未提供」和「清空」
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ClearDue    bool       `json:"clear_due,omitempty"`
}

// TaskItem 任务条目
type TaskItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskListResponse 任务列表响应（游标分页）
type TaskListResponse struct {
	Tasks      []*TaskItem `json:"tasks"`
	NextCursor string      `json:"next_cursor,omitempty"`
}
