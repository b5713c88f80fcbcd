package dto

// ========== 数据导出相关 DTO ==========

// CreateExportRequest 创建导出任务请求
type CreateExportRequest struct {
	Format string `json:"format" binding:"required"` // xlsx, pdf
	Scope  string `json:"scope" binding:"required"`  // all, tasks, habits
}

// ExportJobItem 导出任务状态
type ExportJobItem struct {
	JobID     string `json:"job_id"`
	Format    string `json:"format"`
	Scope     string `json:"scope"`
	Status    string `json:"status"` // queued, running, done, failed
	FileName  string `json:"file_name,omitempty"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ExportListResponse 导出任务列表
type ExportListResponse struct {
	Jobs []*ExportJobItem `json:"jobs"`
}
