package cache

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"DayFlow/config"
	"DayFlow/storage/redis"
)

const (
	exportJobPrefix     = "export:job"
	exportJobListPrefix = "export:jobs:user"
)

// 导出任务状态机：queued -> running -> done / failed
const (
	ExportStatusQueued  = "queued"
	ExportStatusRunning = "running"
	ExportStatusDone    = "done"
	ExportStatusFailed  = "failed"
)

// ExportJob 导出任务元数据，整个生命周期存 Redis hash
type ExportJob struct {
	JobID     string
	UserID    int64
	Format    string
	Scope     string
	Status    string
	FileName  string
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func jobTTL() time.Duration {
	hours := config.Cfg.ExportJobTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

func jobKey(jobID string) string {
	return redis.Key(exportJobPrefix, jobID)
}

func userJobsKey(userID int64) string {
	return redis.Key(exportJobListPrefix, fmt.Sprintf("%d", userID))
}

// CreateExportJob 建立任务记录并挂进用户任务列表
func CreateExportJob(ctx context.Context, job *ExportJob) error {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.Status = ExportStatusQueued

	ttl := jobTTL()
	pipe := redis.Client().TxPipeline()
	pipe.HSet(ctx, jobKey(job.JobID), jobFields(job))
	pipe.Expire(ctx, jobKey(job.JobID), ttl)
	// zset 按创建时间排序，列表查询时取最新的在前
	pipe.ZAdd(ctx, userJobsKey(job.UserID), goredis.Z{
		Score:  float64(now.Unix()),
		Member: job.JobID,
	})
	pipe.Expire(ctx, userJobsKey(job.UserID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create export job: %w", err)
	}
	return nil
}

// GetExportJob 读取任务，不存在返回 (nil, nil)
func GetExportJob(ctx context.Context, jobID string) (*ExportJob, error) {
	fields, err := redis.Client().HGetAll(ctx, jobKey(jobID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get export job: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return jobFromFields(jobID, fields), nil
}

// UpdateExportJobStatus 推进任务状态，done 时带文件名、failed 时带错误信息
func UpdateExportJobStatus(ctx context.Context, jobID, status, fileName, errMsg string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().Format(time.RFC3339),
	}
	if fileName != "" {
		updates["file_name"] = fileName
	}
	if errMsg != "" {
		updates["error"] = errMsg
	}
	if err := redis.Client().HSet(ctx, jobKey(jobID), updates).Err(); err != nil {
		return fmt.Errorf("failed to update export job status: %w", err)
	}
	return nil
}

// ListExportJobs 按创建时间倒序列出用户的导出任务
func ListExportJobs(ctx context.Context, userID int64, limit int64) ([]*ExportJob, error) {
	if limit <= 0 {
		limit = 20
	}
	ids, err := redis.Client().ZRevRange(ctx, userJobsKey(userID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list export jobs: %w", err)
	}

	jobs := make([]*ExportJob, 0, len(ids))
	for _, id := range ids {
		job, err := GetExportJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job == nil {
			// 任务 hash 已过期，顺手从列表里摘掉
			redis.Client().ZRem(ctx, userJobsKey(userID), id)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func jobFields(job *ExportJob) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    job.UserID,
		"format":     job.Format,
		"scope":      job.Scope,
		"status":     job.Status,
		"file_name":  job.FileName,
		"error":      job.Error,
		"created_at": job.CreatedAt.Format(time.RFC3339),
		"updated_at": job.UpdatedAt.Format(time.RFC3339),
	}
}

func jobFromFields(jobID string, fields map[string]string) *ExportJob {
	job := &ExportJob{
		JobID:    jobID,
		Format:   fields["format"],
		Scope:    fields["scope"],
		Status:   fields["status"],
		FileName: fields["file_name"],
		Error:    fields["error"],
	}
	fmt.Sscanf(fields["user_id"], "%d", &job.UserID)
	if t, err := time.Parse(time.RFC3339, fields["created_at"]); err == nil {
		job.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, fields["updated_at"]); err == nil {
		job.UpdatedAt = t
	}
	return job
}
