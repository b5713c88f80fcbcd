package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"DayFlow/config"
	"DayFlow/internal/analytics"
	"DayFlow/internal/cache"
	"DayFlow/internal/model"
	"DayFlow/internal/model/dto"
	"DayFlow/internal/queue"
	pkgerrors "DayFlow/pkg/errors"
	"DayFlow/pkg/export"
	"DayFlow/pkg/logger"
	"DayFlow/storage/database"
)

var (
	exportService *ExportService
	exportOnce    sync.Once
)

func Export() *ExportService {
	exportOnce.Do(func() {
		exportService = &ExportService{}
	})
	return exportService
}

type ExportService struct{}

// Create 创建导出任务：落 Redis、投 MQ，由 worker 异步渲染
func (s *ExportService) Create(ctx context.Context, userID string, req *dto.CreateExportRequest) (*dto.ExportJobItem, error) {
	if !export.ValidFormat(req.Format) {
		return nil, pkgerrors.ExportFormatInvalid
	}
	if !export.ValidScope(req.Scope) {
		return nil, pkgerrors.ExportScopeInvalid
	}

	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	job := &cache.ExportJob{
		JobID:  uuid.NewString(),
		UserID: user.PublicID,
		Format: req.Format,
		Scope:  req.Scope,
	}
	if err := cache.CreateExportJob(ctx, job); err != nil {
		return nil, err
	}

	if err := queue.PublishExportJob(ctx, job.JobID, user.PublicID, req.Format, req.Scope); err != nil {
		// 投递失败直接标记失败，避免任务悬在 queued
		_ = cache.UpdateExportJobStatus(ctx, job.JobID, cache.ExportStatusFailed, "", "failed to enqueue job")
		return nil, fmt.Errorf("failed to publish export job: %w", err)
	}

	logger.Logger.Info("Export job created",
		zap.String("job_id", job.JobID),
		zap.Int64("user_id", user.PublicID),
		zap.String("format", req.Format),
		zap.String("scope", req.Scope))

	return jobToItem(job), nil
}

// Get 查询导出任务状态
func (s *ExportService) Get(ctx context.Context, userID, jobID string) (*dto.ExportJobItem, error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	job, err := cache.GetExportJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || job.UserID != user.PublicID {
		return nil, pkgerrors.ExportNotFound
	}
	return jobToItem(job), nil
}

// List 列出用户的导出任务
func (s *ExportService) List(ctx context.Context, userID string) (*dto.ExportListResponse, error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := cache.ListExportJobs(ctx, user.PublicID, 20)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExportListResponse{Jobs: make([]*dto.ExportJobItem, 0, len(jobs))}
	for _, job := range jobs {
		resp.Jobs = append(resp.Jobs, jobToItem(job))
	}
	return resp, nil
}

// DownloadPath 校验任务归属和状态，返回落盘文件路径
func (s *ExportService) DownloadPath(ctx context.Context, userID, jobID string) (path, fileName string, err error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return "", "", err
	}

	job, err := cache.GetExportJob(ctx, jobID)
	if err != nil {
		return "", "", err
	}
	if job == nil || job.UserID != user.PublicID {
		return "", "", pkgerrors.ExportNotFound
	}

	switch job.Status {
	case cache.ExportStatusDone:
	case cache.ExportStatusFailed:
		return "", "", pkgerrors.ExportFailed
	default:
		return "", "", pkgerrors.ExportNotReady
	}

	path = filepath.Join(config.Cfg.ExportDir, job.FileName)
	if _, err := os.Stat(path); err != nil {
		// TTL 内文件被清理了
		return "", "", pkgerrors.ExportNotFound
	}
	return path, job.FileName, nil
}

// Process worker 侧执行导出：取数、渲染、落盘、更新状态
func (s *ExportService) Process(ctx context.Context, msg *model.ExportJobMessage) error {
	if err := cache.UpdateExportJobStatus(ctx, msg.JobID, cache.ExportStatusRunning, "", ""); err != nil {
		return err
	}

	payload, err := s.buildPayload(ctx, msg.UserID, msg.Scope)
	if err != nil {
		_ = cache.UpdateExportJobStatus(ctx, msg.JobID, cache.ExportStatusFailed, "", err.Error())
		return err
	}

	fileName := fmt.Sprintf("dayflow-%s-%s.%s", msg.Scope, msg.JobID, msg.Format)
	if err := s.renderToFile(payload, msg.Format, fileName); err != nil {
		_ = cache.UpdateExportJobStatus(ctx, msg.JobID, cache.ExportStatusFailed, "", err.Error())
		return err
	}

	if err := cache.UpdateExportJobStatus(ctx, msg.JobID, cache.ExportStatusDone, fileName, ""); err != nil {
		return err
	}

	logger.Logger.Info("Export job finished",
		zap.String("job_id", msg.JobID),
		zap.String("file", fileName))
	return nil
}

func (s *ExportService) renderToFile(payload *export.Payload, format, fileName string) error {
	if err := os.MkdirAll(config.Cfg.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	f, err := os.Create(filepath.Join(config.Cfg.ExportDir, fileName))
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	switch format {
	case export.FormatExcel:
		return export.WriteExcel(payload, f)
	case export.FormatPDF:
		return export.WritePDF(payload, f)
	default:
		return pkgerrors.ExportFormatInvalid
	}
}

func (s *ExportService) buildPayload(ctx context.Context, publicUserID int64, scope string) (*export.Payload, error) {
	user, err := resolveUser(ctx, strconv.FormatInt(publicUserID, 10))
	if err != nil {
		return nil, err
	}

	loc := userLocation(user)
	today := analytics.Today(loc)
	payload := &export.Payload{
		Username:    user.Username,
		GeneratedAt: time.Now().In(loc),
		Scope:       scope,
	}

	if scope == export.ScopeAll || scope == export.ScopeTasks {
		var tasks []*model.Task
		err := database.DB().WithContext(ctx).
			Where("user_id = ?", user.ID).
			Order("id ASC").
			Find(&tasks).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load tasks for export: %w", err)
		}
		for _, t := range tasks {
			row := export.TaskRow{
				Title:    t.Title,
				Priority: string(t.Priority),
				Status:   string(t.Status),
			}
			if t.DueDate != nil {
				row.DueDate = t.DueDate.In(loc).Format("2006-01-02")
			}
			if t.CompletedAt != nil {
				row.CompletedAt = t.CompletedAt.In(loc).Format("2006-01-02")
			}
			payload.Tasks = append(payload.Tasks, row)
		}
	}

	if scope == export.ScopeAll || scope == export.ScopeHabits {
		var habits []*model.Habit
		err := database.DB().WithContext(ctx).
			Where("user_id = ?", user.ID).
			Order("id ASC").
			Find(&habits).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load habits for export: %w", err)
		}
		habitSvc := Habit()
		for _, h := range habits {
			streak, last, err := habitSvc.computeStreak(ctx, h.ID, today)
			if err != nil {
				return nil, err
			}
			row := export.HabitRow{
				Title:         h.Title,
				CurrentStreak: streak.Current,
				LongestStreak: streak.Longest,
				Risk:          string(analytics.EvaluateRisk(last, today)),
			}
			if last != nil {
				row.LastCompleted = string(*last)
			}
			payload.Habits = append(payload.Habits, row)
		}
	}

	return payload, nil
}

func jobToItem(job *cache.ExportJob) *dto.ExportJobItem {
	item := &dto.ExportJobItem{
		JobID:     job.JobID,
		Format:    job.Format,
		Scope:     job.Scope,
		Status:    job.Status,
		FileName:  job.FileName,
		Error:     job.Error,
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
	}
	if !job.UpdatedAt.IsZero() {
		item.UpdatedAt = job.UpdatedAt.Format(time.RFC3339)
	}
	return item
}
