package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"DayFlow/internal/model"
	"DayFlow/internal/model/dto"
	pkgerrors "DayFlow/pkg/errors"
	"DayFlow/pkg/snowflake"
	"DayFlow/storage/database"
)

const taskPageSize = 20

var (
	taskService *TaskService
	taskOnce    sync.Once
)

func Task() *TaskService {
	taskOnce.Do(func() {
		taskService = &TaskService{}
	})
	return taskService
}

type TaskService struct{}

// Create 创建任务
func (s *TaskService) Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskItem, error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = string(model.TaskPriorityMedium)
	}
	if !model.ValidPriority(priority) {
		return nil, pkgerrors.InvalidPriority
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	task := &model.Task{
		PublicID:    publicID,
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.TaskPriority(priority),
		Status:      model.TaskStatusPending,
		DueDate:     req.DueDate,
	}

	if err := database.DB().WithContext(ctx).Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return taskToItem(task), nil
}

// List 游标分页列出任务，status、priority 为空表示不过滤
func (s *TaskService) List(ctx context.Context, userID, status, priority, cursor string) (*dto.TaskListResponse, error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if status != "" && status != string(model.TaskStatusPending) && status != string(model.TaskStatusCompleted) {
		return nil, pkgerrors.InvalidStatus
	}
	if priority != "" && !model.ValidPriority(priority) {
		return nil, pkgerrors.InvalidPriority
	}

	query := database.DB().WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("id DESC").
		Limit(taskPageSize + 1) // 多取一条判断还有没有下一页

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if cursor != "" {
		// 非法游标当作从头开始
		if cursorID, err := strconv.ParseInt(cursor, 10, 64); err == nil {
			query = query.Where("id < ?", cursorID)
		}
	}

	var tasks []*model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	resp := &dto.TaskListResponse{Tasks: make([]*dto.TaskItem, 0, len(tasks))}
	if len(tasks) > taskPageSize {
		tasks = tasks[:taskPageSize]
		resp.NextCursor = strconv.FormatInt(tasks[len(tasks)-1].ID, 10)
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, taskToItem(t))
	}
	return resp, nil
}

// Get 查询单个任务
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*dto.TaskItem, error) {
	task, err := s.findOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return taskToItem(task), nil
}

// Update 部分更新任务字段
func (s *TaskService) Update(ctx context.Context, userID, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskItem, error) {
	task, err := s.findOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Priority != nil {
		if !model.ValidPriority(*req.Priority) {
			return nil, pkgerrors.InvalidPriority
		}
		updates["priority"] = *req.Priority
	}
	if req.Status != nil {
		switch model.TaskStatus(*req.Status) {
		case model.TaskStatusPending:
			updates["status"] = *req.Status
			updates["completed_at"] = nil
		case model.TaskStatusCompleted:
			updates["status"] = *req.Status
			updates["completed_at"] = time.Now()
		default:
			return nil, pkgerrors.InvalidStatus
		}
	}
	if req.ClearDue {
		updates["due_date"] = nil
	} else if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}

	if len(updates) == 0 {
		return taskToItem(task), nil
	}

	if err := database.DB().WithContext(ctx).Model(task).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	// Updates 之后 task 里的值已经刷新，除了 map 里置 nil 的字段
	if req.ClearDue {
		task.DueDate = nil
	}
	if req.Status != nil && *req.Status == string(model.TaskStatusPending) {
		task.CompletedAt = nil
	}
	return taskToItem(task), nil
}

// Complete 标记任务完成，重复完成为幂等操作
func (s *TaskService) Complete(ctx context.Context, userID, taskID string) (*dto.TaskItem, error) {
	task, err := s.findOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status == model.TaskStatusCompleted {
		return taskToItem(task), nil
	}

	now := time.Now()
	err = database.DB().WithContext(ctx).Model(task).Updates(map[string]interface{}{
		"status":       model.TaskStatusCompleted,
		"completed_at": now,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	task.Status = model.TaskStatusCompleted
	task.CompletedAt = &now
	return taskToItem(task), nil
}

// Delete 软删除任务
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	task, err := s.findOwned(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := database.DB().WithContext(ctx).Delete(task).Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// findOwned 按 public_id 查任务并校验归属，越权访问一律返回 Not Found
func (s *TaskService) findOwned(ctx context.Context, userID, taskID string) (*model.Task, error) {
	user, err := resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	publicID, err := strconv.ParseInt(taskID, 10, 64)
	if err != nil {
		return nil, pkgerrors.TaskNotFound
	}

	var task model.Task
	err = database.DB().WithContext(ctx).
		Where("public_id = ? AND user_id = ?", publicID, user.ID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.TaskNotFound
		}
		return nil, fmt.Errorf("failed to query task: %w", err)
	}
	return &task, nil
}

func taskToItem(t *model.Task) *dto.TaskItem {
	return &dto.TaskItem{
		ID:          strconv.FormatInt(t.PublicID, 10),
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}
