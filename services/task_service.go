package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/tasktrail/tasktrail/models"
	"github.com/tasktrail/tasktrail/repositories"
)

// TaskService interface defines task management business logic. Every
// successful mutation appends exactly one audit log entry.
type TaskService interface {
	ListTasks(ctx context.Context, query models.PageQuery) (*models.TaskPage, error)
	CreateTask(ctx context.Context, form *models.TaskForm) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, form *models.TaskForm) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// taskService implements TaskService interface
type taskService struct {
	taskRepo  repositories.TaskRepository
	auditRepo repositories.AuditRepository
	logger    *slog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repositories.TaskRepository, auditRepo repositories.AuditRepository, logger *slog.Logger) TaskService {
	return &taskService{
		taskRepo:  taskRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// ListTasks retrieves one page of tasks, newest first, optionally
// filtered by a case-insensitive search over title and description.
// The total count reflects the filter, not the page window; a page
// past the end yields an empty list, never an error.
func (s *taskService) ListTasks(ctx context.Context, query models.PageQuery) (*models.TaskPage, error) {
	tasks, total, err := s.taskRepo.List(ctx, query.Search, query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return &models.TaskPage{
		Tasks:      tasks,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: models.TotalPages(total, query.Limit),
	}, nil
}

// CreateTask sanitizes and validates the submitted fields, inserts the
// task and records a "Create Task" audit entry holding both fields.
// Missing fields are treated as empty strings and fail validation.
func (s *taskService) CreateTask(ctx context.Context, form *models.TaskForm) (*models.Task, error) {
	title := models.Sanitize(stringValue(form.Title))
	description := models.Sanitize(stringValue(form.Description))

	if err := models.ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := models.ValidateDescription(description); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.Create(ctx, title, description)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, models.ActionCreateTask, task.ID, models.FieldChanges{
		"title":       title,
		"description": description,
	})

	return task, nil
}

// UpdateTask applies the supplied fields to an existing task. Each
// present field is sanitized and validated before any write; only
// fields whose sanitized value differs from the stored one are written
// and recorded. When nothing differs the store is not touched, no
// audit entry is made and the current task is returned as is.
func (s *taskService) UpdateTask(ctx context.Context, id int64, form *models.TaskForm) (*models.Task, error) {
	current, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := models.FieldChanges{}

	if form.Title != nil {
		title := models.Sanitize(*form.Title)
		if err := models.ValidateTitle(title); err != nil {
			return nil, err
		}
		if title != current.Title {
			changes["title"] = title
		}
	}

	if form.Description != nil {
		description := models.Sanitize(*form.Description)
		if err := models.ValidateDescription(description); err != nil {
			return nil, err
		}
		if description != current.Description {
			changes["description"] = description
		}
	}

	if len(changes) == 0 {
		return current, nil
	}

	task, err := s.taskRepo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, models.ActionUpdateTask, id, changes)

	return task, nil
}

// DeleteTask removes the task and records a "Delete Task" audit entry
// with no content. The store does not report whether the id existed,
// so an unknown id still succeeds and is still recorded.
func (s *taskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recordAudit(ctx, models.ActionDeleteTask, id, nil)

	return nil
}

// recordAudit appends one audit entry for a committed mutation. The
// write is best effort: a failure here is logged but does not fail the
// already committed operation.
func (s *taskService) recordAudit(ctx context.Context, action models.AuditAction, taskID int64, content models.FieldChanges) {
	entry := &models.AuditLogEntry{
		Timestamp:      time.Now().UTC(),
		Action:         action,
		TaskID:         &taskID,
		UpdatedContent: content,
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to write audit log entry",
			"action", string(action),
			"task_id", taskID,
			"error", err,
		)
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
