package task_services

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskflow/internal/model/board_model"
	"taskflow/internal/repository/board_repository"
)

var (
	ErrContentRequired = errors.New("task content is required")
	ErrInvalidPriority = errors.New("priority must be LOW, MEDIUM or HIGH")
	ErrInvalidDueDate  = errors.New("due date must be YYYY-MM-DD or RFC 3339")
)

// TaskUpdate carries a partial edit of a task's details. Nil fields are left
// untouched; an empty DueDate string clears the date.
type TaskUpdate struct {
	Content     *string
	Description *string
	Priority    *string
	DueDate     *string
}

type TaskService struct {
	Repo      *board_repository.TaskRepo
	BoardRepo *board_repository.BoardRepo
}

func NewTaskService(r *board_repository.TaskRepo, br *board_repository.BoardRepo) *TaskService {
	return &TaskService{Repo: r, BoardRepo: br}
}

// CreateTask appends a task to the named column. The caller must own the
// board the column belongs to; a foreign column reads like a missing one.
func (s *TaskService) CreateTask(ctx context.Context, userID, columnID, boardID, content string) (*board_model.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if err := s.checkColumnOwner(ctx, userID, columnID); err != nil {
		return nil, err
	}
	return s.Repo.CreateTask(ctx, columnID, boardID, content)
}

// MoveTask places the task at destIndex within destColumnID.
func (s *TaskService) MoveTask(ctx context.Context, userID, taskID, destColumnID string, destIndex int) (*board_model.Task, error) {
	if err := s.checkTaskOwner(ctx, userID, taskID); err != nil {
		return nil, err
	}
	if err := s.checkColumnOwner(ctx, userID, destColumnID); err != nil {
		return nil, err
	}
	return s.Repo.MoveTask(ctx, taskID, destColumnID, destIndex)
}

// UpdateTaskDetails edits content, description, priority and due date.
// Column and order are never changed here.
func (s *TaskService) UpdateTaskDetails(ctx context.Context, userID, taskID string, update TaskUpdate) (*board_model.Task, error) {
	if err := s.checkTaskOwner(ctx, userID, taskID); err != nil {
		return nil, err
	}

	task, err := s.Repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if update.Content != nil {
		content := strings.TrimSpace(*update.Content)
		if content == "" {
			return nil, ErrContentRequired
		}
		task.Content = content
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Priority != nil {
		if !board_model.ValidPriority(*update.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *update.Priority
	}
	if update.DueDate != nil {
		due, err := parseDueDate(*update.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}

	if err := s.Repo.UpdateTaskDetails(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.checkTaskOwner(ctx, userID, taskID); err != nil {
		return err
	}
	return s.Repo.DeleteTask(ctx, taskID)
}

func (s *TaskService) checkTaskOwner(ctx context.Context, userID, taskID string) error {
	ownerID, err := s.BoardRepo.GetOwnerIDByTaskID(ctx, taskID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return board_repository.ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) checkColumnOwner(ctx context.Context, userID, columnID string) error {
	ownerID, err := s.BoardRepo.GetOwnerIDByColumnID(ctx, columnID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return board_repository.ErrColumnNotFound
	}
	return nil
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDueDate
}
