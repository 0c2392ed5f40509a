package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/repository"
	"github.com/yukikurage/employee-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
	ErrInvalidTaskID        = errors.New("invalid task id")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrStatusRequired       = errors.New("status is required")
	ErrInvalidTaskState     = errors.New("invalid task state")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrAssigneeNotFound     = errors.New("assignee not found")
	ErrStatusEventSave      = errors.New("failed to save task status update")
)

// taskPreloads are the relations a task carries when returned to clients.
var taskPreloads = []string{"AssignedTo", "CreatedBy"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo       repository.TaskRepository
	eventRepo      repository.TaskStatusEventRepository
	accountRepo    repository.AccountRepository
	verifyAssignee bool
}

// NewTaskService creates a new TaskService. With verifyAssignee set, task
// creation and reassignment check that the assignee exists.
func NewTaskService(
	taskRepo repository.TaskRepository,
	eventRepo repository.TaskStatusEventRepository,
	accountRepo repository.AccountRepository,
	verifyAssignee bool,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		eventRepo:      eventRepo,
		accountRepo:    accountRepo,
		verifyAssignee: verifyAssignee,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	AssignedToID string
	CreatedByID  string
	DueDate      string
	Priority     models.Priority
}

// UpdateTaskInput holds the fields to overwrite. Nil fields are left alone.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	AssignedToID *string
	DueDate      *string
	Priority     *models.Priority
}

// UpdateStatusInput represents a status change reported by a user.
type UpdateStatusInput struct {
	Status  models.TaskStatus
	ActorID string
	// Progress is the decoded JSON value. ProgressSet marks it as present
	// even when it decoded to nil.
	Progress    any
	ProgressSet bool
	Comment     string
}

// CreateTask creates a new pending task.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.AssignedToID = strings.TrimSpace(input.AssignedToID)

	if missing := requireFields("title", input.Title, "assignedTo", input.AssignedToID); len(missing) > 0 {
		return nil, newValidationError("Title and assignedTo are required", missing...)
	}

	var problems []string
	if !utils.IsValidID(input.AssignedToID) {
		problems = append(problems, "assignedTo must be a valid id")
	}
	if input.CreatedByID != "" && !utils.IsValidID(input.CreatedByID) {
		problems = append(problems, "createdBy must be a valid id")
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		problems = append(problems, "priority must be one of low, medium, high")
	}
	dueDate, err := parseOptionalDate(input.DueDate)
	if err != nil {
		problems = append(problems, "dueDate must be a date")
	}
	if len(problems) > 0 {
		return nil, newValidationError("Validation error", problems...)
	}

	if err := s.ensureAssignee(ctx, input.AssignedToID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		AssignedToID: input.AssignedToID,
		CreatedByID:  input.CreatedByID,
		DueDate:      dueDate,
		Priority:     input.Priority,
		Status:       models.TaskStatusPending,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID, taskPreloads...)
}

// GetTask returns a task with its assignee and creator.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	return s.findTask(ctx, taskID, taskPreloads...)
}

// UpdateStatus records a status change. The task is saved first and the
// event appended second; a failure of the second write returns
// ErrStatusEventSave and leaves the first in place.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID string, input UpdateStatusInput) (*models.Task, *models.TaskStatusEvent, error) {
	if input.Status == "" {
		return nil, nil, ErrStatusRequired
	}
	if !input.Status.Valid() {
		return nil, nil, ErrInvalidTaskStatus
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	if !utils.IsValidID(input.ActorID) {
		return nil, nil, ErrAccountNotFound
	}
	actor, err := s.accountRepo.FindByID(ctx, input.ActorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAccountNotFound
		}
		return nil, nil, fmt.Errorf("failed to find account: %w", err)
	}
	if !actor.IsAdmin() && task.AssignedToID != actor.ID {
		return nil, nil, ErrTaskPermissionDenied
	}

	task.Status = input.Status
	if input.ProgressSet || input.Progress != nil {
		task.Progress = ParseProgress(input.Progress)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, nil, fmt.Errorf("failed to update task: %w", err)
	}

	event := &models.TaskStatusEvent{
		TaskID:  task.ID,
		UserID:  actor.ID,
		Status:  input.Status,
		Comment: input.Comment,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStatusEventSave, err)
	}

	return task, event, nil
}

// UpdateDetails overwrites the provided fields of a task.
func (s *TaskService) UpdateDetails(ctx context.Context, taskID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var problems []string
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			problems = append(problems, "title cannot be empty")
		}
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.AssignedToID != nil {
		if !utils.IsValidID(*input.AssignedToID) {
			problems = append(problems, "assignedTo must be a valid id")
		}
		task.AssignedToID = *input.AssignedToID
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			problems = append(problems, "priority must be one of low, medium, high")
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		dueDate, err := parseOptionalDate(*input.DueDate)
		if err != nil {
			problems = append(problems, "dueDate must be a date")
		}
		task.DueDate = dueDate
	}
	if len(problems) > 0 {
		return nil, newValidationError("Validation error", problems...)
	}

	if input.AssignedToID != nil {
		if err := s.ensureAssignee(ctx, task.AssignedToID); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID, taskPreloads...)
}

// SoftDelete marks a task as deleted.
func (s *TaskService) SoftDelete(ctx context.Context, taskID string) (*models.Task, error) {
	return s.setDeleted(ctx, taskID, true)
}

// Restore clears a task's deleted flag.
func (s *TaskService) Restore(ctx context.Context, taskID string) (*models.Task, error) {
	return s.setDeleted(ctx, taskID, false)
}

func (s *TaskService) setDeleted(ctx context.Context, taskID string, deleted bool) (*models.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.IsDeleted = deleted
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// ListTasks returns the tasks of one listing bucket. An empty state means
// active.
func (s *TaskService) ListTasks(ctx context.Context, state string, sort utils.SortParams) ([]models.Task, error) {
	listState := repository.TaskListState(state)
	switch listState {
	case "":
		listState = repository.TaskListActive
	case repository.TaskListActive, repository.TaskListCompleted, repository.TaskListDeleted:
	default:
		return nil, ErrInvalidTaskState
	}

	return s.list(ctx, repository.TaskFilter{State: listState, Sort: sort})
}

// ListByAssignee returns the non-deleted tasks assigned to a user.
func (s *TaskService) ListByAssignee(ctx context.Context, userID string, sort utils.SortParams) ([]models.Task, error) {
	if !utils.IsValidID(userID) {
		return nil, ErrInvalidAccountID
	}
	return s.list(ctx, repository.TaskFilter{AssignedToID: &userID, Sort: sort})
}

func (s *TaskService) list(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	if filter.Sort.By != "" && !repository.ValidTaskSortField(filter.Sort.By) {
		return nil, ErrInvalidSortField
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListStatusEvents returns a task's status log, newest first.
func (s *TaskService) ListStatusEvents(ctx context.Context, taskID string) ([]models.TaskStatusEvent, error) {
	if _, err := s.findTask(ctx, taskID); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status events: %w", err)
	}
	return events, nil
}

func (s *TaskService) findTask(ctx context.Context, taskID string, preload ...string) (*models.Task, error) {
	if !utils.IsValidID(taskID) {
		return nil, ErrInvalidTaskID
	}

	task, err := s.taskRepo.FindByID(ctx, taskID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ensureAssignee(ctx context.Context, id string) error {
	if !s.verifyAssignee {
		return nil
	}
	if _, err := s.accountRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	return nil
}

// ParseProgress coerces a decoded JSON progress value to a number.
// Booleans count as 0 or 1. Anything else that is not a number or a numeric
// string becomes 0, null included.
func ParseProgress(v any) float64 {
	switch p := v.(type) {
	case float64:
		return p
	case bool:
		if p {
			return 1
		}
		return 0
	case int:
		return float64(p)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// parseOptionalDate parses a YYYY-MM-DD or RFC 3339 value. Empty is nil.
func parseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
