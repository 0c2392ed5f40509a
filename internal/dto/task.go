package dto

import (
	"time"

	"github.com/yukikurage/employee-management-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	AssignedToID string             `json:"assignedToId"`
	CreatedByID  string             `json:"createdById"`
	DueDate      *time.Time         `json:"dueDate"`
	Priority     models.Priority    `json:"priority"`
	Status       models.TaskStatus  `json:"status"`
	Progress     float64            `json:"progress"`
	IsDeleted    bool               `json:"isDeleted"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	AssignedTo   *AccountSummaryDTO `json:"assignedTo,omitempty"`
	CreatedBy    *AccountSummaryDTO `json:"createdBy,omitempty"`
}

// TaskStatusEventDTO represents one entry of a task's status log
type TaskStatusEventDTO struct {
	ID        string            `json:"id"`
	TaskID    string            `json:"taskId"`
	UserID    string            `json:"userId"`
	Status    models.TaskStatus `json:"status"`
	Comment   string            `json:"comment"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO. Assignee and creator are
// included when preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		AssignedToID: task.AssignedToID,
		CreatedByID:  task.CreatedByID,
		DueDate:      task.DueDate,
		Priority:     task.Priority,
		Status:       task.Status,
		Progress:     task.Progress,
		IsDeleted:    task.IsDeleted,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
		AssignedTo:   toAccountSummary(task.AssignedTo),
		CreatedBy:    toAccountSummary(task.CreatedBy),
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToTaskStatusEventDTO converts a single status log entry
func ToTaskStatusEventDTO(e models.TaskStatusEvent) TaskStatusEventDTO {
	return TaskStatusEventDTO{
		ID:        e.ID,
		TaskID:    e.TaskID,
		UserID:    e.UserID,
		Status:    e.Status,
		Comment:   e.Comment,
		CreatedAt: e.CreatedAt,
	}
}

// ToTaskStatusEventDTOs converts a task's status log
func ToTaskStatusEventDTOs(events []models.TaskStatusEvent) []TaskStatusEventDTO {
	items := make([]TaskStatusEventDTO, len(events))
	for i, e := range events {
		items[i] = ToTaskStatusEventDTO(e)
	}
	return items
}
