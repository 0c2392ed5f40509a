package repository

import (
	"context"

	"github.com/yukikurage/employee-management-api/internal/database"
	"github.com/yukikurage/employee-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// taskSortColumns maps the sortBy query values to trusted column expressions.
var taskSortColumns = map[string]string{
	"title":     "tasks.title",
	"dueDate":   "tasks.due_date",
	"priority":  "CASE tasks.priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 WHEN 'high' THEN 2 ELSE 3 END",
	"status":    "tasks.status",
	"progress":  "tasks.progress",
	"createdAt": "tasks.created_at",
	"updatedAt": "tasks.updated_at",
}

// ValidTaskSortField reports whether sortBy names a sortable task field.
func ValidTaskSortField(sortBy string) bool {
	_, ok := taskSortColumns[sortBy]
	return ok
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id string, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("tasks.id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.WithContext(ctx).Model(&models.Task{})

	switch filter.State {
	case TaskListActive:
		query = query.Where("tasks.is_deleted = ? AND tasks.status <> ?", false, models.TaskStatusCompleted)
	case TaskListCompleted:
		query = query.Where("tasks.is_deleted = ? AND tasks.status = ?", false, models.TaskStatusCompleted)
	case TaskListDeleted:
		query = query.Where("tasks.is_deleted = ?", true)
	}
	if filter.AssignedToID != nil {
		query = query.Where("tasks.assigned_to_id = ? AND tasks.is_deleted = ?", *filter.AssignedToID, false)
	}

	if expr, ok := taskSortColumns[filter.Sort.By]; ok {
		query = query.Scopes(database.OrderBy(expr, filter.Sort))
	} else {
		query = query.Order("tasks.created_at ASC")
	}

	if err := query.Preload("AssignedTo").Preload("CreatedBy").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update saves every field of a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// GormTaskStatusEventRepository is a GORM implementation of TaskStatusEventRepository
type GormTaskStatusEventRepository struct {
	db *gorm.DB
}

// NewTaskStatusEventRepository creates a new TaskStatusEventRepository
func NewTaskStatusEventRepository(db *gorm.DB) TaskStatusEventRepository {
	return &GormTaskStatusEventRepository{db: db}
}

// Create appends an event
func (r *GormTaskStatusEventRepository) Create(ctx context.Context, event *models.TaskStatusEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByTask returns the events of a task, newest first
func (r *GormTaskStatusEventRepository) ListByTask(ctx context.Context, taskID string) ([]models.TaskStatusEvent, error) {
	events := []models.TaskStatusEvent{}
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
