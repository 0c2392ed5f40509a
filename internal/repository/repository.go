package repository

import (
	"context"

	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/utils"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *models.Account) error

	// FindByID finds an account by ID
	FindByID(ctx context.Context, id string) (*models.Account, error)

	// FindByEmail finds an account by its primary email
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// FindByOAuthEmail finds an account linked to a federated identity
	FindByOAuthEmail(ctx context.Context, email string) (*models.Account, error)

	// FindByEmailAndProvider finds an account by email created through provider
	FindByEmailAndProvider(ctx context.Context, email string, provider models.Provider) (*models.Account, error)

	// Update saves every field of an account
	Update(ctx context.Context, account *models.Account) error

	// List returns accounts in the given status, or all accounts when status is nil
	List(ctx context.Context, status *models.AccountStatus) ([]models.Account, error)
}

// TaskListState selects one of the task listing buckets.
type TaskListState string

const (
	TaskListActive    TaskListState = "active"
	TaskListCompleted TaskListState = "completed"
	TaskListDeleted   TaskListState = "deleted"
)

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	State        TaskListState
	AssignedToID *string
	Sort         utils.SortParams
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id string, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update saves every field of a task
	Update(ctx context.Context, task *models.Task) error
}

// TaskStatusEventRepository defines the interface for the task status log
type TaskStatusEventRepository interface {
	// Create appends an event
	Create(ctx context.Context, event *models.TaskStatusEvent) error

	// ListByTask returns the events of a task, newest first
	ListByTask(ctx context.Context, taskID string) ([]models.TaskStatusEvent, error)
}

// LeaveRequestRepository defines the interface for leave request data access
type LeaveRequestRepository interface {
	// Create creates a new leave request
	Create(ctx context.Context, leave *models.LeaveRequest) error

	// FindByID finds a leave request by ID
	FindByID(ctx context.Context, id string) (*models.LeaveRequest, error)

	// Update saves every field of a leave request
	Update(ctx context.Context, leave *models.LeaveRequest) error

	// ListByUser returns the requests of one account, newest first
	ListByUser(ctx context.Context, userID string) ([]models.LeaveRequest, error)

	// ListByStatuses returns requests in any of the statuses, newest first
	ListByStatuses(ctx context.Context, statuses []models.LeaveStatus) ([]models.LeaveRequest, error)
}
