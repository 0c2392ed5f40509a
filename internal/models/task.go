package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOnHold     TaskStatus = "on-hold"
)

// TaskStatuses lists every valid task status. Any status may follow any other.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOnHold}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Task struct {
	ID           string     `gorm:"type:varchar(36);primarykey" json:"id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	AssignedToID string     `gorm:"type:varchar(36);not null;index" json:"assignedToId"`
	CreatedByID  string     `gorm:"type:varchar(36);index" json:"createdById"`
	DueDate      *time.Time `json:"dueDate"`
	Priority     Priority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status       TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Progress     float64    `gorm:"not null;default:0" json:"progress"`
	IsDeleted    bool       `gorm:"not null;default:false;index" json:"isDeleted"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// Relations
	AssignedTo Account `gorm:"foreignKey:AssignedToID" json:"-"`
	CreatedBy  Account `gorm:"foreignKey:CreatedByID" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return nil
}

// TaskStatusEvent is one entry of the append-only task status log.
type TaskStatusEvent struct {
	ID        string     `gorm:"type:varchar(36);primarykey" json:"id"`
	TaskID    string     `gorm:"type:varchar(36);not null;index" json:"taskId"`
	UserID    string     `gorm:"type:varchar(36);not null" json:"userId"`
	Status    TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	Comment   string     `gorm:"type:text" json:"comment"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (e *TaskStatusEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
